package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	countdown "github.com/d093w1z/countdown/api"
	"github.com/d093w1z/countdown/internal/notify"
)

func newNotifyCmd(opts *options) *cobra.Command {
	var finishedText string

	cmd := &cobra.Command{
		Use:   "notify H:M:S",
		Short: "Emit the time left once per second, without a timer",
		Long: `Count down a budget on its own and emit the time left as HH:MM:SS once per
second, followed by a final message. Output goes wherever notify.type points
(desktop notifications or stdout).`,
		Example: `  countdown notify 5:00
  COUNTDOWN_NOTIFY__TYPE=stdout countdown notify 0:0:10 --finished-text "Tea is ready"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, m, s, err := countdown.ParseHMS(args[0])
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			n := newNotifier(opts, notify.NewEmitter(opts.cfg.Notify, cmd.OutOrStdout()), finishedText)
			err = n.Run(ctx, countdown.Compose(h, m, s))
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&finishedText, "finished-text", countdown.DefaultFinishedText, "Message emitted when the budget is spent")
	return cmd
}
