package cli

import (
	"github.com/spf13/cobra"

	"github.com/d093w1z/countdown/internal/notify"
	"github.com/d093w1z/countdown/internal/polybar"
)

func newBarCmd(opts *options) *cobra.Command {
	var pipeBase string

	cmd := &cobra.Command{
		Use:   "bar",
		Short: "Print a status line every second and take commands from a FIFO",
		Long: `Run the status bar frontend. A status line is printed once per second and
commands are read from a FIFO named <pipe base>.<pid>:

  select H:M:S   set the selection
  start          start or resume
  pause, resume, toggle, cancel
  inc, dec       move the selection by one minute
  detach         hand the time left to a background notifier`,
		Example: `  countdown bar --pipe /tmp/countdown.pipe
  echo 'select 0:25:0' > /tmp/countdown.pipe.$(pgrep -f "countdown bar")`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if pipeBase == "" {
				pipeBase = opts.cfg.PipeBase
			}

			// stdout belongs to the bar, so detached notifications go to the desktop
			n := newNotifier(opts, notify.NewDesktopEmitter(opts.cfg.Notify), "")
			e := newEngine(opts, cmd.ErrOrStderr())
			defer e.Close()

			polybar.SetEngine(e)
			polybar.SetNotifier(n)
			if err := polybar.Init(pipeBase); err != nil {
				return err
			}
			polybar.Main()
			return nil
		},
	}

	cmd.Flags().StringVar(&pipeBase, "pipe", "", "FIFO base path (default from pipe_base)")
	return cmd
}
