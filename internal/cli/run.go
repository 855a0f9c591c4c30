package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	countdown "github.com/d093w1z/countdown/api"
	"github.com/d093w1z/countdown/internal/notify"
)

type runFlags struct {
	hours      int
	minutes    int
	seconds    int
	background bool
}

func newRunCmd(opts *options) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run [H:M:S]",
		Short: "Run a countdown in the foreground",
		Long: `Run a countdown in the foreground until it reaches zero.

The duration is given as H:M:S, M:S or S, or with --hours/--minutes/--seconds.
Ctrl-C cancels the run; with --background the time left is handed to a
notifier that keeps reporting it.`,
		Example: `  countdown run 1:30:00
  countdown run --minutes 25 --background`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, m, s := flags.hours, flags.minutes, flags.seconds
			if len(args) == 1 {
				var err error
				if h, m, s, err = countdown.ParseHMS(args[0]); err != nil {
					return err
				}
			}
			return runForeground(cmd, opts, flags.background, h, m, s)
		},
	}

	cmd.Flags().IntVar(&flags.hours, "hours", 0, "Hours to count down")
	cmd.Flags().IntVar(&flags.minutes, "minutes", 0, "Minutes to count down")
	cmd.Flags().IntVar(&flags.seconds, "seconds", 0, "Seconds to count down")
	cmd.Flags().BoolVarP(&flags.background, "background", "b", false, "Keep notifying after an interrupt")
	return cmd
}

func runForeground(cmd *cobra.Command, opts *options, background bool, h, m, s int) error {
	out := cmd.OutOrStdout()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := newEngine(opts, cmd.ErrOrStderr())
	defer e.Close()

	view := newDisplay(out)
	snap, err := runCountdown(ctx, e, view, h, m, s)
	view.stop()

	switch {
	case err == nil:
		fmt.Fprintln(out, opts.cfg.Notify.Title+": "+countdown.DefaultFinishedText)
		return nil
	case !errors.Is(err, context.Canceled):
		return err
	}

	fmt.Fprintf(out, "Countdown cancelled with %s left\n", countdown.FormatHMS(snap.Remaining))
	if !background || snap.Remaining <= 0 {
		return nil
	}

	// foreground teardown first; the notifier only has the value it was handed
	if err := e.Close(); err != nil {
		slog.Warn("Closing engine", "error", err)
	}
	stop()
	return runBackground(cmd.Context(), opts, out, snap.Remaining)
}

// runCountdown starts e from the selection and reports every snapshot to view
// until the run completes or ctx is cancelled. The returned snapshot is the
// last one seen before the run ended.
func runCountdown(ctx context.Context, e *countdown.Engine, view display, h, m, s int) (countdown.Snapshot, error) {
	updates := e.Subscribe()
	defer e.Unsubscribe(updates)

	e.SelectTime(h, m, s)
	if err := e.Start(); err != nil {
		return e.Snapshot(), err
	}
	done := e.Done()

	for {
		select {
		case snap, ok := <-updates:
			if !ok {
				return e.Snapshot(), countdown.ErrClosed
			}
			view.update(snap)
		case <-done:
			drain(updates, view)
			return e.Snapshot(), nil
		case <-ctx.Done():
			snap := e.Snapshot()
			if err := e.Cancel(); err != nil {
				slog.Debug("Cancel after interrupt", "error", err)
			}
			return snap, ctx.Err()
		}
	}
}

func drain(updates <-chan countdown.Snapshot, view display) {
	for {
		select {
		case snap, ok := <-updates:
			if !ok {
				return
			}
			view.update(snap)
		default:
			return
		}
	}
}

// runBackground keeps notifying about budget until it is spent or the
// process is interrupted again.
func runBackground(parent context.Context, opts *options, out io.Writer, budget time.Duration) error {
	ctx, stop := signal.NotifyContext(context.WithoutCancel(parent), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(out, "Continuing in background with %s left\n", countdown.FormatHMS(budget))
	n := newNotifier(opts, notify.NewEmitter(opts.cfg.Notify, out), "")
	job := n.Launch(ctx, budget)
	if err := job.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
