// Package cli provides the Cobra commands for countdown: a foreground timer
// (run), a standalone background notifier (notify), the status bar frontend
// (bar) and a formatting helper (format).
package cli

import (
	"io"
	"log/slog"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/d093w1z/countdown/internal/config"
)

// options is shared by every subcommand. cfg is filled in by the root
// command's PersistentPreRunE.
type options struct {
	configPath string
	debug      bool

	cfg   *config.Configuration
	clock clockwork.Clock
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&options{clock: clockwork.NewRealClock()})
}

func newRootCmd(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:   "countdown",
		Short: "A pausable countdown timer with background notifications",
		Long: `countdown runs a pausable, cancellable countdown timer.

When a run is interrupted it can hand the time left to a background
notifier that keeps reporting it until the budget is spent.`,
		Example: `  # Ten minute countdown in the terminal
  countdown run 10:00

  # Keep notifying after Ctrl-C
  countdown run --minutes 25 --background

  # Notifications only, no interactive timer
  countdown notify 0:05:00

  # Status bar frontend controlled through a FIFO
  countdown bar`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			slog.SetDefault(newLogger(cmd.ErrOrStderr(), cfg.LogLevel, opts.debug))
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to a JSON config file")
	root.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "Enable debug logging")

	root.AddCommand(
		newRunCmd(opts),
		newNotifyCmd(opts),
		newBarCmd(opts),
		newFormatCmd(),
	)
	return root
}

func newLogger(w io.Writer, level string, debug bool) *slog.Logger {
	lvl := parseLevel(level)
	if debug {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
