package cli

import (
	"io"
	"log/slog"

	countdown "github.com/d093w1z/countdown/api"
	"github.com/d093w1z/countdown/internal/notify"
)

// newEngine builds an engine from the loaded configuration. bell receives the
// terminal bell when the configured output has no sound player.
func newEngine(opts *options, bell io.Writer) *countdown.Engine {
	engineOpts := []countdown.Option{
		countdown.WithClock(opts.clock),
		countdown.WithLogger(slog.Default()),
	}
	if opts.cfg.Alert.Enabled {
		engineOpts = append(engineOpts,
			countdown.WithAlertSource(notify.AlertSource(opts.cfg.Notify, notify.NewSender(), bell)))
	}
	return countdown.New(engineOpts...)
}

func newNotifier(opts *options, emitter countdown.Emitter, finishedText string) *countdown.Notifier {
	notifierOpts := []countdown.NotifierOption{
		countdown.WithNotifierClock(opts.clock),
		countdown.WithNotifierLogger(slog.Default()),
	}
	if finishedText != "" {
		notifierOpts = append(notifierOpts, countdown.WithFinishedText(finishedText))
	}
	return countdown.NewNotifier(emitter, notifierOpts...)
}
