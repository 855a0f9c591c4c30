package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	countdown "github.com/d093w1z/countdown/api"
	"golang.org/x/term"
)

// ------------------- DesktopEmitter -------------------

// DesktopEmitter posts each countdown line as a desktop notification.
type DesktopEmitter struct {
	config      Config
	sender      Sender
	interactive func() bool
}

func NewDesktopEmitter(config Config) *DesktopEmitter {
	return NewDesktopEmitterWithSender(config, NewSender())
}

func NewDesktopEmitterWithSender(config Config, sender Sender) *DesktopEmitter {
	return &DesktopEmitter{
		config:      config,
		sender:      sender,
		interactive: isInteractive,
	}
}

// Enabled is false when notifications are switched off, the output type is
// not visual, the session runs in CI or has no terminal, or no notification
// tool is installed.
func (d *DesktopEmitter) Enabled() bool {
	if !d.config.Enabled || !d.config.Type.wantsVisual() {
		return false
	}
	if isCI() || !d.interactive() {
		return false
	}
	return d.sender.VisualAvailable()
}

func (d *DesktopEmitter) Emit(ctx context.Context, text string) error {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	n := NewNotification(d.config.Title, text, TypeInfo)
	if err := d.sender.SendVisual(ctx, n); err != nil {
		return fmt.Errorf("sending visual notification: %w", err)
	}
	return nil
}

func (d *DesktopEmitter) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.config.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d.config.Timeout)
}

// ------------------- WriterEmitter -------------------

// WriterEmitter prints one line per notification.
type WriterEmitter struct {
	mu     sync.Mutex
	w      io.Writer
	prefix string
}

func NewWriterEmitter(w io.Writer, prefix string) *WriterEmitter {
	return &WriterEmitter{w: w, prefix: prefix}
}

func (e *WriterEmitter) Enabled() bool { return true }

func (e *WriterEmitter) Emit(_ context.Context, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.prefix != "" {
		_, err := fmt.Fprintf(e.w, "%s: %s\n", e.prefix, text)
		return err
	}
	_, err := fmt.Fprintln(e.w, text)
	return err
}

// NewEmitter picks the emitter matching config.Type.
func NewEmitter(config Config, stdout io.Writer) countdown.Emitter {
	if config.Type == OutputStdout {
		return NewWriterEmitter(stdout, "")
	}
	return NewDesktopEmitter(config)
}

// ------------------- environment -------------------

func isCI() bool {
	ciVars := []string{
		"CI",
		"GITHUB_ACTIONS",
		"GITLAB_CI",
		"CIRCLECI",
		"TRAVIS",
		"JENKINS_URL",
		"BUILDKITE",
		"DRONE",
		"TEAMCITY_VERSION",
		"TF_BUILD",
		"BITBUCKET_PIPELINES",
		"CODEBUILD_BUILD_ID",
	}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// isInteractive checks stdout, then stderr, then stdin for a terminal.
func isInteractive() bool {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return true
	}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return true
	}
	return term.IsTerminal(int(os.Stdin.Fd()))
}
