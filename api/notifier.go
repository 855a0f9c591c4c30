package countdown

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

const DefaultFinishedText = "Timer is finished!"

// Emitter delivers notification text. Enabled lets delivery be skipped without
// disturbing the notifier's timing.
type Emitter interface {
	Emit(ctx context.Context, text string) error
	Enabled() bool
}

// ------------------- Notifier -------------------

// Notifier counts down its own copy of a budget and emits the time left once
// per tick. It never touches an Engine; callers hand it a value once.
type Notifier struct {
	emitter      Emitter
	clock        clockwork.Clock
	log          *slog.Logger
	finishedText string
}

type NotifierOption func(*Notifier)

func WithNotifierClock(c clockwork.Clock) NotifierOption {
	return func(n *Notifier) { n.clock = c }
}

func WithNotifierLogger(l *slog.Logger) NotifierOption {
	return func(n *Notifier) { n.log = l }
}

func WithFinishedText(text string) NotifierOption {
	return func(n *Notifier) { n.finishedText = text }
}

func NewNotifier(emitter Emitter, opts ...NotifierOption) *Notifier {
	n := &Notifier{
		emitter:      emitter,
		clock:        clockwork.NewRealClock(),
		log:          slog.Default(),
		finishedText: DefaultFinishedText,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Run blocks until the budget is spent or ctx is cancelled. A budget with
// nothing left fails with ErrInvalidBudget before anything is emitted.
func (n *Notifier) Run(ctx context.Context, budget time.Duration) error {
	if budget <= 0 {
		return ErrInvalidBudget
	}

	for budget > 0 {
		n.emit(ctx, FormatHMS(budget))

		timer := n.clock.NewTimer(TickInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			n.log.Debug("Notifier cancelled", "remaining", budget)
			return ctx.Err()
		case <-timer.Chan():
		}
		budget -= TickInterval
	}

	n.emit(ctx, n.finishedText)
	return nil
}

func (n *Notifier) emit(ctx context.Context, text string) {
	if !n.emitter.Enabled() {
		n.log.Debug("Notifications disabled, skipping", "text", text)
		return
	}
	if err := n.emitter.Emit(ctx, text); err != nil {
		n.log.Warn("Notification failed", "text", text, "error", err)
	}
}

// ------------------- Job -------------------

// Job is one detached Run.
type Job struct {
	ID     string
	cancel context.CancelFunc
	done   chan struct{}

	mu  sync.Mutex
	err error
}

// Launch starts Run on its own goroutine. The job outlives whatever launched
// it until the budget is spent, parent is cancelled or Cancel is called.
func (n *Notifier) Launch(parent context.Context, budget time.Duration) *Job {
	ctx, cancel := context.WithCancel(parent)
	j := &Job{
		ID:     uuid.NewString(),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	n.log.Info("Background notifier launched", "job_id", j.ID, "budget", budget)

	go func() {
		defer close(j.done)
		defer cancel()
		err := n.Run(ctx, budget)
		j.mu.Lock()
		j.err = err
		j.mu.Unlock()
		n.log.Info("Background notifier stopped", "job_id", j.ID, "error", err)
	}()
	return j
}

func (j *Job) Cancel() {
	j.cancel()
}

func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Wait blocks until the job stops and returns Run's result.
func (j *Job) Wait() error {
	<-j.done
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.err
}
