// Package countdown implements a pausable, cancellable countdown timer and an
// independent background notifier that keeps reporting the time left after the
// engine that started it has gone away.
package countdown

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// AlertTimeout caps how long a completion alert may hold the finishing task.
const AlertTimeout = 5 * time.Second

// Alerter produces the completion alert (a tone, a sound file, a bell).
type Alerter interface {
	Alert(ctx context.Context) error
	Close() error
}

// ------------------- Engine -------------------

type Engine struct {
	mu    sync.Mutex
	clock clockwork.Clock
	log   *slog.Logger

	alerter     Alerter
	alertSource func() (Alerter, error)

	hour, minute, second int

	total     time.Duration
	remaining time.Duration
	state     State
	runID     string

	// task is the single countdown slot; nil unless Running.
	task   *task
	doneCh chan struct{}
	wg     sync.WaitGroup

	hub    hub
	closed bool
}

type task struct {
	cancel context.CancelFunc
	done   chan struct{}
}

type Option func(*Engine)

func WithClock(c clockwork.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithAlertSource sets how the completion alert is acquired. The source is
// called once, by New; a failure leaves the engine without an alert.
func WithAlertSource(src func() (Alerter, error)) Option {
	return func(e *Engine) { e.alertSource = src }
}

func New(opts ...Option) *Engine {
	e := &Engine{
		clock:  clockwork.NewRealClock(),
		log:    slog.Default(),
		state:  Idle,
		doneCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.initializeAlerter()
	return e
}

func (e *Engine) initializeAlerter() {
	if e.alertSource == nil {
		return
	}
	a, err := e.alertSource()
	if err != nil {
		e.log.Warn("Completion alert unavailable", "error", errors.Join(ErrAlertUnavailable, err))
		return
	}
	e.alerter = a
}

// --- Selection ---

func (e *Engine) SelectTime(h, m, s int) {
	e.mu.Lock()
	e.hour, e.minute, e.second = max(h, 0), max(m, 0), max(s, 0)
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.hub.publish(snap)
}

// --- Control methods ---

// Start resumes a paused countdown, or begins a fresh one from the current
// selection.
func (e *Engine) Start() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}

	switch e.state {
	case Paused:
		e.state = Running
		e.launchLocked()
		e.log.Debug("Countdown resumed", "run_id", e.runID, "remaining", e.remaining)
	case Idle, Completed:
		total := Compose(e.hour, e.minute, e.second)
		if total <= 0 {
			e.mu.Unlock()
			return ErrZeroDuration
		}
		e.total = total
		e.remaining = total
		e.state = Running
		e.runID = uuid.NewString()
		select {
		case <-e.doneCh:
			e.doneCh = make(chan struct{})
		default:
		}
		e.launchLocked()
		e.log.Info("Countdown started", "run_id", e.runID, "total", total)
	default:
		state := e.state
		e.mu.Unlock()
		return fmt.Errorf("%w: start while %s", ErrIllegalTransition, state)
	}

	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.hub.publish(snap)
	return nil
}

func (e *Engine) Resume() error {
	e.mu.Lock()
	state := e.state
	e.mu.Unlock()
	if state != Paused {
		return fmt.Errorf("%w: resume while %s", ErrIllegalTransition, state)
	}
	return e.Start()
}

// Pause stops the running task and keeps remaining at the last completed tick.
func (e *Engine) Pause() error {
	e.mu.Lock()
	if e.state != Running {
		state := e.state
		e.mu.Unlock()
		return fmt.Errorf("%w: pause while %s", ErrIllegalTransition, state)
	}
	t := e.detachLocked()
	e.state = Paused
	snap := e.snapshotLocked()
	e.log.Debug("Countdown paused", "run_id", e.runID, "remaining", e.remaining)
	e.mu.Unlock()

	t.join()
	e.hub.publish(snap)
	return nil
}

func (e *Engine) Cancel() error {
	e.mu.Lock()
	if !e.state.Active() {
		state := e.state
		e.mu.Unlock()
		return fmt.Errorf("%w: cancel while %s", ErrIllegalTransition, state)
	}
	t := e.detachLocked()
	e.state = Idle
	e.remaining = 0
	snap := e.snapshotLocked()
	e.log.Info("Countdown cancelled", "run_id", e.runID)
	e.mu.Unlock()

	t.join()
	e.hub.publish(snap)
	return nil
}

// Close cancels any countdown and releases the alert. Safe to call repeatedly.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	t := e.detachLocked()
	if e.state.Active() {
		e.state = Idle
		e.remaining = 0
	}
	e.mu.Unlock()

	t.join()
	e.wg.Wait()
	e.hub.close()

	if e.alerter == nil {
		return nil
	}
	err := e.alerter.Close()
	e.alerter = nil
	return err
}

// --- Observation ---

func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) State() State {
	return e.Snapshot().State
}

func (e *Engine) Remaining() time.Duration {
	return e.Snapshot().Remaining
}

func (e *Engine) Total() time.Duration {
	return e.Snapshot().Total
}

// Subscribe returns a channel receiving a snapshot after every mutation.
// Slow readers miss snapshots rather than block the engine.
func (e *Engine) Subscribe() <-chan Snapshot {
	return e.hub.subscribe()
}

func (e *Engine) Unsubscribe(ch <-chan Snapshot) {
	e.hub.unsubscribe(ch)
}

// Done is closed when the next run reaches zero naturally. Cancelled runs
// leave it open; a fresh Start after a completion replaces it.
func (e *Engine) Done() <-chan struct{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doneCh
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		State:     e.state,
		Hour:      e.hour,
		Minute:    e.minute,
		Second:    e.second,
		Total:     e.total,
		Remaining: e.remaining,
	}
}

// ------------------- Countdown task -------------------

func (e *Engine) launchLocked() {
	ctx, cancel := context.WithCancel(context.Background())
	t := &task{cancel: cancel, done: make(chan struct{})}
	e.task = t
	e.wg.Add(1)
	go e.countdown(ctx, t, e.doneCh, e.runID)
}

// detachLocked empties the slot and cancels its occupant. The caller joins
// the returned task after releasing the lock.
func (e *Engine) detachLocked() *task {
	t := e.task
	e.task = nil
	if t != nil {
		t.cancel()
	}
	return t
}

func (t *task) join() {
	if t != nil {
		<-t.done
	}
}

func (e *Engine) countdown(ctx context.Context, t *task, doneCh chan struct{}, runID string) {
	defer e.wg.Done()
	defer close(t.done)

	for {
		timer := e.clock.NewTimer(TickInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.Chan():
		}

		e.mu.Lock()
		// pause/cancel may have won the race against this tick
		if ctx.Err() != nil {
			e.mu.Unlock()
			return
		}
		e.remaining = max(e.remaining-TickInterval, 0)
		finished := e.remaining == 0
		if finished {
			e.state = Completed
			e.task = nil
			// closed before the lock is released so a Start reacting to
			// Completed always sees it closed and allocates a fresh one
			close(doneCh)
		}
		snap := e.snapshotLocked()
		alerter := e.alerter
		e.mu.Unlock()

		e.hub.publish(snap)
		if finished {
			e.log.Info("Countdown finished", "run_id", runID, "total", snap.Total)
			e.playFinishAlert(alerter, runID)
			return
		}
	}
}

func (e *Engine) playFinishAlert(a Alerter, runID string) {
	if a == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), AlertTimeout)
	defer cancel()
	if err := a.Alert(ctx); err != nil {
		e.log.Warn("Completion alert failed", "run_id", runID, "error", errors.Join(ErrAlertUnavailable, err))
	}
}
