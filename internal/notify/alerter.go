package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	countdown "github.com/d093w1z/countdown/api"
)

var ErrNoSoundPlayer = errors.New("no sound player available")

// ------------------- SoundAlerter -------------------

// SoundAlerter plays the configured sound file (or the platform default)
// when a countdown finishes.
type SoundAlerter struct {
	sender    Sender
	soundFile string
}

// NewSoundAlerter fails when the platform has no way to play a sound.
func NewSoundAlerter(sender Sender, soundFile string) (*SoundAlerter, error) {
	if !sender.SoundAvailable() {
		return nil, ErrNoSoundPlayer
	}
	return &SoundAlerter{sender: sender, soundFile: soundFile}, nil
}

func (a *SoundAlerter) Alert(ctx context.Context) error {
	if err := a.sender.SendSound(ctx, a.soundFile); err != nil {
		return fmt.Errorf("playing %q: %w", a.soundFile, err)
	}
	return nil
}

func (a *SoundAlerter) Close() error { return nil }

// ------------------- BellAlerter -------------------

// BellAlerter rings the terminal bell.
type BellAlerter struct {
	mu     sync.Mutex
	w      io.Writer
	closed bool
}

func NewBellAlerter(w io.Writer) *BellAlerter {
	return &BellAlerter{w: w}
}

func (a *BellAlerter) Alert(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return errors.New("bell alerter closed")
	}
	_, err := io.WriteString(a.w, "\a")
	return err
}

func (a *BellAlerter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	return nil
}

// ------------------- VisualAlerter -------------------

// VisualAlerter posts a success notification, then hands off to the sound or
// bell alert it wraps.
type VisualAlerter struct {
	sender Sender
	title  string
	next   countdown.Alerter
}

func NewVisualAlerter(sender Sender, title string, next countdown.Alerter) *VisualAlerter {
	return &VisualAlerter{sender: sender, title: title, next: next}
}

func (a *VisualAlerter) Alert(ctx context.Context) error {
	var errs []error
	n := NewNotification(a.title, countdown.DefaultFinishedText, TypeSuccess)
	if err := a.sender.SendVisual(ctx, n); err != nil {
		errs = append(errs, fmt.Errorf("posting completion: %w", err))
	}
	if err := a.next.Alert(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (a *VisualAlerter) Close() error { return a.next.Close() }

// ------------------- AlertSource -------------------

// AlertSource returns the acquisition function handed to the engine. Sound
// output types need a sound player; the others ring the bell on bell. Visual
// output types also post a completion notification when a tool is available.
func AlertSource(config Config, sender Sender, bell io.Writer) func() (countdown.Alerter, error) {
	return func() (countdown.Alerter, error) {
		var base countdown.Alerter = NewBellAlerter(bell)
		if config.Type.wantsSound() {
			a, err := NewSoundAlerter(sender, config.SoundFile)
			if err != nil {
				return nil, err
			}
			base = a
		}
		if config.Enabled && config.Type.wantsVisual() && sender.VisualAvailable() {
			return NewVisualAlerter(sender, config.Title, base), nil
		}
		return base, nil
	}
}
