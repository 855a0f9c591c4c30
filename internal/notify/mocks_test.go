package notify

import (
	"context"
	"sync"
)

// MockSender records calls and returns configured errors.
type MockSender struct {
	mu sync.Mutex

	VisualError     error
	SoundError      error
	visualAvailable bool
	soundAvailable  bool

	VisualCalls []Notification
	SoundCalls  []string
}

func NewMockSender() *MockSender {
	return &MockSender{
		visualAvailable: true,
		soundAvailable:  true,
	}
}

func (m *MockSender) WithVisualError(err error) *MockSender {
	m.VisualError = err
	return m
}

func (m *MockSender) WithSoundError(err error) *MockSender {
	m.SoundError = err
	return m
}

func (m *MockSender) WithVisualAvailable(available bool) *MockSender {
	m.visualAvailable = available
	return m
}

func (m *MockSender) WithSoundAvailable(available bool) *MockSender {
	m.soundAvailable = available
	return m
}

func (m *MockSender) SendVisual(_ context.Context, n Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.VisualCalls = append(m.VisualCalls, n)
	return m.VisualError
}

func (m *MockSender) SendSound(_ context.Context, soundFile string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SoundCalls = append(m.SoundCalls, soundFile)
	return m.SoundError
}

func (m *MockSender) VisualAvailable() bool { return m.visualAvailable }
func (m *MockSender) SoundAvailable() bool  { return m.soundAvailable }
