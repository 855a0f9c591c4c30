package notify

import (
	"bytes"
	"context"
	"errors"
	"testing"

	countdown "github.com/d093w1z/countdown/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ countdown.Alerter = (*SoundAlerter)(nil)
	_ countdown.Alerter = (*BellAlerter)(nil)
	_ countdown.Alerter = (*VisualAlerter)(nil)
)

func TestNewSoundAlerter_Unavailable(t *testing.T) {
	t.Parallel()

	a, err := NewSoundAlerter(NewMockSender().WithSoundAvailable(false), "")

	require.ErrorIs(t, err, ErrNoSoundPlayer)
	assert.Nil(t, a)
}

func TestSoundAlerter_Alert(t *testing.T) {
	t.Parallel()

	sender := NewMockSender()
	a, err := NewSoundAlerter(sender, "/tmp/ding.wav")
	require.NoError(t, err)

	require.NoError(t, a.Alert(context.Background()))
	assert.Equal(t, []string{"/tmp/ding.wav"}, sender.SoundCalls)
	assert.NoError(t, a.Close())
}

func TestSoundAlerter_AlertError(t *testing.T) {
	t.Parallel()

	boom := errors.New("paplay: connection refused")
	a, err := NewSoundAlerter(NewMockSender().WithSoundError(boom), "")
	require.NoError(t, err)

	assert.ErrorIs(t, a.Alert(context.Background()), boom)
}

func TestBellAlerter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	a := NewBellAlerter(&buf)

	require.NoError(t, a.Alert(context.Background()))
	assert.Equal(t, "\a", buf.String())

	require.NoError(t, a.Close())
	assert.Error(t, a.Alert(context.Background()))
	assert.NoError(t, a.Close())
}

func TestVisualAlerter(t *testing.T) {
	t.Parallel()

	sender := NewMockSender()
	var bell bytes.Buffer
	a := NewVisualAlerter(sender, "Tea timer", NewBellAlerter(&bell))

	require.NoError(t, a.Alert(context.Background()))
	require.Len(t, sender.VisualCalls, 1)
	assert.Equal(t, NewNotification("Tea timer", countdown.DefaultFinishedText, TypeSuccess), sender.VisualCalls[0])
	assert.Equal(t, "\a", bell.String())

	require.NoError(t, a.Close())
	assert.Error(t, a.Alert(context.Background()), "closing closes the wrapped alerter")
}

func TestVisualAlerter_NotificationFailureStillRings(t *testing.T) {
	t.Parallel()

	boom := errors.New("dbus unavailable")
	var bell bytes.Buffer
	a := NewVisualAlerter(NewMockSender().WithVisualError(boom), "countdown", NewBellAlerter(&bell))

	assert.ErrorIs(t, a.Alert(context.Background()), boom)
	assert.Equal(t, "\a", bell.String())
}

func TestAlertSource(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		output    OutputType
		disabled  bool
		soundOK   bool
		visualOK  bool
		wantType  any
		wantError error
	}{
		"visual posts and rings":    {output: OutputVisual, soundOK: true, visualOK: true, wantType: &VisualAlerter{}},
		"visual without a tool":     {output: OutputVisual, soundOK: true, wantType: &BellAlerter{}},
		"visual but disabled":       {output: OutputVisual, disabled: true, visualOK: true, wantType: &BellAlerter{}},
		"stdout rings bell":         {output: OutputStdout, visualOK: true, wantType: &BellAlerter{}},
		"sound plays file":          {output: OutputSound, soundOK: true, visualOK: true, wantType: &SoundAlerter{}},
		"both posts and plays":      {output: OutputBoth, soundOK: true, visualOK: true, wantType: &VisualAlerter{}},
		"both without a tool":       {output: OutputBoth, soundOK: true, wantType: &SoundAlerter{}},
		"sound without player":      {output: OutputSound, wantError: ErrNoSoundPlayer},
		"both without sound player": {output: OutputBoth, visualOK: true, wantError: ErrNoSoundPlayer},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			cfg.Type = tc.output
			cfg.Enabled = !tc.disabled
			sender := NewMockSender().WithSoundAvailable(tc.soundOK).WithVisualAvailable(tc.visualOK)
			src := AlertSource(cfg, sender, &bytes.Buffer{})

			a, err := src()
			if tc.wantError != nil {
				require.ErrorIs(t, err, tc.wantError)
				assert.Nil(t, a)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tc.wantType, a)
		})
	}
}
