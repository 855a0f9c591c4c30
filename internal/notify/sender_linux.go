//go:build linux

package notify

import (
	"context"
	"os"
	"os/exec"
)

// defaultLinuxSound ships with the freedesktop sound theme on most desktops.
const defaultLinuxSound = "/usr/share/sounds/freedesktop/stereo/complete.oga"

type linuxSender struct {
	visualAvailable bool
	soundAvailable  bool
}

func newPlatformSender() Sender {
	return &linuxSender{
		visualAvailable: toolAvailable("notify-send") && hasDisplay(),
		soundAvailable:  toolAvailable("paplay"),
	}
}

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

func (s *linuxSender) SendVisual(ctx context.Context, n Notification) error {
	if !s.visualAvailable {
		return nil
	}

	urgency := "low"
	if n.NotificationType != TypeInfo {
		urgency = "normal"
	}

	// replace the previous countdown bubble instead of stacking one per tick
	cmd := exec.CommandContext(ctx, "notify-send",
		"-u", urgency,
		"-h", "string:x-canonical-private-synchronous:countdown",
		n.Title, n.Message)
	return cmd.Run()
}

func (s *linuxSender) SendSound(ctx context.Context, soundFile string) error {
	if !s.soundAvailable {
		return nil
	}

	file := ValidateSoundFile(soundFile)
	if file == "" {
		file = ValidateSoundFile(defaultLinuxSound)
	}
	if file == "" {
		return nil
	}
	return exec.CommandContext(ctx, "paplay", file).Run()
}

func (s *linuxSender) VisualAvailable() bool {
	return s.visualAvailable
}

func (s *linuxSender) SoundAvailable() bool {
	return s.soundAvailable
}
