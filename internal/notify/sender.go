package notify

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Sender is a platform notification backend.
type Sender interface {
	SendVisual(ctx context.Context, n Notification) error
	SendSound(ctx context.Context, soundFile string) error
	VisualAvailable() bool
	SoundAvailable() bool
}

// NewSender returns the sender for the current OS, or a no-op sender.
func NewSender() Sender {
	return newPlatformSender()
}

func toolAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

type noopSender struct{}

func (s *noopSender) SendVisual(context.Context, Notification) error { return nil }
func (s *noopSender) SendSound(context.Context, string) error        { return nil }
func (s *noopSender) VisualAvailable() bool                          { return false }
func (s *noopSender) SoundAvailable() bool                           { return false }

var supportedAudioExtensions = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".aiff": true,
	".aif":  true,
	".ogg":  true,
	".oga":  true,
	".flac": true,
}

// ValidateSoundFile returns soundFile when it is a readable file with a
// supported extension, and "" otherwise.
func ValidateSoundFile(soundFile string) string {
	if soundFile == "" {
		return ""
	}

	info, err := os.Stat(soundFile)
	if err != nil {
		slog.Warn("Sound file not usable", "path", soundFile, "error", err)
		return ""
	}
	if info.IsDir() {
		slog.Warn("Sound path is a directory", "path", soundFile)
		return ""
	}

	ext := strings.ToLower(filepath.Ext(soundFile))
	if !supportedAudioExtensions[ext] {
		slog.Warn("Unsupported audio format", "path", soundFile, "ext", ext)
		return ""
	}
	return soundFile
}
