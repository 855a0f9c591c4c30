package config

import (
	"os"
	"path/filepath"

	"github.com/d093w1z/countdown/internal/notify"
)

func GetDefaults() map[string]interface{} {
	n := notify.DefaultConfig()
	return map[string]interface{}{
		"notify.enabled":    n.Enabled,
		"notify.type":       string(n.Type),
		"notify.sound_file": n.SoundFile,
		"notify.title":      n.Title,
		"notify.timeout":    n.Timeout.String(),
		"alert.enabled":     true,
		"pipe_base":         filepath.Join(os.TempDir(), "countdown.pipe"),
		"log_level":         "info",
	}
}
