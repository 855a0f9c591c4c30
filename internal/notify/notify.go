package notify

import "time"

type NotificationType string

const (
	TypeInfo    NotificationType = "info"
	TypeSuccess NotificationType = "success"
)

// OutputType selects where notifications and the completion alert go.
type OutputType string

const (
	// OutputSound plays the completion alert only.
	OutputSound OutputType = "sound"
	// OutputVisual posts desktop notifications and rings the terminal bell on completion.
	OutputVisual OutputType = "visual"
	// OutputBoth posts desktop notifications and plays the completion sound.
	OutputBoth OutputType = "both"
	// OutputStdout prints notifications as plain lines.
	OutputStdout OutputType = "stdout"
)

func ValidOutputType(s string) bool {
	switch OutputType(s) {
	case OutputSound, OutputVisual, OutputBoth, OutputStdout:
		return true
	default:
		return false
	}
}

func (o OutputType) wantsVisual() bool {
	return o == OutputVisual || o == OutputBoth
}

func (o OutputType) wantsSound() bool {
	return o == OutputSound || o == OutputBoth
}

// Config holds notification preferences, loaded through the config hierarchy.
type Config struct {
	Enabled   bool          `koanf:"enabled" json:"enabled"`
	Type      OutputType    `koanf:"type" json:"type" validate:"oneof=sound visual both stdout"`
	SoundFile string        `koanf:"sound_file" json:"sound_file"`
	Title     string        `koanf:"title" json:"title" validate:"required"`
	Timeout   time.Duration `koanf:"timeout" json:"timeout" validate:"min=0"`
}

func DefaultConfig() Config {
	return Config{
		Enabled:   true,
		Type:      OutputVisual,
		SoundFile: "",
		Title:     "countdown",
		Timeout:   5 * time.Second,
	}
}

type Notification struct {
	Title            string
	Message          string
	NotificationType NotificationType
}

func NewNotification(title, message string, notificationType NotificationType) Notification {
	return Notification{
		Title:            title,
		Message:          message,
		NotificationType: notificationType,
	}
}
