// Package notify delivers countdown notifications and completion alerts
// through the host's native tools.
//
// Visual notifications go through notify-send and sounds through paplay on
// Linux; other platforms get a no-op sender. Everything degrades quietly when
// a tool, a display or an interactive terminal is missing.
package notify
