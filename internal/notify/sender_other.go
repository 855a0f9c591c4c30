//go:build !linux

package notify

func newPlatformSender() Sender {
	return &noopSender{}
}
