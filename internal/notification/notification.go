// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/petpost/petpost/internal/logger"
)

// AppName is the title prefix of every notification
const AppName = "petpost"

// NotifyFunc matches beeep.Notify
type NotifyFunc func(title, message string, icon any) error

var (
	mu       sync.Mutex
	notifier NotifyFunc = beeep.Notify
)

// SetNotifier replaces the function used to deliver notifications. Used by tests.
func SetNotifier(fn NotifyFunc) {
	mu.Lock()
	defer mu.Unlock()
	notifier = fn
}

// ResetNotifier restores beeep as the notifier.
func ResetNotifier() {
	SetNotifier(beeep.Notify)
}

// Send sends a desktop notification with the given title and message.
func Send(title, message string) error {
	mu.Lock()
	fn := notifier
	mu.Unlock()

	log := logger.ComponentLogger("Notification")
	log.Debug("sending notification", "title", title, "message", message)
	// Empty icon; beeep picks the platform default.
	if err := fn(title, message, ""); err != nil {
		log.Warn("failed to send notification", "error", err)
		return err
	}
	return nil
}

// PublicationResult notifies the outcome of a submission. title is the
// notice title shown in the TUI.
func PublicationResult(title, message string) error {
	if title == "" {
		title = AppName
	} else {
		title = AppName + ": " + title
	}
	return Send(title, message)
}
