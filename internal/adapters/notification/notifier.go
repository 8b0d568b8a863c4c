// Package notification provides desktop notification and completion cues.
package notification

import (
	"fmt"
	"os"

	"github.com/gen2brain/beeep"

	"github.com/tempo-cli/tempo/internal/domain"
)

// Notifier handles desktop notifications and completion cues. All
// operations are best-effort; callers decide what to do with failures.
type Notifier struct {
	prefs domain.Preferences
}

// New creates a new notifier with the given preferences.
func New(prefs domain.Preferences) *Notifier {
	return &Notifier{prefs: prefs}
}

// Notify displays a desktop notification if enabled.
func (n *Notifier) Notify(title, body string) error {
	if !n.prefs.EnableNotifications {
		return nil
	}
	return beeep.Notify(title, body, "")
}

// PlaySound plays the completion beep if sounds are enabled.
func (n *Notifier) PlaySound() error {
	if !n.prefs.EnableSounds {
		return nil
	}
	return beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration)
}

// Haptic approximates a haptic cue with the terminal bell.
func (n *Notifier) Haptic() error {
	if !n.prefs.EnableHaptics {
		return nil
	}
	_, err := fmt.Fprint(os.Stdout, "\a")
	return err
}
