package domain

import "time"

// Preferences holds the user-configurable timer and feedback settings.
// The core reads these; it never mutates them.
type Preferences struct {
	WorkDuration           time.Duration
	ShortBreakDuration     time.Duration
	LongBreakDuration      time.Duration
	SessionsUntilLongBreak int
	WeeklyGoal             int
	EnableNotifications    bool
	EnableSounds           bool
	EnableHaptics          bool
}

// DefaultPreferences returns the standard pomodoro settings.
func DefaultPreferences() Preferences {
	return Preferences{
		WorkDuration:           25 * time.Minute,
		ShortBreakDuration:     5 * time.Minute,
		LongBreakDuration:      15 * time.Minute,
		SessionsUntilLongBreak: 4,
		WeeklyGoal:             21,
		EnableNotifications:    true,
		EnableSounds:           true,
		EnableHaptics:          true,
	}
}

// DurationFor returns the configured duration for the given mode.
func (p Preferences) DurationFor(m Mode) time.Duration {
	switch m {
	case ModeShortBreak:
		return p.ShortBreakDuration
	case ModeLongBreak:
		return p.LongBreakDuration
	default:
		return p.WorkDuration
	}
}

// User identifies the owner of sessions and mood entries, along with their
// preferences. Identity resolution is delegated to a collaborator; the core
// never authenticates.
type User struct {
	ID          string
	Name        string
	Preferences Preferences
}
