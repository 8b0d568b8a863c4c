package ports

// Notifier dispatches user-facing notifications. Fire and forget: failures
// are logged by callers and never block a state transition.
// This is a driven port (implemented by adapters).
type Notifier interface {
	// Notify displays a notification with the given title and body.
	Notify(title, body string) error
}

// CuePlayer plays completion feedback cues. Both operations are
// best-effort.
// This is a driven port (implemented by adapters).
type CuePlayer interface {
	// PlaySound plays the completion sound.
	PlaySound() error

	// Haptic triggers a haptic-style cue.
	Haptic() error
}
