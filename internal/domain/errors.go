package domain

import "errors"

// Common domain errors.
var (
	ErrInvalidMode         = errors.New("invalid mode")
	ErrInvalidMoodLevel    = errors.New("invalid mood level")
	ErrMoodScaleOutOfRange = errors.New("energy and stress must be between 1 and 5")
	ErrEmptyTaskTitle      = errors.New("task title cannot be empty")
	ErrTaskNotFound        = errors.New("task not found")
	ErrSessionNotFound     = errors.New("session not found")
	ErrSuggestionNotFound  = errors.New("suggestion not found")
	ErrNoCurrentUser       = errors.New("no current user configured")

	// ErrStorageUnavailable marks transient persistence failures (offline,
	// locked database) so callers can degrade silently instead of surfacing
	// an error.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
