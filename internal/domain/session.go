// Package domain contains the core business entities for Tempo.
// These entities represent the fundamental concepts of the focus tracking
// system and are independent of any external frameworks or infrastructure.
package domain

import (
	"time"
)

// Mode represents the kind of focus interval.
type Mode string

const (
	ModeWork       Mode = "work"
	ModeShortBreak Mode = "short_break"
	ModeLongBreak  Mode = "long_break"
)

// ValidModes lists all supported mode values.
var ValidModes = []Mode{ModeWork, ModeShortBreak, ModeLongBreak}

// ValidateMode checks if a string is a valid mode.
func ValidateMode(s string) (Mode, error) {
	m := Mode(s)
	for _, valid := range ValidModes {
		if m == valid {
			return m, nil
		}
	}
	return "", ErrInvalidMode
}

// Label returns a human-readable label for the mode.
func (m Mode) Label() string {
	switch m {
	case ModeWork:
		return "Work"
	case ModeShortBreak:
		return "Short Break"
	case ModeLongBreak:
		return "Long Break"
	default:
		return "Unknown"
	}
}

// DefaultProductivity is assumed for sessions without an explicit rating.
const DefaultProductivity = 3

// Session represents one completed (or abandoned) focus or break interval.
// Sessions are append-only: once recorded they are never mutated.
type Session struct {
	ID              string
	UserID          string
	TaskID          *string
	Mode            Mode
	DurationSeconds int
	CompletedAt     time.Time
	Interruptions   int
	MoodBefore      *MoodLevel
	MoodAfter       *MoodLevel
	Productivity    *int
	Notes           string
	Tags            []string
}

// NewWorkSession builds the record for a finished work interval.
func NewWorkSession(userID string, duration time.Duration, interruptions int, completedAt time.Time) *Session {
	return &Session{
		ID:              generateID(),
		UserID:          userID,
		Mode:            ModeWork,
		DurationSeconds: int(duration.Seconds()),
		CompletedAt:     completedAt,
		Interruptions:   interruptions,
	}
}

// Normalize fills optional fields with their documented defaults and clamps
// out-of-range values. It is applied once at the boundary so downstream
// computations always see fully populated records.
func (s *Session) Normalize() {
	if s.Productivity == nil {
		p := DefaultProductivity
		s.Productivity = &p
	}
	if *s.Productivity < 1 {
		*s.Productivity = 1
	}
	if *s.Productivity > 5 {
		*s.Productivity = 5
	}
	if s.Interruptions < 0 {
		s.Interruptions = 0
	}
}

// ProductivityOrDefault returns the productivity rating, defaulting to 3
// when the session was never rated.
func (s *Session) ProductivityOrDefault() int {
	if s.Productivity == nil {
		return DefaultProductivity
	}
	return *s.Productivity
}

// Duration returns the interval length as a time.Duration.
func (s *Session) Duration() time.Duration {
	return time.Duration(s.DurationSeconds) * time.Second
}

// DurationMinutes returns the interval length in minutes.
func (s *Session) DurationMinutes() float64 {
	return float64(s.DurationSeconds) / 60
}

// IsWork returns true if this is a work session.
func (s *Session) IsWork() bool {
	return s.Mode == ModeWork
}

// IsBreak returns true if this is a break session.
func (s *Session) IsBreak() bool {
	return s.Mode == ModeShortBreak || s.Mode == ModeLongBreak
}

// SetWorkspaceContext tags the session with the repository and branch that
// were checked out while it ran.
func (s *Session) SetWorkspaceContext(repository, branch string) {
	if repository != "" {
		s.Tags = append(s.Tags, "repo:"+repository)
	}
	if branch != "" {
		s.Tags = append(s.Tags, "branch:"+branch)
	}
}
