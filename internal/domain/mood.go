package domain

import "time"

// MoodLevel is a five-point ordinal self-report scale.
type MoodLevel string

const (
	MoodVeryBad  MoodLevel = "very_bad"
	MoodBad      MoodLevel = "bad"
	MoodNeutral  MoodLevel = "neutral"
	MoodGood     MoodLevel = "good"
	MoodVeryGood MoodLevel = "very_good"
)

// NeutralMoodScore is the numeric midpoint of the five-level scale.
const NeutralMoodScore = 3

// ValidMoodLevels lists the five levels in ascending order.
var ValidMoodLevels = []MoodLevel{MoodVeryBad, MoodBad, MoodNeutral, MoodGood, MoodVeryGood}

// ValidateMoodLevel checks if a string is a valid mood level.
func ValidateMoodLevel(s string) (MoodLevel, error) {
	m := MoodLevel(s)
	for _, valid := range ValidMoodLevels {
		if m == valid {
			return m, nil
		}
	}
	return "", ErrInvalidMoodLevel
}

// Score maps the ordinal level to its numeric value (1-5).
func (m MoodLevel) Score() int {
	switch m {
	case MoodVeryBad:
		return 1
	case MoodBad:
		return 2
	case MoodNeutral:
		return 3
	case MoodGood:
		return 4
	case MoodVeryGood:
		return 5
	default:
		return NeutralMoodScore
	}
}

// Emoji returns the emoji keyed to the mood level.
func (m MoodLevel) Emoji() string {
	switch m {
	case MoodVeryBad:
		return "😞"
	case MoodBad:
		return "😕"
	case MoodNeutral:
		return "😐"
	case MoodGood:
		return "🙂"
	case MoodVeryGood:
		return "😄"
	default:
		return "😐"
	}
}

// MoodPhase links an entry to the session it was reported around.
type MoodPhase string

const (
	MoodPhaseBefore   MoodPhase = "before"
	MoodPhaseAfter    MoodPhase = "after"
	MoodPhaseUnlinked MoodPhase = ""
)

// MoodEntry is a point-in-time self-report. Entries are immutable once
// created and read-only for analytics.
type MoodEntry struct {
	ID        string
	UserID    string
	Mood      MoodLevel
	Energy    int
	Stress    int
	Note      string
	CreatedAt time.Time
	SessionID *string
	Phase     MoodPhase
}

// NewMoodEntry creates a mood entry, validating the 1-5 energy and stress
// ranges.
func NewMoodEntry(userID string, mood MoodLevel, energy, stress int, note string) (*MoodEntry, error) {
	if _, err := ValidateMoodLevel(string(mood)); err != nil {
		return nil, err
	}
	if energy < 1 || energy > 5 {
		return nil, ErrMoodScaleOutOfRange
	}
	if stress < 1 || stress > 5 {
		return nil, ErrMoodScaleOutOfRange
	}
	return &MoodEntry{
		ID:        generateID(),
		UserID:    userID,
		Mood:      mood,
		Energy:    energy,
		Stress:    stress,
		Note:      note,
		CreatedAt: time.Now(),
	}, nil
}

// LinkSession associates the entry with a session.
func (e *MoodEntry) LinkSession(sessionID string, phase MoodPhase) {
	e.SessionID = &sessionID
	e.Phase = phase
}
