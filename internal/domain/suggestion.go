package domain

import "time"

// SuggestionType is a closed enumeration of insight categories.
type SuggestionType string

const (
	SuggestionOptimalTime     SuggestionType = "optimal_time"
	SuggestionBreakReminder   SuggestionType = "break_reminder"
	SuggestionProductivityTip SuggestionType = "productivity_tip"
	SuggestionMoodCheck       SuggestionType = "mood_check"
	SuggestionGoalAdjustment  SuggestionType = "goal_adjustment"
)

// Suggestion is a derived, ephemeral insight. It is recomputed on each
// analytics pass; persistence only exists to track dismiss/accept state.
type Suggestion struct {
	ID            string
	UserID        string
	Type          SuggestionType
	Message       string
	Confidence    float64
	Reasons       []string
	CreatedAt     time.Time
	Dismissed     bool
	Accepted      *bool
	SuggestedTime *time.Time
}

// NewSuggestion creates a suggestion with a fresh id. Confidence is clamped
// to [0,1].
func NewSuggestion(userID string, typ SuggestionType, message string, confidence float64, reasons []string, createdAt time.Time) *Suggestion {
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return &Suggestion{
		ID:         generateID(),
		UserID:     userID,
		Type:       typ,
		Message:    message,
		Confidence: confidence,
		Reasons:    reasons,
		CreatedAt:  createdAt,
	}
}
