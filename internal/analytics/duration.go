package analytics

import (
	"time"

	"github.com/tempo-cli/tempo/internal/domain"
)

// DefaultSessionMinutes is the fallback work duration recommendation.
const DefaultSessionMinutes = 25

// durationOptions are the candidate session lengths, in minutes. Order
// matters: on an exact tie the earlier candidate wins.
var durationOptions = []int{20, 25, 30, 45, 50}

// OptimalSessionDuration recommends a session length in minutes based on
// the durations of highly rated sessions. With fewer than five sessions, or
// none rated 4+, it returns the default.
func OptimalSessionDuration(sessions []*domain.Session) int {
	if len(sessions) < 5 {
		return DefaultSessionMinutes
	}

	var sum float64
	var count int
	for _, s := range sessions {
		if s.ProductivityOrDefault() >= 4 {
			sum += s.DurationMinutes()
			count++
		}
	}
	if count == 0 {
		return DefaultSessionMinutes
	}

	mean := sum / float64(count)
	best := durationOptions[0]
	for _, candidate := range durationOptions[1:] {
		if abs(float64(candidate)-mean) < abs(float64(best)-mean) {
			best = candidate
		}
	}
	return best
}

// bucketStartHours maps each time-of-day bucket to a representative hour.
var bucketStartHours = map[TimeOfDay]int{
	Morning:   9,
	Afternoon: 14,
	Evening:   19,
	Night:     21,
}

// PredictNextSession returns the predicted best start time for the next
// session, or nil when the history is too thin to predict. If the mapped
// hour has already passed today, the prediction shifts to tomorrow.
func (e *Engine) PredictNextSession(sessions []*domain.Session) *time.Time {
	if len(sessions) < 5 {
		return nil
	}

	patterns := AnalyzePatterns(sessions)
	now := e.now()
	hour := bucketStartHours[patterns.BestTimeOfDay]

	candidate := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !candidate.After(now) {
		candidate = candidate.AddDate(0, 0, 1)
	}
	return &candidate
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
