package analytics

import (
	"testing"
	"time"

	"github.com/tempo-cli/tempo/internal/domain"
)

// ratedSession builds a work session with an explicit duration and rating.
func ratedSession(minutes, productivity int, completedAt time.Time) *domain.Session {
	s := workSession(completedAt, productivity, 0)
	s.DurationSeconds = minutes * 60
	return s
}

func TestOptimalSessionDurationThinHistory(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	var sessions []*domain.Session
	for i := 0; i < 4; i++ {
		sessions = append(sessions, ratedSession(50, 5, base.Add(time.Duration(i)*time.Hour)))
	}

	if got := OptimalSessionDuration(sessions); got != DefaultSessionMinutes {
		t.Errorf("OptimalSessionDuration() = %d, want default %d with under 5 sessions", got, DefaultSessionMinutes)
	}
}

func TestOptimalSessionDurationNoHighRatings(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	var sessions []*domain.Session
	for i := 0; i < 6; i++ {
		sessions = append(sessions, ratedSession(45, 2, base.Add(time.Duration(i)*time.Hour)))
	}

	if got := OptimalSessionDuration(sessions); got != DefaultSessionMinutes {
		t.Errorf("OptimalSessionDuration() = %d, want default %d with no 4+ ratings", got, DefaultSessionMinutes)
	}
}

func TestOptimalSessionDurationSnapsToOption(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	options := map[int]bool{20: true, 25: true, 30: true, 45: true, 50: true}

	// Highly rated sessions averaging 43 minutes snap to 45.
	var sessions []*domain.Session
	for i, minutes := range []int{40, 42, 44, 46, 43} {
		sessions = append(sessions, ratedSession(minutes, 5, base.Add(time.Duration(i)*time.Hour)))
	}

	got := OptimalSessionDuration(sessions)
	if got != 45 {
		t.Errorf("OptimalSessionDuration() = %d, want 45", got)
	}
	if !options[got] {
		t.Errorf("OptimalSessionDuration() = %d, not a valid option", got)
	}
}

func TestOptimalSessionDurationTiePrefersEarlierOption(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	// Mean of 22.5 is equidistant from 20 and 25; the earlier option wins.
	var sessions []*domain.Session
	for i, minutes := range []int{20, 25, 20, 25, 20, 25} {
		sessions = append(sessions, ratedSession(minutes, 4, base.Add(time.Duration(i)*time.Hour)))
	}

	if got := OptimalSessionDuration(sessions); got != 20 {
		t.Errorf("OptimalSessionDuration() = %d, want 20 on tie", got)
	}
}

func TestPredictNextSession(t *testing.T) {
	morning := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	engine := NewEngineWithClock(func() time.Time { return morning })

	t.Run("too few sessions", func(t *testing.T) {
		sessions := []*domain.Session{workSession(morning, 4, 0)}
		if got := engine.PredictNextSession(sessions); got != nil {
			t.Errorf("PredictNextSession() = %v, want nil", got)
		}
	})

	t.Run("predicts later today", func(t *testing.T) {
		// Best bucket is morning (hour 9); now is 08:00, so today qualifies.
		var sessions []*domain.Session
		for i := 0; i < 6; i++ {
			sessions = append(sessions, workSession(morning.AddDate(0, 0, -i).Add(time.Hour), 5, 0))
		}

		got := engine.PredictNextSession(sessions)
		if got == nil {
			t.Fatal("PredictNextSession() = nil, want prediction")
		}
		want := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("PredictNextSession() = %v, want %v", got, want)
		}
	})

	t.Run("shifts to tomorrow when hour passed", func(t *testing.T) {
		evening := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
		lateEngine := NewEngineWithClock(func() time.Time { return evening })

		var sessions []*domain.Session
		for i := 0; i < 6; i++ {
			sessions = append(sessions, workSession(evening.AddDate(0, 0, -i).Add(-time.Hour), 5, 0))
		}

		got := lateEngine.PredictNextSession(sessions)
		if got == nil {
			t.Fatal("PredictNextSession() = nil, want prediction")
		}
		want := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("PredictNextSession() = %v, want %v", got, want)
		}
	})
}
