package analytics

import (
	"testing"
	"time"

	"github.com/tempo-cli/tempo/internal/domain"
)

// workSession builds a completed work session for pattern tests.
func workSession(completedAt time.Time, productivity, interruptions int) *domain.Session {
	p := productivity
	return &domain.Session{
		ID:              domain.NewID(),
		UserID:          "user-1",
		Mode:            domain.ModeWork,
		DurationSeconds: 25 * 60,
		CompletedAt:     completedAt,
		Interruptions:   interruptions,
		Productivity:    &p,
	}
}

func TestTimeOfDayFor(t *testing.T) {
	tests := []struct {
		hour int
		want TimeOfDay
	}{
		{0, Night},
		{5, Night},
		{6, Morning},
		{11, Morning},
		{12, Afternoon},
		{17, Afternoon},
		{18, Evening},
		{21, Evening},
		{22, Night},
		{23, Night},
	}

	for _, tt := range tests {
		if got := TimeOfDayFor(tt.hour); got != tt.want {
			t.Errorf("TimeOfDayFor(%d) = %v, want %v", tt.hour, got, tt.want)
		}
	}
}

func TestAnalyzePatternsEmptyHistory(t *testing.T) {
	p := AnalyzePatterns(nil)

	if p.BestTimeOfDay != Morning {
		t.Errorf("BestTimeOfDay = %v, want %v", p.BestTimeOfDay, Morning)
	}
	if p.AverageSessionsPerDay != 0 {
		t.Errorf("AverageSessionsPerDay = %v, want 0", p.AverageSessionsPerDay)
	}
	if p.MostProductiveDay != time.Monday {
		t.Errorf("MostProductiveDay = %v, want Monday", p.MostProductiveDay)
	}
	if p.Trend != TrendStable {
		t.Errorf("Trend = %v, want stable", p.Trend)
	}
}

func TestAnalyzePatternsBestTimeOfDay(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // a Monday
	sessions := []*domain.Session{
		workSession(day.Add(9*time.Hour), 3, 0),  // morning
		workSession(day.Add(10*time.Hour), 3, 0), // morning
		workSession(day.Add(20*time.Hour), 5, 0), // evening
	}

	p := AnalyzePatterns(sessions)
	if p.BestTimeOfDay != Evening {
		t.Errorf("BestTimeOfDay = %v, want %v", p.BestTimeOfDay, Evening)
	}
}

func TestAnalyzePatternsTieGoesToEarlierBucket(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	sessions := []*domain.Session{
		workSession(day.Add(9*time.Hour), 4, 0),  // morning
		workSession(day.Add(14*time.Hour), 4, 0), // afternoon, same mean
	}

	p := AnalyzePatterns(sessions)
	if p.BestTimeOfDay != Morning {
		t.Errorf("BestTimeOfDay = %v, want %v on tie", p.BestTimeOfDay, Morning)
	}
}

func TestAnalyzePatternsAverageSessionsPerDay(t *testing.T) {
	day1 := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)
	sessions := []*domain.Session{
		workSession(day1, 3, 0),
		workSession(day1.Add(time.Hour), 3, 0),
		workSession(day1.Add(2*time.Hour), 3, 0),
		workSession(day2, 3, 0),
	}

	p := AnalyzePatterns(sessions)
	// 4 sessions across 2 distinct days.
	if p.AverageSessionsPerDay != 2.0 {
		t.Errorf("AverageSessionsPerDay = %v, want 2.0", p.AverageSessionsPerDay)
	}
	if p.AverageSessionsPerDay > float64(len(sessions)) {
		t.Errorf("AverageSessionsPerDay %v exceeds session count %d", p.AverageSessionsPerDay, len(sessions))
	}
}

func TestAnalyzePatternsMostProductiveDay(t *testing.T) {
	monday := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	wednesday := time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)
	sessions := []*domain.Session{
		workSession(monday, 2, 0),
		workSession(wednesday, 5, 0),
	}

	p := AnalyzePatterns(sessions)
	if p.MostProductiveDay != time.Wednesday {
		t.Errorf("MostProductiveDay = %v, want Wednesday", p.MostProductiveDay)
	}
}

func TestTrendDetection(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	// Newest-first: 10 highly rated sessions followed by 10 poorly rated.
	buildHistory := func(recentRating, olderRating int) []*domain.Session {
		var sessions []*domain.Session
		for i := 0; i < 10; i++ {
			sessions = append(sessions, workSession(base.Add(-time.Duration(i)*time.Hour), recentRating, 0))
		}
		for i := 10; i < 20; i++ {
			sessions = append(sessions, workSession(base.Add(-time.Duration(i)*time.Hour), olderRating, 0))
		}
		return sessions
	}

	tests := []struct {
		name   string
		recent int
		older  int
		want   Trend
	}{
		{name: "improving", recent: 5, older: 2, want: TrendImproving},
		{name: "declining", recent: 2, older: 5, want: TrendDeclining},
		{name: "stable within threshold", recent: 3, older: 3, want: TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := AnalyzePatterns(buildHistory(tt.recent, tt.older))
			if p.Trend != tt.want {
				t.Errorf("Trend = %v, want %v", p.Trend, tt.want)
			}
		})
	}
}

func TestTrendShortHistoryIsStable(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	var sessions []*domain.Session
	for i := 0; i < 10; i++ {
		sessions = append(sessions, workSession(base.Add(-time.Duration(i)*time.Hour), 5, 0))
	}

	// No older cohort to compare against.
	p := AnalyzePatterns(sessions)
	if p.Trend != TrendStable {
		t.Errorf("Trend = %v, want stable with only 10 sessions", p.Trend)
	}
}
