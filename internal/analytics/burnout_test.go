package analytics

import (
	"testing"
	"time"

	"github.com/tempo-cli/tempo/internal/domain"
)

func moodEntry(level domain.MoodLevel, createdAt time.Time) *domain.MoodEntry {
	return &domain.MoodEntry{
		ID:        domain.NewID(),
		UserID:    "user-1",
		Mood:      level,
		Energy:    3,
		Stress:    3,
		CreatedAt: createdAt,
	}
}

func TestDetectBurnoutRiskEmptyHistory(t *testing.T) {
	assessment := DetectBurnoutRisk(nil, nil)

	if assessment.Risk != RiskLow {
		t.Errorf("Risk = %v, want low", assessment.Risk)
	}
	if assessment.Score != 0 {
		t.Errorf("Score = %d, want 0", assessment.Score)
	}
	if len(assessment.Reasons) != 0 {
		t.Errorf("Reasons = %v, want none", assessment.Reasons)
	}
}

func TestDetectBurnoutRiskInterruptions(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	var calm, frazzled []*domain.Session
	for i := 0; i < 7; i++ {
		calm = append(calm, workSession(base.Add(-time.Duration(i)*time.Hour), 3, 1))
		frazzled = append(frazzled, workSession(base.Add(-time.Duration(i)*time.Hour), 3, 5))
	}

	if got := DetectBurnoutRisk(calm, nil); got.Score != 0 {
		t.Errorf("Score = %d for calm sessions, want 0", got.Score)
	}

	got := DetectBurnoutRisk(frazzled, nil)
	if got.Score != 2 {
		t.Errorf("Score = %d for frequent interruptions, want 2", got.Score)
	}
	if got.Risk != RiskMedium {
		t.Errorf("Risk = %v, want medium", got.Risk)
	}
}

func TestDetectBurnoutRiskLowMood(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	var lowMoods []*domain.MoodEntry
	for i := 0; i < 5; i++ {
		lowMoods = append(lowMoods, moodEntry(domain.MoodBad, base.Add(-time.Duration(i)*time.Hour)))
	}

	got := DetectBurnoutRisk(nil, lowMoods)
	if got.Score != 2 {
		t.Errorf("Score = %d for low mood, want 2", got.Score)
	}
	if got.Risk != RiskMedium {
		t.Errorf("Risk = %v, want medium", got.Risk)
	}
}

func TestDetectBurnoutRiskDecliningTrend(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	// Newest-first: recent sessions rate 2, older rate 5.
	var sessions []*domain.Session
	for i := 0; i < 10; i++ {
		sessions = append(sessions, workSession(base.Add(-time.Duration(i)*time.Hour), 2, 0))
	}
	for i := 10; i < 20; i++ {
		sessions = append(sessions, workSession(base.Add(-time.Duration(i)*time.Hour), 5, 0))
	}

	got := DetectBurnoutRisk(sessions, nil)
	if got.Score != 1 {
		t.Errorf("Score = %d for declining trend, want 1", got.Score)
	}
	if got.Risk != RiskLow {
		t.Errorf("Risk = %v, want low at score 1", got.Risk)
	}
}

func TestDetectBurnoutRiskCombinedSignalsEscalate(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	// Interrupted and declining sessions plus low mood: 2+2+1 = 5.
	var sessions []*domain.Session
	for i := 0; i < 10; i++ {
		sessions = append(sessions, workSession(base.Add(-time.Duration(i)*time.Hour), 2, 5))
	}
	for i := 10; i < 20; i++ {
		sessions = append(sessions, workSession(base.Add(-time.Duration(i)*time.Hour), 5, 5))
	}
	var moods []*domain.MoodEntry
	for i := 0; i < 5; i++ {
		moods = append(moods, moodEntry(domain.MoodVeryBad, base.Add(-time.Duration(i)*time.Hour)))
	}

	got := DetectBurnoutRisk(sessions, moods)
	if got.Score != 5 {
		t.Errorf("Score = %d, want 5", got.Score)
	}
	if got.Risk != RiskHigh {
		t.Errorf("Risk = %v, want high", got.Risk)
	}
	if len(got.Reasons) != 3 {
		t.Errorf("Reasons = %v, want 3 entries", got.Reasons)
	}
}

func TestDetectBurnoutRiskMonotonicInScore(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	// Adding a risk signal never lowers the risk level.
	var quiet []*domain.Session
	for i := 0; i < 7; i++ {
		quiet = append(quiet, workSession(base.Add(-time.Duration(i)*time.Hour), 3, 0))
	}
	noisy := make([]*domain.Session, 0, len(quiet))
	for i := 0; i < 7; i++ {
		noisy = append(noisy, workSession(base.Add(-time.Duration(i)*time.Hour), 3, 6))
	}

	rank := map[RiskLevel]int{RiskLow: 0, RiskMedium: 1, RiskHigh: 2}
	before := DetectBurnoutRisk(quiet, nil)
	after := DetectBurnoutRisk(noisy, nil)

	if after.Score < before.Score {
		t.Errorf("Score dropped from %d to %d after adding interruptions", before.Score, after.Score)
	}
	if rank[after.Risk] < rank[before.Risk] {
		t.Errorf("Risk dropped from %v to %v after adding interruptions", before.Risk, after.Risk)
	}
}
