package analytics

import (
	"github.com/tempo-cli/tempo/internal/domain"
)

// RiskLevel classifies burnout risk.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// BurnoutAssessment is the scored verdict with the conditions that fired.
type BurnoutAssessment struct {
	Risk    RiskLevel
	Score   int
	Reasons []string
}

// DetectBurnoutRisk scores burnout signals over the 14 most recent sessions
// and mood entries (inputs are newest-first). Risk is monotonic in score:
// >=4 high, >=2 medium, otherwise low.
func DetectBurnoutRisk(sessions []*domain.Session, moods []*domain.MoodEntry) BurnoutAssessment {
	recentSessions := sessions
	if len(recentSessions) > 14 {
		recentSessions = recentSessions[:14]
	}
	recentMoods := moods
	if len(recentMoods) > 14 {
		recentMoods = recentMoods[:14]
	}

	assessment := BurnoutAssessment{Risk: RiskLow}

	// An empty window contributes nothing rather than dividing by zero.
	last7 := recentSessions
	if len(last7) > 7 {
		last7 = last7[:7]
	}
	if len(last7) > 0 && meanInterruptions(last7) > 3 {
		assessment.Score += 2
		assessment.Reasons = append(assessment.Reasons, "frequent interruptions during recent sessions")
	}

	if len(recentMoods) > 0 && meanMoodScore(recentMoods) < domain.NeutralMoodScore {
		assessment.Score += 2
		assessment.Reasons = append(assessment.Reasons, "mood has been below neutral lately")
	}

	if float64(len(recentSessions))/7 > 8 {
		assessment.Score++
		assessment.Reasons = append(assessment.Reasons, "very high session volume")
	}

	if trendOf(sessions) == TrendDeclining {
		assessment.Score++
		assessment.Reasons = append(assessment.Reasons, "productivity is trending down")
	}

	switch {
	case assessment.Score >= 4:
		assessment.Risk = RiskHigh
	case assessment.Score >= 2:
		assessment.Risk = RiskMedium
	}
	return assessment
}

func meanInterruptions(sessions []*domain.Session) float64 {
	if len(sessions) == 0 {
		return 0
	}
	sum := 0
	for _, s := range sessions {
		sum += s.Interruptions
	}
	return float64(sum) / float64(len(sessions))
}
