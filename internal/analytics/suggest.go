package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/tempo-cli/tempo/internal/domain"
)

// Engine generates suggestions from session and mood history. The only
// state it carries is the clock, injectable for deterministic tests.
type Engine struct {
	now func() time.Time
}

// NewEngine creates an engine using the wall clock.
func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// NewEngineWithClock creates an engine with a fixed clock source.
func NewEngineWithClock(now func() time.Time) *Engine {
	return &Engine{now: now}
}

// Now returns the engine's current time.
func (e *Engine) Now() time.Time {
	return e.now()
}

// GenerateSuggestions evaluates every suggestion rule independently and
// returns the suggestions in generation order, which doubles as display
// priority. Histories are assumed newest-first and may be empty.
func (e *Engine) GenerateSuggestions(user *domain.User, sessions []*domain.Session, moods []*domain.MoodEntry) []*domain.Suggestion {
	now := e.now()
	var out []*domain.Suggestion

	patterns := AnalyzePatterns(sessions)

	// Rule 1: a handful of sessions means the habit is just forming.
	if len(sessions) >= 1 && len(sessions) < 5 {
		out = append(out, domain.NewSuggestion(user.ID, domain.SuggestionProductivityTip,
			"Great start! Keep the streak going with another focus session today.",
			0.95,
			[]string{fmt.Sprintf("You have completed %d sessions so far", len(sessions))},
			now))
	}

	// Rule 2: enough history to name a best time of day.
	if len(sessions) >= 5 {
		confidence := 0.65
		if len(sessions) >= 10 {
			confidence = 0.85
		}
		suggestion := domain.NewSuggestion(user.ID, domain.SuggestionOptimalTime,
			fmt.Sprintf("You focus best in the %s. Try scheduling your next session then.", patterns.BestTimeOfDay),
			confidence,
			[]string{fmt.Sprintf("Your %s sessions have the highest average productivity", patterns.BestTimeOfDay)},
			now)
		suggestion.SuggestedTime = e.PredictNextSession(sessions)
		out = append(out, suggestion)
	}

	// Rule 3: low recent mood plus sustained work suggests a break.
	if len(moods) > 0 && len(sessions) > 3 {
		recentMoods := moods
		if len(recentMoods) > 5 {
			recentMoods = recentMoods[:5]
		}
		if meanMoodScore(recentMoods) < domain.NeutralMoodScore {
			out = append(out, domain.NewSuggestion(user.ID, domain.SuggestionBreakReminder,
				"Your recent mood has been low. Consider a longer break before your next session.",
				0.75,
				[]string{"Average mood across your latest check-ins is below neutral"},
				now))
		}
	}

	// Rule 4: trend feedback, improving and declining mutually exclusive.
	switch patterns.Trend {
	case TrendImproving:
		out = append(out, domain.NewSuggestion(user.ID, domain.SuggestionProductivityTip,
			"Your productivity is trending up. Whatever you changed, keep doing it!",
			0.9,
			[]string{"Recent sessions rate higher than your earlier ones"},
			now))
	case TrendDeclining:
		out = append(out, domain.NewSuggestion(user.ID, domain.SuggestionProductivityTip,
			"Productivity has dipped lately. Shorter sessions or a change of scenery might help.",
			0.7,
			[]string{"Recent sessions rate lower than your earlier ones"},
			now))
	}

	// Rule 5: encourage a new mood-tracking habit.
	if len(moods) >= 1 && len(moods) <= 4 && now.Sub(moods[0].CreatedAt) < 24*time.Hour {
		out = append(out, domain.NewSuggestion(user.ID, domain.SuggestionMoodCheck,
			fmt.Sprintf("Nice job tracking your mood %s Keep logging to unlock better insights.", moods[0].Mood.Emoji()),
			0.9,
			[]string{"You logged a mood entry within the last day"},
			now))
	}

	// Rule 6: prompt for a mood check-in after a gap. No entries at all
	// counts as an infinite gap. More than 3 sessions are required, the
	// same floor as the break reminder.
	hoursSinceMood := math.Inf(1)
	if len(moods) > 0 {
		hoursSinceMood = now.Sub(moods[0].CreatedAt).Hours()
	}
	if hoursSinceMood > 4 && len(sessions) > 3 {
		out = append(out, domain.NewSuggestion(user.ID, domain.SuggestionMoodCheck,
			"How are you feeling? Log a quick mood check-in between sessions.",
			0.8,
			[]string{"It has been a while since your last mood entry"},
			now))
	}

	// Rule 7: weekly goal far from observed pace.
	if patterns.AverageSessionsPerDay > 0 {
		weeklyGoal := user.Preferences.WeeklyGoal
		if weeklyGoal == 0 {
			weeklyGoal = domain.DefaultPreferences().WeeklyGoal
		}
		suggested := int(math.Round(patterns.AverageSessionsPerDay * 7))
		if diff := suggested - weeklyGoal; diff > 5 || diff < -5 {
			out = append(out, domain.NewSuggestion(user.ID, domain.SuggestionGoalAdjustment,
				fmt.Sprintf("Based on your pace, a weekly goal of %d sessions would fit better than %d.", suggested, weeklyGoal),
				0.75,
				[]string{fmt.Sprintf("You average %.1f sessions per day", patterns.AverageSessionsPerDay)},
				now))
		}
	}

	return out
}

func meanMoodScore(moods []*domain.MoodEntry) float64 {
	if len(moods) == 0 {
		return domain.NeutralMoodScore
	}
	sum := 0.0
	for _, m := range moods {
		sum += float64(m.Mood.Score())
	}
	return sum / float64(len(moods))
}
