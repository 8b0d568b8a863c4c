// Package analytics transforms a bounded history of session and mood
// records into productivity patterns, burnout risk, and suggestions.
// Everything here is a pure function over its inputs apart from the
// injectable clock; there is no hidden state, so concurrent calls are safe.
package analytics

import (
	"math"
	"time"

	"github.com/tempo-cli/tempo/internal/domain"
)

// TimeOfDay buckets a completion hour into one of four day segments.
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	Night     TimeOfDay = "night"
)

// timeOfDayOrder fixes iteration order so ties resolve deterministically.
var timeOfDayOrder = []TimeOfDay{Morning, Afternoon, Evening, Night}

// TimeOfDayFor buckets an hour: [6,12) morning, [12,18) afternoon,
// [18,22) evening, everything else night.
func TimeOfDayFor(hour int) TimeOfDay {
	switch {
	case hour >= 6 && hour < 12:
		return Morning
	case hour >= 12 && hour < 18:
		return Afternoon
	case hour >= 18 && hour < 22:
		return Evening
	default:
		return Night
	}
}

// Trend classifies the direction of recent productivity.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// Patterns summarizes where and when a user works best.
type Patterns struct {
	BestTimeOfDay         TimeOfDay
	AverageSessionsPerDay float64
	MostProductiveDay     time.Weekday
	Trend                 Trend
}

// meanAccumulator tracks a count and a sum for mean-productivity buckets.
type meanAccumulator struct {
	count int
	sum   float64
}

func (a *meanAccumulator) add(v float64) {
	a.count++
	a.sum += v
}

func (a *meanAccumulator) mean() float64 {
	if a.count == 0 {
		return 0
	}
	return a.sum / float64(a.count)
}

// AnalyzePatterns computes the productivity pattern summary for a session
// history. The input is assumed newest-first where ordering matters (trend);
// bucketing is order-independent. An empty history returns the documented
// defaults: morning, 0 sessions/day, Monday, stable.
func AnalyzePatterns(sessions []*domain.Session) Patterns {
	p := Patterns{
		BestTimeOfDay:     Morning,
		MostProductiveDay: time.Monday,
		Trend:             trendOf(sessions),
	}
	if len(sessions) == 0 {
		return p
	}

	byTime := map[TimeOfDay]*meanAccumulator{}
	byDay := map[time.Weekday]*meanAccumulator{}
	days := map[string]struct{}{}

	for _, s := range sessions {
		prod := float64(s.ProductivityOrDefault())

		tod := TimeOfDayFor(s.CompletedAt.Hour())
		if byTime[tod] == nil {
			byTime[tod] = &meanAccumulator{}
		}
		byTime[tod].add(prod)

		wd := s.CompletedAt.Weekday()
		if byDay[wd] == nil {
			byDay[wd] = &meanAccumulator{}
		}
		byDay[wd].add(prod)

		days[s.CompletedAt.Format("2006-01-02")] = struct{}{}
	}

	best := -1.0
	for _, tod := range timeOfDayOrder {
		if acc := byTime[tod]; acc != nil && acc.mean() > best {
			best = acc.mean()
			p.BestTimeOfDay = tod
		}
	}

	best = -1.0
	for d := time.Sunday; d <= time.Saturday; d++ {
		if acc := byDay[d]; acc != nil && acc.mean() > best {
			best = acc.mean()
			p.MostProductiveDay = d
		}
	}

	p.AverageSessionsPerDay = round1(float64(len(sessions)) / float64(len(days)))
	return p
}

// trendOf compares mean productivity of the 10 newest sessions against the
// next 10. Differences within 0.3 count as stable, as does a history too
// short to have an older cohort.
func trendOf(sessions []*domain.Session) Trend {
	recent := sessions
	if len(recent) > 10 {
		recent = recent[:10]
	}
	var older []*domain.Session
	if len(sessions) > 10 {
		older = sessions[10:]
		if len(older) > 10 {
			older = older[:10]
		}
	}
	if len(recent) == 0 || len(older) == 0 {
		return TrendStable
	}

	diff := meanProductivity(recent) - meanProductivity(older)
	switch {
	case diff > 0.3:
		return TrendImproving
	case diff < -0.3:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func meanProductivity(sessions []*domain.Session) float64 {
	if len(sessions) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range sessions {
		sum += float64(s.ProductivityOrDefault())
	}
	return sum / float64(len(sessions))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
