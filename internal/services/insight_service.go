package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/tempo-cli/tempo/internal/analytics"
	"github.com/tempo-cli/tempo/internal/domain"
	"github.com/tempo-cli/tempo/internal/ports"
)

// How much history one analytics pass considers.
const (
	sessionHistoryLimit = 50
	moodHistoryLimit    = 20
)

// InsightService runs the analytics engine over recent history. Refreshes
// may overlap (periodic and manual); a monotonically increasing request
// token makes sure a stale in-flight result never overwrites a newer one.
type InsightService struct {
	storage  ports.Storage
	identity ports.Identity
	engine   *analytics.Engine
	logger   *log.Logger

	token atomic.Uint64

	mu          sync.Mutex
	latest      *ports.InsightReport
	latestToken uint64
}

// NewInsightService creates a new insight service.
func NewInsightService(storage ports.Storage, identity ports.Identity, engine *analytics.Engine, logger *log.Logger) *InsightService {
	if logger == nil {
		logger = log.Default()
	}
	if engine == nil {
		engine = analytics.NewEngine()
	}
	return &InsightService{
		storage:  storage,
		identity: identity,
		engine:   engine,
		logger:   logger,
	}
}

// Refresh pulls recent history, computes a fresh report, and stores it as
// the latest unless a newer refresh finished first, in which case the
// superseding report is returned instead.
func (s *InsightService) Refresh(ctx context.Context) (*ports.InsightReport, error) {
	token := s.token.Add(1)

	user, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	sessions := s.loadSessions(ctx, user.ID)
	moods := s.loadMoods(ctx, user.ID)

	patterns := analytics.AnalyzePatterns(sessions)
	burnout := analytics.DetectBurnoutRisk(sessions, moods)
	suggestions := s.engine.GenerateSuggestions(user, sessions, moods)

	report := &ports.InsightReport{
		GeneratedAt:    s.engine.Now(),
		Patterns:       patterns,
		Burnout:        burnout,
		OptimalMinutes: analytics.OptimalSessionDuration(sessions),
		NextSessionAt:  s.engine.PredictNextSession(sessions),
		Suggestions:    suggestions,
	}

	// Suggestion persistence only exists for dismiss/accept tracking, so a
	// failure degrades to in-memory suggestions.
	for _, suggestion := range suggestions {
		if err := s.storage.Suggestions().Save(ctx, suggestion); err != nil {
			s.logger.Warn("failed to persist suggestion", "type", suggestion.Type, "err", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if token < s.latestToken {
		return s.latest, nil
	}
	s.latest = report
	s.latestToken = token
	return report, nil
}

// Latest returns the most recent report, or nil before the first refresh.
func (s *InsightService) Latest() *ports.InsightReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// Dismiss marks a persisted suggestion as dismissed.
func (s *InsightService) Dismiss(ctx context.Context, id string) error {
	return s.storage.Suggestions().Dismiss(ctx, id)
}

// Accept marks a persisted suggestion as accepted.
func (s *InsightService) Accept(ctx context.Context, id string) error {
	return s.storage.Suggestions().Accept(ctx, id)
}

// loadSessions fetches and normalizes recent sessions, degrading to no
// data on transient storage failures.
func (s *InsightService) loadSessions(ctx context.Context, userID string) []*domain.Session {
	sessions, err := s.storage.Sessions().FindRecent(ctx, userID, sessionHistoryLimit)
	if err != nil {
		if errors.Is(err, domain.ErrStorageUnavailable) {
			s.logger.Warn("storage unavailable, analyzing without session history")
		} else {
			s.logger.Error("failed to load sessions for analytics", "err", err)
		}
		return nil
	}
	for _, session := range sessions {
		session.Normalize()
	}
	return sessions
}

func (s *InsightService) loadMoods(ctx context.Context, userID string) []*domain.MoodEntry {
	moods, err := s.storage.Moods().FindRecent(ctx, userID, moodHistoryLimit)
	if err != nil {
		if errors.Is(err, domain.ErrStorageUnavailable) {
			s.logger.Warn("storage unavailable, analyzing without mood history")
		} else {
			s.logger.Error("failed to load moods for analytics", "err", err)
		}
		return nil
	}
	return moods
}
