package services

import (
	"context"

	"github.com/tempo-cli/tempo/internal/domain"
	"github.com/tempo-cli/tempo/internal/ports"
)

// StateProvider exposes history and insights to external surfaces such as
// the MCP server by delegating to the session and insight services.
type StateProvider struct {
	sessions *SessionService
	insights *InsightService
}

// NewStateProvider creates a provider over the given services.
func NewStateProvider(sessions *SessionService, insights *InsightService) *StateProvider {
	return &StateProvider{sessions: sessions, insights: insights}
}

// Ensure StateProvider implements ports.MCPStateProvider.
var _ ports.MCPStateProvider = (*StateProvider)(nil)

// RecentSessions returns the current user's recent sessions, newest first.
func (p *StateProvider) RecentSessions(ctx context.Context, limit int) ([]*domain.Session, error) {
	return p.sessions.History(ctx, limit)
}

// RecentMoods returns the current user's recent mood entries, newest first.
func (p *StateProvider) RecentMoods(ctx context.Context, limit int) ([]*domain.MoodEntry, error) {
	return p.sessions.Moods(ctx, limit)
}

// LogMood records a mood check-in.
func (p *StateProvider) LogMood(ctx context.Context, mood domain.MoodLevel, energy, stress int, note string) (*domain.MoodEntry, error) {
	return p.sessions.LogMood(ctx, mood, energy, stress, note)
}

// Insights computes a fresh insight report.
func (p *StateProvider) Insights(ctx context.Context) (*ports.InsightReport, error) {
	return p.insights.Refresh(ctx)
}
