package ports

import (
	"context"
	"time"

	"github.com/tempo-cli/tempo/internal/analytics"
	"github.com/tempo-cli/tempo/internal/domain"
	"github.com/tempo-cli/tempo/internal/timer"
)

// MCPHandler defines the interface for MCP server operations.
// This is a driving port (called by the application layer).
type MCPHandler interface {
	// Start begins serving MCP requests.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the server.
	Stop() error
}

// TimerControl exposes the countdown state machine to driving adapters.
type TimerControl interface {
	Start()
	Pause()
	Reset()
	Skip()
	SwitchMode(mode domain.Mode)
	Snapshot() timer.Snapshot
}

// MCPStateProvider provides history and insights to the MCP server.
// This is a driven port (implemented by the services layer).
type MCPStateProvider interface {
	// RecentSessions returns recent session records, newest first.
	RecentSessions(ctx context.Context, limit int) ([]*domain.Session, error)

	// RecentMoods returns recent mood entries, newest first.
	RecentMoods(ctx context.Context, limit int) ([]*domain.MoodEntry, error)

	// LogMood records a mood check-in.
	LogMood(ctx context.Context, mood domain.MoodLevel, energy, stress int, note string) (*domain.MoodEntry, error)

	// Insights computes the current analytics summary.
	Insights(ctx context.Context) (*InsightReport, error)
}

// InsightReport bundles the output of one analytics pass.
type InsightReport struct {
	GeneratedAt    time.Time
	Patterns       analytics.Patterns
	Burnout        analytics.BurnoutAssessment
	OptimalMinutes int
	NextSessionAt  *time.Time
	Suggestions    []*domain.Suggestion
}
