// Package ports defines the interfaces (driven and driving ports) for the
// Tempo application following hexagonal architecture principles. These
// interfaces define the contracts between the domain layer and external
// infrastructure.
package ports

import (
	"context"

	"github.com/tempo-cli/tempo/internal/domain"
)

// SessionRepository defines the interface for session persistence.
// This is a driven port (implemented by adapters).
type SessionRepository interface {
	// Save persists a session record. Sessions are append-only.
	Save(ctx context.Context, session *domain.Session) error

	// FindByID retrieves a session by its unique identifier.
	FindByID(ctx context.Context, id string) (*domain.Session, error)

	// FindRecent retrieves up to limit sessions for a user, most recent
	// first.
	FindRecent(ctx context.Context, userID string, limit int) ([]*domain.Session, error)

	// CountForUser returns the total number of sessions for a user.
	CountForUser(ctx context.Context, userID string) (int, error)
}

// MoodRepository defines the interface for mood entry persistence.
// This is a driven port (implemented by adapters).
type MoodRepository interface {
	// Save persists a mood entry. Entries are immutable.
	Save(ctx context.Context, entry *domain.MoodEntry) error

	// FindRecent retrieves up to limit entries for a user, most recent
	// first.
	FindRecent(ctx context.Context, userID string, limit int) ([]*domain.MoodEntry, error)
}

// SuggestionRepository tracks dismiss/accept state for generated
// suggestions. This is a driven port (implemented by adapters).
type SuggestionRepository interface {
	// Save persists a generated suggestion.
	Save(ctx context.Context, suggestion *domain.Suggestion) error

	// FindRecent retrieves up to limit suggestions for a user, most recent
	// first.
	FindRecent(ctx context.Context, userID string, limit int) ([]*domain.Suggestion, error)

	// Dismiss marks a suggestion as dismissed.
	Dismiss(ctx context.Context, id string) error

	// Accept marks a suggestion as accepted.
	Accept(ctx context.Context, id string) error
}

// TaskRepository defines the interface for task persistence.
// This is a driven port (implemented by adapters).
type TaskRepository interface {
	// Save persists a task to storage.
	Save(ctx context.Context, task *domain.Task) error

	// FindByID retrieves a task by its unique identifier.
	FindByID(ctx context.Context, id string) (*domain.Task, error)

	// FindAll retrieves all tasks, optionally filtered by status.
	FindAll(ctx context.Context, status *domain.TaskStatus) ([]*domain.Task, error)

	// Update modifies an existing task.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from storage.
	Delete(ctx context.Context, id string) error
}

// Storage is the combined repository interface.
// This is a driven port (implemented by adapters).
type Storage interface {
	// Sessions provides access to session operations.
	Sessions() SessionRepository

	// Moods provides access to mood entry operations.
	Moods() MoodRepository

	// Suggestions provides access to suggestion operations.
	Suggestions() SuggestionRepository

	// Tasks provides access to task operations.
	Tasks() TaskRepository

	// Close closes the storage connection.
	Close() error

	// Migrate runs database migrations.
	Migrate() error
}
