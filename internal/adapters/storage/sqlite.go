// Package storage provides SQLite implementations of the storage ports.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"modernc.org/sqlite"

	"github.com/tempo-cli/tempo/internal/domain"
	"github.com/tempo-cli/tempo/internal/ports"
)

// sqliteStorage implements the ports.Storage interface using SQLite.
type sqliteStorage struct {
	db             *sql.DB
	sessionRepo    ports.SessionRepository
	moodRepo       ports.MoodRepository
	suggestionRepo ports.SuggestionRepository
	taskRepo       ports.TaskRepository
}

// Ensure sqliteStorage implements ports.Storage.
var _ ports.Storage = (*sqliteStorage)(nil)

// New creates a new SQLite storage instance.
func New(dbPath string) (ports.Storage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys and WAL mode for better performance
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	storage := &sqliteStorage{
		db:             db,
		sessionRepo:    newSessionRepository(db),
		moodRepo:       newMoodRepository(db),
		suggestionRepo: newSuggestionRepository(db),
		taskRepo:       newTaskRepository(db),
	}

	if err := storage.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return storage, nil
}

// NewMemory creates a new in-memory SQLite storage instance for testing.
func NewMemory() (ports.Storage, error) {
	return New(":memory:")
}

// Sessions returns the session repository.
func (s *sqliteStorage) Sessions() ports.SessionRepository {
	return s.sessionRepo
}

// Moods returns the mood entry repository.
func (s *sqliteStorage) Moods() ports.MoodRepository {
	return s.moodRepo
}

// Suggestions returns the suggestion repository.
func (s *sqliteStorage) Suggestions() ports.SuggestionRepository {
	return s.suggestionRepo
}

// Tasks returns the task repository.
func (s *sqliteStorage) Tasks() ports.TaskRepository {
	return s.taskRepo
}

// Close closes the database connection.
func (s *sqliteStorage) Close() error {
	return s.db.Close()
}

// Migrate creates the database schema.
func (s *sqliteStorage) Migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		notes TEXT,
		status TEXT NOT NULL,
		tags TEXT,
		estimated_sessions INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		completed_at DATETIME
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);

	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		task_id TEXT,
		mode TEXT NOT NULL,
		duration_s INTEGER NOT NULL,
		completed_at DATETIME NOT NULL,
		interruptions INTEGER NOT NULL DEFAULT 0,
		mood_before TEXT,
		mood_after TEXT,
		productivity INTEGER,
		notes TEXT,
		tags TEXT,
		FOREIGN KEY (task_id) REFERENCES tasks(id) ON DELETE SET NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id, completed_at);

	CREATE TABLE IF NOT EXISTS mood_entries (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		mood TEXT NOT NULL,
		energy INTEGER NOT NULL,
		stress INTEGER NOT NULL,
		note TEXT,
		created_at DATETIME NOT NULL,
		session_id TEXT,
		phase TEXT,
		FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE SET NULL
	);

	CREATE INDEX IF NOT EXISTS idx_moods_user ON mood_entries(user_id, created_at);

	CREATE TABLE IF NOT EXISTS suggestions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		type TEXT NOT NULL,
		message TEXT NOT NULL,
		confidence REAL NOT NULL,
		reasons TEXT,
		created_at DATETIME NOT NULL,
		dismissed INTEGER NOT NULL DEFAULT 0,
		accepted INTEGER,
		suggested_time DATETIME
	);

	CREATE INDEX IF NOT EXISTS idx_suggestions_user ON suggestions(user_id, created_at);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// classifyError maps transient SQLite failures to the domain's unavailable
// sentinel so callers can distinguish offline from broken.
func classifyError(op string, err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case 5, 6, 14: // SQLITE_BUSY, SQLITE_LOCKED, SQLITE_CANTOPEN
			return fmt.Errorf("%s: %w: %v", op, domain.ErrStorageUnavailable, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
