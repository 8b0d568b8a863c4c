package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/tempo-cli/tempo/internal/domain"
	"github.com/tempo-cli/tempo/internal/ports"
)

// moodRepository implements ports.MoodRepository using SQLite.
type moodRepository struct {
	db *sql.DB
}

// newMoodRepository creates a new mood entry repository.
func newMoodRepository(db *sql.DB) ports.MoodRepository {
	return &moodRepository{db: db}
}

// Save persists a mood entry.
func (r *moodRepository) Save(ctx context.Context, entry *domain.MoodEntry) error {
	query := `
		INSERT INTO mood_entries (id, user_id, mood, energy, stress, note, created_at, session_id, phase)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.UserID,
		string(entry.Mood),
		entry.Energy,
		entry.Stress,
		entry.Note,
		entry.CreatedAt,
		entry.SessionID,
		string(entry.Phase),
	)

	return classifyError("save mood entry", err)
}

// FindRecent retrieves up to limit entries for a user, most recent first.
func (r *moodRepository) FindRecent(ctx context.Context, userID string, limit int) ([]*domain.MoodEntry, error) {
	query := `
		SELECT id, user_id, mood, energy, stress, note, created_at, session_id, phase
		FROM mood_entries
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, classifyError("query mood entries", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*domain.MoodEntry
	for rows.Next() {
		var entry domain.MoodEntry
		var mood string
		var note sql.NullString
		var createdAt time.Time
		var sessionID sql.NullString
		var phase sql.NullString

		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&mood,
			&entry.Energy,
			&entry.Stress,
			&note,
			&createdAt,
			&sessionID,
			&phase,
		)
		if err != nil {
			return nil, classifyError("scan mood entry", err)
		}

		entry.Mood = domain.MoodLevel(mood)
		entry.Note = note.String
		entry.CreatedAt = createdAt
		if sessionID.Valid {
			entry.SessionID = &sessionID.String
		}
		entry.Phase = domain.MoodPhase(phase.String)
		entries = append(entries, &entry)
	}
	return entries, classifyError("iterate mood entries", rows.Err())
}
