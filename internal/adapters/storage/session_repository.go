package storage

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/tempo-cli/tempo/internal/domain"
	"github.com/tempo-cli/tempo/internal/ports"
)

// sessionRepository implements ports.SessionRepository using SQLite.
type sessionRepository struct {
	db *sql.DB
}

// newSessionRepository creates a new session repository.
func newSessionRepository(db *sql.DB) ports.SessionRepository {
	return &sessionRepository{db: db}
}

// Save persists a session record.
func (r *sessionRepository) Save(ctx context.Context, session *domain.Session) error {
	query := `
		INSERT INTO sessions (
			id, user_id, task_id, mode, duration_s, completed_at,
			interruptions, mood_before, mood_after, productivity, notes, tags
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		session.ID,
		session.UserID,
		session.TaskID,
		string(session.Mode),
		session.DurationSeconds,
		session.CompletedAt,
		session.Interruptions,
		nullableMood(session.MoodBefore),
		nullableMood(session.MoodAfter),
		session.Productivity,
		session.Notes,
		strings.Join(session.Tags, ","),
	)

	return classifyError("save session", err)
}

// FindByID retrieves a session by its unique identifier.
func (r *sessionRepository) FindByID(ctx context.Context, id string) (*domain.Session, error) {
	query := selectSessions + ` WHERE id = ?`
	session, err := scanSession(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, classifyError("find session", err)
	}
	return session, nil
}

// FindRecent retrieves up to limit sessions for a user, most recent first.
func (r *sessionRepository) FindRecent(ctx context.Context, userID string, limit int) ([]*domain.Session, error) {
	query := selectSessions + `
		WHERE user_id = ?
		ORDER BY completed_at DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, classifyError("query recent sessions", err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []*domain.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, classifyError("scan session", err)
		}
		sessions = append(sessions, session)
	}
	return sessions, classifyError("iterate sessions", rows.Err())
}

// CountForUser returns the total number of sessions for a user.
func (r *sessionRepository) CountForUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions WHERE user_id = ?`, userID).Scan(&count)
	if err != nil {
		return 0, classifyError("count sessions", err)
	}
	return count, nil
}

const selectSessions = `
	SELECT id, user_id, task_id, mode, duration_s, completed_at,
		interruptions, mood_before, mood_after, productivity, notes, tags
	FROM sessions`

// rowScanner abstracts over *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*domain.Session, error) {
	var session domain.Session
	var taskID sql.NullString
	var mode string
	var completedAt time.Time
	var moodBefore, moodAfter sql.NullString
	var productivity sql.NullInt64
	var notes, tags sql.NullString

	err := row.Scan(
		&session.ID,
		&session.UserID,
		&taskID,
		&mode,
		&session.DurationSeconds,
		&completedAt,
		&session.Interruptions,
		&moodBefore,
		&moodAfter,
		&productivity,
		&notes,
		&tags,
	)
	if err != nil {
		return nil, err
	}

	session.Mode = domain.Mode(mode)
	session.CompletedAt = completedAt
	if taskID.Valid {
		session.TaskID = &taskID.String
	}
	if moodBefore.Valid {
		m := domain.MoodLevel(moodBefore.String)
		session.MoodBefore = &m
	}
	if moodAfter.Valid {
		m := domain.MoodLevel(moodAfter.String)
		session.MoodAfter = &m
	}
	if productivity.Valid {
		p := int(productivity.Int64)
		session.Productivity = &p
	}
	session.Notes = notes.String
	if tags.String != "" {
		session.Tags = strings.Split(tags.String, ",")
	}

	return &session, nil
}

func nullableMood(m *domain.MoodLevel) *string {
	if m == nil {
		return nil
	}
	s := string(*m)
	return &s
}
