package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/tempo-cli/tempo/internal/domain"
	"github.com/tempo-cli/tempo/internal/ports"
)

// suggestionRepository implements ports.SuggestionRepository using SQLite.
type suggestionRepository struct {
	db *sql.DB
}

// newSuggestionRepository creates a new suggestion repository.
func newSuggestionRepository(db *sql.DB) ports.SuggestionRepository {
	return &suggestionRepository{db: db}
}

// Save persists a generated suggestion.
func (r *suggestionRepository) Save(ctx context.Context, suggestion *domain.Suggestion) error {
	query := `
		INSERT INTO suggestions (
			id, user_id, type, message, confidence, reasons,
			created_at, dismissed, accepted, suggested_time
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	reasonsJSON, _ := json.Marshal(suggestion.Reasons)

	_, err := r.db.ExecContext(ctx, query,
		suggestion.ID,
		suggestion.UserID,
		string(suggestion.Type),
		suggestion.Message,
		suggestion.Confidence,
		string(reasonsJSON),
		suggestion.CreatedAt,
		suggestion.Dismissed,
		suggestion.Accepted,
		suggestion.SuggestedTime,
	)

	return classifyError("save suggestion", err)
}

// FindRecent retrieves up to limit suggestions for a user, most recent
// first.
func (r *suggestionRepository) FindRecent(ctx context.Context, userID string, limit int) ([]*domain.Suggestion, error) {
	query := `
		SELECT id, user_id, type, message, confidence, reasons,
			created_at, dismissed, accepted, suggested_time
		FROM suggestions
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, classifyError("query suggestions", err)
	}
	defer func() { _ = rows.Close() }()

	var suggestions []*domain.Suggestion
	for rows.Next() {
		var s domain.Suggestion
		var typ string
		var reasonsJSON sql.NullString
		var createdAt time.Time
		var accepted sql.NullBool
		var suggestedTime sql.NullTime

		err := rows.Scan(
			&s.ID,
			&s.UserID,
			&typ,
			&s.Message,
			&s.Confidence,
			&reasonsJSON,
			&createdAt,
			&s.Dismissed,
			&accepted,
			&suggestedTime,
		)
		if err != nil {
			return nil, classifyError("scan suggestion", err)
		}

		s.Type = domain.SuggestionType(typ)
		s.CreatedAt = createdAt
		if reasonsJSON.Valid {
			_ = json.Unmarshal([]byte(reasonsJSON.String), &s.Reasons)
		}
		if accepted.Valid {
			s.Accepted = &accepted.Bool
		}
		if suggestedTime.Valid {
			s.SuggestedTime = &suggestedTime.Time
		}
		suggestions = append(suggestions, &s)
	}
	return suggestions, classifyError("iterate suggestions", rows.Err())
}

// Dismiss marks a suggestion as dismissed.
func (r *suggestionRepository) Dismiss(ctx context.Context, id string) error {
	return r.setFlag(ctx, id, `UPDATE suggestions SET dismissed = 1 WHERE id = ?`)
}

// Accept marks a suggestion as accepted.
func (r *suggestionRepository) Accept(ctx context.Context, id string) error {
	return r.setFlag(ctx, id, `UPDATE suggestions SET accepted = 1 WHERE id = ?`)
}

func (r *suggestionRepository) setFlag(ctx context.Context, id, query string) error {
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return classifyError("update suggestion", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return classifyError("update suggestion", err)
	}
	if affected == 0 {
		return domain.ErrSuggestionNotFound
	}
	return nil
}
