package storage

import (
	"context"
	"database/sql"
	"strings"

	"github.com/tempo-cli/tempo/internal/domain"
	"github.com/tempo-cli/tempo/internal/ports"
)

// taskRepository implements ports.TaskRepository using SQLite.
type taskRepository struct {
	db *sql.DB
}

// newTaskRepository creates a new task repository.
func newTaskRepository(db *sql.DB) ports.TaskRepository {
	return &taskRepository{db: db}
}

// Save persists a task to storage.
func (r *taskRepository) Save(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (id, title, notes, status, tags, estimated_sessions, created_at, updated_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		task.ID,
		task.Title,
		task.Notes,
		string(task.Status),
		strings.Join(task.Tags, ","),
		task.EstimatedSessions,
		task.CreatedAt,
		task.UpdatedAt,
		task.CompletedAt,
	)

	return classifyError("save task", err)
}

// FindByID retrieves a task by its unique identifier.
func (r *taskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	query := selectTasks + ` WHERE id = ?`

	task, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrTaskNotFound
	}
	if err != nil {
		return nil, classifyError("find task", err)
	}
	return task, nil
}

// FindAll retrieves all tasks, optionally filtered by status.
func (r *taskRepository) FindAll(ctx context.Context, status *domain.TaskStatus) ([]*domain.Task, error) {
	query := selectTasks
	var args []any
	if status != nil {
		query += ` WHERE status = ?`
		args = append(args, string(*status))
	}
	query += ` ORDER BY updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classifyError("query tasks", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, classifyError("scan task", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, classifyError("iterate tasks", rows.Err())
}

// Update modifies an existing task.
func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	query := `
		UPDATE tasks
		SET title = ?, notes = ?, status = ?, tags = ?, estimated_sessions = ?, updated_at = ?, completed_at = ?
		WHERE id = ?
	`

	res, err := r.db.ExecContext(ctx, query,
		task.Title,
		task.Notes,
		string(task.Status),
		strings.Join(task.Tags, ","),
		task.EstimatedSessions,
		task.UpdatedAt,
		task.CompletedAt,
		task.ID,
	)
	if err != nil {
		return classifyError("update task", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return classifyError("update task", err)
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// Delete removes a task from storage.
func (r *taskRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	return classifyError("delete task", err)
}

const selectTasks = `
	SELECT id, title, notes, status, tags, estimated_sessions, created_at, updated_at, completed_at
	FROM tasks`

func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var notes, tagsStr sql.NullString
	var status string
	var completedAt sql.NullTime

	err := row.Scan(
		&task.ID,
		&task.Title,
		&notes,
		&status,
		&tagsStr,
		&task.EstimatedSessions,
		&task.CreatedAt,
		&task.UpdatedAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Notes = notes.String
	task.Status = domain.TaskStatus(status)
	if tagsStr.String != "" {
		task.Tags = strings.Split(tagsStr.String, ",")
	} else {
		task.Tags = []string{}
	}
	if completedAt.Valid {
		task.CompletedAt = &completedAt.Time
	}

	return &task, nil
}
