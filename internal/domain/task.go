package domain

import (
	"time"
)

// TaskStatus represents the current state of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusCancelled  TaskStatus = "cancelled"
)

// Task is a unit of planned work that sessions can be attributed to.
type Task struct {
	ID                string
	Title             string
	Notes             string
	Status            TaskStatus
	Tags              []string
	EstimatedSessions int
	CreatedAt         time.Time
	UpdatedAt         time.Time
	CompletedAt       *time.Time
}

// NewTask creates a new pending task with the given title.
func NewTask(title, notes string, tags []string, estimatedSessions int) (*Task, error) {
	if title == "" {
		return nil, ErrEmptyTaskTitle
	}
	if tags == nil {
		tags = []string{}
	}
	now := time.Now()
	return &Task{
		ID:                generateID(),
		Title:             title,
		Notes:             notes,
		Status:            StatusPending,
		Tags:              tags,
		EstimatedSessions: estimatedSessions,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// Start marks the task as in progress.
func (t *Task) Start() {
	t.Status = StatusInProgress
	t.UpdatedAt = time.Now()
}

// Complete marks the task as completed.
func (t *Task) Complete() {
	now := time.Now()
	t.Status = StatusCompleted
	t.CompletedAt = &now
	t.UpdatedAt = now
}

// Cancel marks the task as cancelled.
func (t *Task) Cancel() {
	t.Status = StatusCancelled
	t.UpdatedAt = time.Now()
}

// IsActive returns true if the task is currently being worked on.
func (t *Task) IsActive() bool {
	return t.Status == StatusInProgress
}
