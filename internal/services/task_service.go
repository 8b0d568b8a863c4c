package services

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/tempo-cli/tempo/internal/domain"
	"github.com/tempo-cli/tempo/internal/ports"
)

// TaskService handles task management use cases.
type TaskService struct {
	storage ports.Storage
	logger  *log.Logger
}

// NewTaskService creates a new task service.
func NewTaskService(storage ports.Storage, logger *log.Logger) *TaskService {
	if logger == nil {
		logger = log.Default()
	}
	return &TaskService{storage: storage, logger: logger}
}

// CreateTaskRequest carries the fields needed to create a task.
type CreateTaskRequest struct {
	Title             string
	Notes             string
	Tags              []string
	EstimatedSessions int
}

// CreateTask creates and persists a new task.
func (s *TaskService) CreateTask(ctx context.Context, req CreateTaskRequest) (*domain.Task, error) {
	task, err := domain.NewTask(req.Title, req.Notes, req.Tags, req.EstimatedSessions)
	if err != nil {
		return nil, err
	}

	if err := s.storage.Tasks().Save(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}
	return task, nil
}

// GetTask retrieves a task by ID.
func (s *TaskService) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return s.storage.Tasks().FindByID(ctx, id)
}

// ListTasks returns all tasks, optionally filtered by status.
func (s *TaskService) ListTasks(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error) {
	var filter *domain.TaskStatus
	if status != "" {
		filter = &status
	}
	tasks, err := s.storage.Tasks().FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// StartTask marks a task as in progress.
func (s *TaskService) StartTask(ctx context.Context, id string) (*domain.Task, error) {
	return s.transition(ctx, id, (*domain.Task).Start)
}

// CompleteTask marks a task as done.
func (s *TaskService) CompleteTask(ctx context.Context, id string) (*domain.Task, error) {
	return s.transition(ctx, id, (*domain.Task).Complete)
}

// CancelTask marks a task as cancelled.
func (s *TaskService) CancelTask(ctx context.Context, id string) (*domain.Task, error) {
	return s.transition(ctx, id, (*domain.Task).Cancel)
}

// DeleteTask removes a task permanently.
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	return s.storage.Tasks().Delete(ctx, id)
}

func (s *TaskService) transition(ctx context.Context, id string, apply func(*domain.Task)) (*domain.Task, error) {
	task, err := s.storage.Tasks().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	apply(task)

	if err := s.storage.Tasks().Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}
