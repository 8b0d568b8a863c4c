package domain

import (
	"testing"
)

func TestNewTask(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		wantErr     bool
		errExpected error
	}{
		{
			name:    "valid task",
			title:   "Implement feature X",
			wantErr: false,
		},
		{
			name:        "empty title",
			title:       "",
			wantErr:     true,
			errExpected: ErrEmptyTaskTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := NewTask(tt.title, "", nil, 0)

			if tt.wantErr {
				if err == nil {
					t.Errorf("NewTask() error = nil, wantErr %v", tt.wantErr)
					return
				}
				if tt.errExpected != nil && err != tt.errExpected {
					t.Errorf("NewTask() error = %v, want %v", err, tt.errExpected)
				}
				return
			}

			if err != nil {
				t.Errorf("NewTask() unexpected error = %v", err)
				return
			}

			if task == nil {
				t.Error("NewTask() returned nil task")
				return
			}

			if task.Title != tt.title {
				t.Errorf("NewTask() title = %v, want %v", task.Title, tt.title)
			}
			if task.Status != StatusPending {
				t.Errorf("NewTask() status = %v, want %v", task.Status, StatusPending)
			}
			if task.ID == "" {
				t.Error("NewTask() task has empty ID")
			}
			if task.Tags == nil {
				t.Error("NewTask() tags is nil, want empty slice")
			}
		})
	}
}

func TestNewTaskWithDetails(t *testing.T) {
	task, err := NewTask("Write docs", "user guide", []string{"docs", "v2"}, 3)
	if err != nil {
		t.Fatalf("NewTask() error = %v", err)
	}

	if task.Notes != "user guide" {
		t.Errorf("NewTask() notes = %q, want %q", task.Notes, "user guide")
	}
	if len(task.Tags) != 2 {
		t.Errorf("NewTask() tags = %v, want 2 entries", task.Tags)
	}
	if task.EstimatedSessions != 3 {
		t.Errorf("NewTask() estimatedSessions = %d, want 3", task.EstimatedSessions)
	}
}

func TestTaskTransitions(t *testing.T) {
	task, err := NewTask("Transition test", "", nil, 0)
	if err != nil {
		t.Fatalf("NewTask() error = %v", err)
	}

	task.Start()
	if task.Status != StatusInProgress {
		t.Errorf("Start() status = %v, want %v", task.Status, StatusInProgress)
	}
	if !task.IsActive() {
		t.Error("IsActive() = false after Start()")
	}

	task.Complete()
	if task.Status != StatusCompleted {
		t.Errorf("Complete() status = %v, want %v", task.Status, StatusCompleted)
	}
	if task.CompletedAt == nil {
		t.Error("Complete() did not set CompletedAt")
	}
	if task.IsActive() {
		t.Error("IsActive() = true after Complete()")
	}

	task.Cancel()
	if task.Status != StatusCancelled {
		t.Errorf("Cancel() status = %v, want %v", task.Status, StatusCancelled)
	}
}
