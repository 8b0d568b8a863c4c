package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/tempo-cli/tempo/internal/domain"
	"github.com/tempo-cli/tempo/internal/services"
)

var (
	taskNotes    string
	taskTags     []string
	taskEstimate int
	taskStatus   string
	taskFilter   string
)

// taskCmd represents the task command
var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a new task",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		task, err := app.tasks.CreateTask(ctx, services.CreateTaskRequest{
			Title:             strings.Join(args, " "),
			Notes:             taskNotes,
			Tags:              taskTags,
			EstimatedSessions: taskEstimate,
		})
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		fmt.Printf("✅ Task created: %s (%s)\n", task.Title, task.ID[:8])
		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		var status domain.TaskStatus
		if taskStatus != "" {
			status = domain.TaskStatus(taskStatus)
		}

		tasks, err := app.tasks.ListTasks(ctx, status)
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		if taskFilter != "" {
			tasks = filterTasks(tasks, taskFilter)
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks found.")
			return nil
		}

		dimStyle := lipgloss.NewStyle().Faint(true)
		for _, task := range tasks {
			line := fmt.Sprintf("%s %s %s", statusIcon(task.Status), task.Title,
				dimStyle.Render(task.ID[:8]))
			if len(task.Tags) > 0 {
				line += "  " + dimStyle.Render("["+strings.Join(task.Tags, ", ")+"]")
			}
			fmt.Println(line)
		}
		return nil
	},
}

var taskStartCmd = &cobra.Command{
	Use:   "start <id>",
	Short: "Mark a task as in progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		task, err := app.tasks.StartTask(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to start task: %w", err)
		}
		fmt.Printf("▶ Task started: %s\n", task.Title)
		return nil
	},
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		task, err := app.tasks.CompleteTask(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to complete task: %w", err)
		}
		fmt.Printf("✅ Task completed: %s\n", task.Title)
		return nil
	},
}

var taskCancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Cancel a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		task, err := app.tasks.CancelTask(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to cancel task: %w", err)
		}
		fmt.Printf("✗ Task cancelled: %s\n", task.Title)
		return nil
	},
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task permanently",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.tasks.DeleteTask(context.Background(), args[0]); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		fmt.Println("Task deleted.")
		return nil
	},
}

func init() {
	taskAddCmd.Flags().StringVarP(&taskNotes, "notes", "n", "", "Task notes")
	taskAddCmd.Flags().StringSliceVarP(&taskTags, "tags", "t", nil, "Comma-separated tags")
	taskAddCmd.Flags().IntVar(&taskEstimate, "estimate", 0, "Estimated number of sessions")
	taskListCmd.Flags().StringVarP(&taskStatus, "status", "s", "", "Filter by status: pending, in_progress, completed, cancelled")
	taskListCmd.Flags().StringVarP(&taskFilter, "filter", "f", "", "Fuzzy filter on title and tags")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskStartCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskCancelCmd)
	taskCmd.AddCommand(taskDeleteCmd)
	rootCmd.AddCommand(taskCmd)
}

func statusIcon(status domain.TaskStatus) string {
	switch status {
	case domain.StatusInProgress:
		return "▶"
	case domain.StatusCompleted:
		return "✅"
	case domain.StatusCancelled:
		return "✗"
	default:
		return "·"
	}
}

// filterTasks keeps tasks whose title or tags fuzzy-match the pattern.
func filterTasks(tasks []*domain.Task, pattern string) []*domain.Task {
	haystack := make([]string, len(tasks))
	for i, task := range tasks {
		haystack[i] = task.Title + " " + strings.Join(task.Tags, " ")
	}

	matches := fuzzy.Find(pattern, haystack)
	filtered := make([]*domain.Task, 0, len(matches))
	for _, match := range matches {
		filtered = append(filtered, tasks[match.Index])
	}
	return filtered
}
