package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tempo-cli/tempo/internal/domain"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's progress",
	Long:  `Display today's completed sessions, focus time, and weekly goal progress.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		sessions, err := app.sessions.History(ctx, 200)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}

		now := time.Now()
		today := startOfDay(now)
		week := startOfWeek(now)

		var todayWork, todayBreaks, weekWork int
		var todayFocus time.Duration
		for _, session := range sessions {
			if session.IsWork() && !session.CompletedAt.Before(week) {
				weekWork++
			}
			if session.CompletedAt.Before(today) {
				continue
			}
			if session.IsWork() {
				todayWork++
				todayFocus += session.Duration()
			} else {
				todayBreaks++
			}
		}

		goal := app.config.ToPreferences().WeeklyGoal
		if goal <= 0 {
			goal = domain.DefaultPreferences().WeeklyGoal
		}

		if jsonOutput {
			return outputStatusJSON(todayWork, todayBreaks, todayFocus, weekWork, goal)
		}

		titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C6FE0"))
		valueStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A78BFA"))

		fmt.Println()
		fmt.Printf("  %s\n\n", titleStyle.Render("Today"))
		fmt.Printf("  Work sessions: %s\n", valueStyle.Render(fmt.Sprintf("%d", todayWork)))
		fmt.Printf("  Breaks taken:  %s\n", valueStyle.Render(fmt.Sprintf("%d", todayBreaks)))
		fmt.Printf("  Focus time:    %s\n\n", valueStyle.Render(todayFocus.String()))
		fmt.Printf("  Weekly goal:   %s\n\n", valueStyle.Render(fmt.Sprintf("%d / %d sessions", weekWork, goal)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// outputStatusJSON outputs the status in JSON format
func outputStatusJSON(todayWork, todayBreaks int, todayFocus time.Duration, weekWork, goal int) error {
	result := map[string]interface{}{
		"today": map[string]interface{}{
			"work_sessions": todayWork,
			"breaks_taken":  todayBreaks,
			"focus_time":    todayFocus.String(),
		},
		"week": map[string]interface{}{
			"work_sessions": weekWork,
			"weekly_goal":   goal,
		},
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	fmt.Println(string(jsonData))
	return nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the Monday of the given time's week.
func startOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return startOfDay(t).AddDate(0, 0, -(weekday - 1))
}
