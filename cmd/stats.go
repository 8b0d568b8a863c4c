package cmd

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tempo-cli/tempo/internal/domain"
)

var statsPeriod string

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a dashboard of session statistics",
	Long:  `Display a terminal dashboard with daily session counts, focus time, and interruptions for the selected period.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		now := time.Now()

		var start, end time.Time
		var label string

		switch statsPeriod {
		case "month":
			start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
			end = start.AddDate(0, 1, 0)
			label = now.Format("January 2006")
		default:
			// Default to current week (Monday start)
			start = startOfWeek(now)
			end = start.AddDate(0, 0, 7)
			label = fmt.Sprintf("Week of %s", start.Format("Jan 2"))
		}

		sessions, err := app.sessions.History(ctx, 500)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}

		var inPeriod []*domain.Session
		for _, session := range sessions {
			if !session.CompletedAt.Before(start) && session.CompletedAt.Before(end) {
				inPeriod = append(inPeriod, session)
			}
		}

		fmt.Println()
		renderStats(label, start, end, inPeriod)
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVarP(&statsPeriod, "period", "p", "week", "Time period: week or month")
	rootCmd.AddCommand(statsCmd)
}

func renderStats(label string, start, end time.Time, sessions []*domain.Session) {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C6FE0"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A78BFA"))
	barColor := lipgloss.NewStyle().Foreground(lipgloss.Color("#7C6FE0"))

	// Header
	fmt.Printf("  %s\n", titleStyle.Render(label))
	fmt.Printf("  %s\n\n", dimStyle.Render(strings.Repeat("─", 40)))

	var workSessions, interruptions int
	var focusTime time.Duration
	perDay := map[string]int{}
	for _, session := range sessions {
		if !session.IsWork() {
			continue
		}
		workSessions++
		interruptions += session.Interruptions
		focusTime += session.Duration()
		perDay[session.CompletedAt.Format("2006-01-02")]++
	}

	// Summary line
	fmt.Printf("  Total: %s sessions, %s focus time, %s interruptions\n\n",
		valueStyle.Render(fmt.Sprintf("%d", workSessions)),
		valueStyle.Render(formatHours(focusTime.Hours())),
		valueStyle.Render(fmt.Sprintf("%d", interruptions)),
	)

	if workSessions == 0 {
		fmt.Printf("  %s\n\n", dimStyle.Render("No completed sessions in this period."))
		return
	}

	// Bar chart: sessions per day
	fmt.Printf("  %s\n", dimStyle.Render("Sessions by day"))
	maxCount := 0
	for _, count := range perDay {
		if count > maxCount {
			maxCount = count
		}
	}

	maxBarWidth := 30
	for day := start; day.Before(end) && !day.After(time.Now()); day = day.AddDate(0, 0, 1) {
		count := perDay[day.Format("2006-01-02")]
		barWidth := 0
		if maxCount > 0 {
			barWidth = int(math.Round(float64(count) / float64(maxCount) * float64(maxBarWidth)))
		}
		if barWidth < 1 && count > 0 {
			barWidth = 1
		}
		fmt.Printf("  %s %s %d\n",
			dimStyle.Render(fmt.Sprintf("%-10s", day.Format("Mon Jan 2"))),
			barColor.Render(strings.Repeat("█", barWidth)),
			count,
		)
	}
	fmt.Println()
}

func formatHours(hours float64) string {
	if hours < 1 {
		return fmt.Sprintf("%.0fm", hours*60)
	}
	return fmt.Sprintf("%.1fh", hours)
}
