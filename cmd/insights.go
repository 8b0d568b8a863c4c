package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tempo-cli/tempo/internal/analytics"
	"github.com/tempo-cli/tempo/internal/ports"
)

// insightsCmd represents the insights command
var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show productivity insights",
	Long: `Analyze your recent history and display productivity patterns,
burnout risk, the session length that works best for you, and suggestions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		report, err := app.insights.Refresh(ctx)
		if err != nil {
			return fmt.Errorf("failed to compute insights: %w", err)
		}

		if jsonOutput {
			return outputInsightsJSON(report)
		}

		renderInsights(report)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(insightsCmd)
}

func renderInsights(report *ports.InsightReport) {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C6FE0"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A78BFA"))

	fmt.Println()
	fmt.Printf("  %s\n", titleStyle.Render("Productivity Insights"))
	fmt.Printf("  %s\n\n", dimStyle.Render(strings.Repeat("─", 40)))

	// Patterns
	fmt.Printf("  Best time of day:    %s\n", valueStyle.Render(string(report.Patterns.BestTimeOfDay)))
	fmt.Printf("  Most productive day: %s\n", valueStyle.Render(report.Patterns.MostProductiveDay.String()))
	fmt.Printf("  Sessions per day:    %s\n", valueStyle.Render(fmt.Sprintf("%.1f", report.Patterns.AverageSessionsPerDay)))
	fmt.Printf("  Trend:               %s\n\n", renderTrend(report.Patterns.Trend))

	// Burnout
	fmt.Printf("  Burnout risk: %s\n", renderRisk(report.Burnout.Risk))
	for _, reason := range report.Burnout.Reasons {
		fmt.Printf("    %s\n", dimStyle.Render("· "+reason))
	}
	fmt.Println()

	// Recommendations
	fmt.Printf("  Optimal session length: %s\n", valueStyle.Render(fmt.Sprintf("%d minutes", report.OptimalMinutes)))
	if report.NextSessionAt != nil {
		fmt.Printf("  Suggested next session: %s\n", valueStyle.Render(report.NextSessionAt.Format("Mon Jan 2 15:04")))
	}
	fmt.Println()

	// Suggestions
	if len(report.Suggestions) == 0 {
		fmt.Printf("  %s\n\n", dimStyle.Render("No suggestions yet. Complete a few sessions first."))
		return
	}

	fmt.Printf("  %s\n", dimStyle.Render("Suggestions"))
	for _, suggestion := range report.Suggestions {
		fmt.Printf("  · %s %s\n", suggestion.Message,
			dimStyle.Render(fmt.Sprintf("(%.0f%%)", suggestion.Confidence*100)))
	}
	fmt.Println()
}

func renderTrend(trend analytics.Trend) string {
	switch trend {
	case analytics.TrendImproving:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E")).Render("improving ↑")
	case analytics.TrendDeclining:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Render("declining ↓")
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Render("stable →")
	}
}

func renderRisk(risk analytics.RiskLevel) string {
	switch risk {
	case analytics.RiskHigh:
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444")).Render("high")
	case analytics.RiskMedium:
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F59E0B")).Render("medium")
	default:
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#22C55E")).Render("low")
	}
}

func outputInsightsJSON(report *ports.InsightReport) error {
	suggestions := make([]map[string]interface{}, 0, len(report.Suggestions))
	for _, suggestion := range report.Suggestions {
		suggestions = append(suggestions, map[string]interface{}{
			"id":         suggestion.ID,
			"type":       string(suggestion.Type),
			"message":    suggestion.Message,
			"confidence": suggestion.Confidence,
			"reasons":    suggestion.Reasons,
		})
	}

	result := map[string]interface{}{
		"generated_at": report.GeneratedAt.Format("2006-01-02T15:04:05"),
		"patterns": map[string]interface{}{
			"best_time_of_day":         string(report.Patterns.BestTimeOfDay),
			"average_sessions_per_day": report.Patterns.AverageSessionsPerDay,
			"most_productive_day":      report.Patterns.MostProductiveDay.String(),
			"trend":                    string(report.Patterns.Trend),
		},
		"burnout": map[string]interface{}{
			"risk":    string(report.Burnout.Risk),
			"score":   report.Burnout.Score,
			"reasons": report.Burnout.Reasons,
		},
		"optimal_session_minutes": report.OptimalMinutes,
		"suggestions":             suggestions,
	}
	if report.NextSessionAt != nil {
		result["next_session_at"] = report.NextSessionAt.Format("2006-01-02T15:04:05")
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal insights: %w", err)
	}
	fmt.Println(string(jsonData))
	return nil
}
