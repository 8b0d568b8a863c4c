package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/tempo-cli/tempo/internal/domain"
)

var (
	moodEnergy int
	moodStress int
	moodNote   string
	moodLimit  int
	moodFilter string
)

// moodCmd represents the mood command
var moodCmd = &cobra.Command{
	Use:   "mood",
	Short: "Record and review mood check-ins",
}

var moodAddCmd = &cobra.Command{
	Use:   "add <level>",
	Short: "Log a mood check-in",
	Long: `Record how you feel right now. Levels: very_bad, bad, neutral, good,
very_good. Energy and stress are rated 1-5.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		level, err := domain.ValidateMoodLevel(args[0])
		if err != nil {
			return fmt.Errorf("invalid mood level %q: must be one of very_bad, bad, neutral, good, very_good", args[0])
		}

		entry, err := app.sessions.LogMood(ctx, level, moodEnergy, moodStress, moodNote)
		if err != nil {
			return fmt.Errorf("failed to log mood: %w", err)
		}

		if jsonOutput {
			return outputMoodJSON(entry)
		}

		fmt.Printf("%s Mood logged: %s (energy %d, stress %d)\n",
			entry.Mood.Emoji(), entry.Mood, entry.Energy, entry.Stress)
		return nil
	},
}

var moodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent mood check-ins",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		entries, err := app.sessions.Moods(ctx, moodLimit)
		if err != nil {
			return fmt.Errorf("failed to list moods: %w", err)
		}

		if moodFilter != "" {
			entries = filterMoods(entries, moodFilter)
		}

		if jsonOutput {
			return outputMoodListJSON(entries)
		}

		if len(entries) == 0 {
			fmt.Println("No mood entries found.")
			return nil
		}

		dimStyle := lipgloss.NewStyle().Faint(true)
		for _, entry := range entries {
			line := fmt.Sprintf("%s %-9s energy %d  stress %d  %s",
				entry.Mood.Emoji(), entry.Mood, entry.Energy, entry.Stress,
				dimStyle.Render(entry.CreatedAt.Format("Jan 2 15:04")))
			if entry.Note != "" {
				line += "  " + entry.Note
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	moodAddCmd.Flags().IntVarP(&moodEnergy, "energy", "e", 3, "Energy level 1-5")
	moodAddCmd.Flags().IntVarP(&moodStress, "stress", "s", 3, "Stress level 1-5")
	moodAddCmd.Flags().StringVarP(&moodNote, "note", "n", "", "Optional note")
	moodListCmd.Flags().IntVarP(&moodLimit, "limit", "l", 20, "Maximum entries to show")
	moodListCmd.Flags().StringVarP(&moodFilter, "filter", "f", "", "Fuzzy filter on level and note")

	moodCmd.AddCommand(moodAddCmd)
	moodCmd.AddCommand(moodListCmd)
	rootCmd.AddCommand(moodCmd)
}

// filterMoods keeps entries whose level or note fuzzy-matches the pattern.
func filterMoods(entries []*domain.MoodEntry, pattern string) []*domain.MoodEntry {
	haystack := make([]string, len(entries))
	for i, entry := range entries {
		haystack[i] = strings.TrimSpace(string(entry.Mood) + " " + entry.Note)
	}

	matches := fuzzy.Find(pattern, haystack)
	filtered := make([]*domain.MoodEntry, 0, len(matches))
	for _, match := range matches {
		filtered = append(filtered, entries[match.Index])
	}
	return filtered
}

func outputMoodJSON(entry *domain.MoodEntry) error {
	jsonData, err := json.MarshalIndent(moodEntryMap(entry), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal mood entry: %w", err)
	}
	fmt.Println(string(jsonData))
	return nil
}

func outputMoodListJSON(entries []*domain.MoodEntry) error {
	list := make([]map[string]interface{}, 0, len(entries))
	for _, entry := range entries {
		list = append(list, moodEntryMap(entry))
	}
	jsonData, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal mood entries: %w", err)
	}
	fmt.Println(string(jsonData))
	return nil
}

func moodEntryMap(entry *domain.MoodEntry) map[string]interface{} {
	return map[string]interface{}{
		"id":         entry.ID,
		"mood":       string(entry.Mood),
		"energy":     entry.Energy,
		"stress":     entry.Stress,
		"note":       entry.Note,
		"created_at": entry.CreatedAt.Format("2006-01-02T15:04:05"),
	}
}
