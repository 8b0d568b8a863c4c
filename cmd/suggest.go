package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tempo-cli/tempo/internal/domain"
)

var suggestLimit int

// suggestCmd represents the suggest command
var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Review and act on generated suggestions",
}

var suggestListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recently generated suggestions",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		user, err := app.sessions.CurrentUser(ctx)
		if err != nil {
			return err
		}

		suggestions, err := app.storage.Suggestions().FindRecent(ctx, user.ID, suggestLimit)
		if err != nil {
			return fmt.Errorf("failed to list suggestions: %w", err)
		}

		if len(suggestions) == 0 {
			fmt.Println("No suggestions yet. Run \"tempo insights\" to generate some.")
			return nil
		}

		dimStyle := lipgloss.NewStyle().Faint(true)
		for _, suggestion := range suggestions {
			marker := " "
			if suggestion.Dismissed {
				marker = "✗"
			} else if suggestion.Accepted != nil && *suggestion.Accepted {
				marker = "✓"
			}
			fmt.Printf("%s %s\n  %s\n", marker, suggestion.Message,
				dimStyle.Render(fmt.Sprintf("%s · %s · %.0f%%",
					suggestion.ID[:8], suggestion.Type, suggestion.Confidence*100)))
		}
		return nil
	},
}

var suggestDismissCmd = &cobra.Command{
	Use:   "dismiss <id>",
	Short: "Dismiss a suggestion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := resolveSuggestionID(args[0])
		if err != nil {
			return err
		}
		if err := app.insights.Dismiss(context.Background(), id); err != nil {
			return fmt.Errorf("failed to dismiss suggestion: %w", err)
		}
		fmt.Println("Suggestion dismissed.")
		return nil
	},
}

var suggestAcceptCmd = &cobra.Command{
	Use:   "accept <id>",
	Short: "Accept a suggestion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := resolveSuggestionID(args[0])
		if err != nil {
			return err
		}
		if err := app.insights.Accept(context.Background(), id); err != nil {
			return fmt.Errorf("failed to accept suggestion: %w", err)
		}
		fmt.Println("Suggestion accepted.")
		return nil
	},
}

func init() {
	suggestListCmd.Flags().IntVarP(&suggestLimit, "limit", "l", 10, "Maximum suggestions to show")

	suggestCmd.AddCommand(suggestListCmd)
	suggestCmd.AddCommand(suggestDismissCmd)
	suggestCmd.AddCommand(suggestAcceptCmd)
	rootCmd.AddCommand(suggestCmd)
}

// resolveSuggestionID accepts either a full id or the short prefix shown by
// the list command.
func resolveSuggestionID(prefix string) (string, error) {
	ctx := context.Background()

	user, err := app.sessions.CurrentUser(ctx)
	if err != nil {
		return "", err
	}

	suggestions, err := app.storage.Suggestions().FindRecent(ctx, user.ID, 50)
	if err != nil {
		return "", fmt.Errorf("failed to look up suggestion: %w", err)
	}

	for _, suggestion := range suggestions {
		if suggestion.ID == prefix || (len(prefix) >= 4 && len(suggestion.ID) >= len(prefix) && suggestion.ID[:len(prefix)] == prefix) {
			return suggestion.ID, nil
		}
	}
	return "", fmt.Errorf("no suggestion matches %q: %w", prefix, domain.ErrSuggestionNotFound)
}
