package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tempo-cli/tempo/internal/adapters/mcp"
	"github.com/tempo-cli/tempo/internal/services"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI assistants.
The server exposes tools for controlling the timer, logging moods, and
querying sessions and insights.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("🚀 Starting MCP server...")
		fmt.Println("   The server will communicate via stdio")
		fmt.Println("   Press Ctrl+C to stop")

		ctx := context.Background()

		machine := newMachine()
		defer machine.Close()

		provider := services.NewStateProvider(app.sessions, app.insights)

		server := mcp.NewServer(machine, provider)
		if err := server.Start(ctx); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
