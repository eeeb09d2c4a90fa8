package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ewalden/drift/internal/adapters/mcp"
)

// mcpCmd starts the MCP server over stdio.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Starts a Model Context Protocol server over stdio. It exposes
read-only tools over the library, feedback history, session records and
aggregate stats, so an AI assistant can reflect on your listening practice.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !appConfig.MCP.Enabled {
			return fmt.Errorf("MCP server is disabled; enable it with 'drift config set mcp.enabled true'")
		}

		ctx := setupSignalHandler()

		server := mcp.NewServer(historyService)
		defer server.Stop()

		fmt.Fprintln(cmd.ErrOrStderr(), "🚀 Starting MCP server on stdio...")
		return server.Start(ctx)
	},
}
