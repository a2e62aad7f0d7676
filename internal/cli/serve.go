package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/magpiehq/magpie/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run Magpie as an MCP server",
	Long: `Run Magpie as an MCP (Model Context Protocol) server.

This lets coding agents query and update the workspace through a
standardized protocol. The server communicates over stdin/stdout
using JSON-RPC 2.0; logs go to stderr.

Examples:
  mgp serve                      # Run MCP server for default workspace
  mgp serve --workspace work     # Run MCP server for named workspace

For use with an MCP client, add to its config:
  {
    "mcpServers": {
      "magpie": {
        "command": "mgp",
        "args": ["serve", "--workspace-path", "/path/to/workspace"]
      }
    }
  }`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Stdout carries only MCP protocol frames from here on.
		server := mcp.NewServer(getWorkspacePath())
		if err := server.Run(); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
