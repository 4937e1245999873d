package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neilberkman/rinselog/cmd/rinselog/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "serve-mcp",
	Short: "Start MCP server over stdio",
	Long: `Start an MCP (Model Context Protocol) server that gives an assistant
read-only access to your saved session logs.

Configure in your client's config file:
  {
    "mcpServers": {
      "rinselog": {
        "command": "rinselog",
        "args": ["serve-mcp"]
      }
    }
  }
`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	if err := mcp.StartServer(dbPath); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}
