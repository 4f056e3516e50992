package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kognita-labs/kognita-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for exposing the knowledge base over the Model Context Protocol.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Expose search_knowledge, sync_knowledge_source, get_space_info and
get_recent_updates as MCP tools.

Without flags the server speaks JSON-RPC over stdio, which is what MCP
clients such as Claude Desktop expect. Pass --port to serve streamable
HTTP instead, useful for the MCP Inspector or remote clients.

Examples:
  kognita mcp serve
  kognita mcp serve --port 8080

Client configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "kognita": {
        "command": "/path/to/kognita",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Search:    searchService,
		Sync:      syncService,
		Directory: directoryService,
	})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}
	return server.Run(cmd.Context())
}
