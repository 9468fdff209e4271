// ABOUTME: MCP server subcommand
// ABOUTME: Serves the call-notes tools, prompts and resources over stdio
package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/callbook/handlers"
	"github.com/harperreed/callbook/store"
)

// MCPCommand starts the MCP server on stdio
func MCPCommand(st *store.Store, version string, logger *log.Logger) error {
	logger.Info("starting MCP server", "version", version)

	server := handlers.NewServer(st, version, time.Local)
	return server.Run(context.Background(), &mcp.StdioTransport{})
}
