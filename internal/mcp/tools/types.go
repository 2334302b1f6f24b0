// Package tools implements the MCP tools exposed by the server.
package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/elos-ai/google-search-mcp/library/search/google"
)

// EngineResolver produces an authenticated search transport from the process
// configuration. Resolution is attempted fresh on every tool invocation.
type EngineResolver interface {
	Resolve(ctx context.Context) (google.Engine, google.Mode, error)
	Config() google.Config
}

// Tool exposes the capabilities required by the MCP server registration lifecycle.
type Tool interface {
	Definition() mcp.Tool
	Handle(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
}
