package mcp

import (
	"net/http"
	"sort"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	srv "github.com/mark3labs/mcp-go/server"

	"github.com/elos-ai/google-search-mcp/internal/mcp/tools"
	"github.com/elos-ai/google-search-mcp/library/log"
	"github.com/elos-ai/google-search-mcp/library/search/google"
)

const (
	serverName    = "google-search-mcp"
	serverVersion = "1.0.0"
)

// Server wraps the MCP server state for the HTTP transport.
type Server struct {
	handler  http.Handler
	logger   logSDK.Logger
	registry map[string]tools.Tool
}

// NewServer constructs a remote MCP server exposing the Google search tools
// under a single streamable HTTP handler. Tools are attached through an
// explicit name-to-handler registry; settings control which are registered.
func NewServer(resolver *google.Resolver, settings ToolsSettings, logger logSDK.Logger) (*Server, error) {
	if resolver == nil {
		return nil, errors.New("credential resolver is required")
	}
	if logger == nil {
		logger = log.Logger
	}

	hooks := newMCPHooks(logger.Named("mcp_hooks"))

	mcpServer := srv.NewMCPServer(
		serverName,
		serverVersion,
		srv.WithToolCapabilities(true),
		srv.WithInstructions("Use the google_search, google_search_web, and google_search_images tools "+
			"to run Google-powered searches, and get_search_health to inspect credential status."),
		srv.WithRecovery(),
		srv.WithHooks(hooks),
	)

	s := &Server{
		logger:   logger.Named("mcp"),
		registry: make(map[string]tools.Tool),
	}

	if err := s.buildRegistry(resolver, settings, logger); err != nil {
		return nil, errors.Wrap(err, "build tool registry")
	}

	for _, name := range s.ToolNames() {
		tool := s.registry[name]
		mcpServer.AddTool(tool.Definition(), tool.Handle)
	}

	s.handler = srv.NewStreamableHTTPServer(mcpServer)

	s.logger.Info("mcp server initialised",
		zap.Strings("tools", s.ToolNames()))

	return s, nil
}

func (s *Server) buildRegistry(resolver *google.Resolver, settings ToolsSettings, logger logSDK.Logger) error {
	if settings.GoogleSearchEnabled {
		tool, err := tools.NewGoogleSearchTool(resolver, logger.Named("google_search"))
		if err != nil {
			return errors.Wrap(err, "create google_search tool")
		}
		s.registry[tool.Name()] = tool
	}

	if settings.WebSearchEnabled {
		tool, err := tools.NewWebSearchTool(resolver, logger.Named("google_search_web"))
		if err != nil {
			return errors.Wrap(err, "create google_search_web tool")
		}
		s.registry[tool.Name()] = tool
	}

	if settings.ImageSearchEnabled {
		tool, err := tools.NewImageSearchTool(resolver, logger.Named("google_search_images"))
		if err != nil {
			return errors.Wrap(err, "create google_search_images tool")
		}
		s.registry[tool.Name()] = tool
	}

	if settings.HealthEnabled {
		tool, err := tools.NewHealthTool(resolver, logger.Named("get_search_health"))
		if err != nil {
			return errors.Wrap(err, "create get_search_health tool")
		}
		s.registry["get_search_health"] = tool
	}

	return nil
}

// Handler returns the HTTP handler that should be mounted to serve MCP traffic.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ToolNames returns the registered tool names in sorted order.
func (s *Server) ToolNames() []string {
	names := make([]string, 0, len(s.registry))
	for name := range s.registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
