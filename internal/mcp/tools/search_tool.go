package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	mcp "github.com/mark3labs/mcp-go/mcp"

	"github.com/elos-ai/google-search-mcp/library/search"
)

// SearchTool implements one of the Google search MCP tools. The three search
// tools share the same call shape and differ only in name, search kind, and
// result-count cap, so a single implementation backs all of them.
type SearchTool struct {
	name        string
	description string
	kind        search.Kind
	resolver    EngineResolver
	logger      logSDK.Logger
}

// NewGoogleSearchTool constructs the google_search tool (general search,
// up to 10 results).
func NewGoogleSearchTool(resolver EngineResolver, logger logSDK.Logger) (*SearchTool, error) {
	return newSearchTool(
		"google_search",
		"Perform a Google search and return results with title, link, and snippet.",
		search.KindGeneral,
		resolver, logger,
	)
}

// NewWebSearchTool constructs the google_search_web tool (web-biased search,
// up to 5 results).
func NewWebSearchTool(resolver EngineResolver, logger logSDK.Logger) (*SearchTool, error) {
	return newSearchTool(
		"google_search_web",
		"Perform a web search using Google and return results.",
		search.KindWeb,
		resolver, logger,
	)
}

// NewImageSearchTool constructs the google_search_images tool (image search,
// up to 5 results carrying image metadata).
func NewImageSearchTool(resolver EngineResolver, logger logSDK.Logger) (*SearchTool, error) {
	return newSearchTool(
		"google_search_images",
		"Search for images using Google and return results with image links.",
		search.KindImage,
		resolver, logger,
	)
}

func newSearchTool(name, description string, kind search.Kind, resolver EngineResolver, logger logSDK.Logger) (*SearchTool, error) {
	if resolver == nil {
		return nil, errors.New("engine resolver is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	return &SearchTool{
		name:        name,
		description: description,
		kind:        kind,
		resolver:    resolver,
		logger:      logger,
	}, nil
}

// Name returns the registered tool name.
func (t *SearchTool) Name() string {
	return t.name
}

// Definition returns the MCP metadata describing the tool.
func (t *SearchTool) Definition() mcp.Tool {
	maxResults := t.kind.MaxResults()

	return mcp.NewTool(
		t.name,
		mcp.WithDescription(t.description),
		mcp.WithString(
			"query",
			mcp.Required(),
			mcp.Description("Plain text search query."),
		),
		mcp.WithNumber(
			"num_results",
			mcp.Description(fmt.Sprintf("Number of results to return (1-%d). Out-of-range values are clamped.", maxResults)),
			mcp.DefaultNumber(float64(maxResults)),
			mcp.Min(1),
			mcp.Max(float64(maxResults)),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

// Handle executes the search tool logic. All failures are returned as tagged
// tool error results; nothing escapes the tool boundary as a protocol fault.
func (t *SearchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return toolError(search.KindInvalidArgument, err.Error()), nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return toolError(search.KindInvalidArgument, "query cannot be empty"), nil
	}

	num := clampNum(req.GetInt("num_results", t.kind.MaxResults()), t.kind.MaxResults())

	start := time.Now().UTC()
	t.logger.Debug("search started",
		zap.String("tool", t.name),
		zap.Int("query_len", len(query)),
		zap.Int("num", num),
	)

	engine, mode, err := t.resolver.Resolve(ctx)
	if err != nil {
		t.logger.Warn("credential resolution failed",
			zap.Error(err), zap.String("tool", t.name))
		return toolError(search.KindOf(err), err.Error()), nil
	}

	items, err := engine.Search(ctx, search.Query{
		Text: query,
		Num:  num,
		Kind: t.kind,
	})
	if err != nil {
		t.logger.Error("search failed",
			zap.Error(err),
			zap.String("tool", t.name),
			zap.String("mode", string(mode)),
			zap.Int("query_len", len(query)),
		)
		return toolError(search.KindOf(err), err.Error()), nil
	}

	if len(items) > num {
		items = items[:num]
	}

	t.logger.Debug("search completed",
		zap.String("tool", t.name),
		zap.String("mode", string(mode)),
		zap.Int("results_count", len(items)),
		zap.Duration("duration", time.Since(start)),
	)

	toolResult, err := mcp.NewToolResultJSON(search.SimplifiedSearchResult{Results: items})
	if err != nil {
		t.logger.Error("encode search result", zap.Error(err))
		return toolError(search.KindUpstreamRequestFailed, "failed to encode search result"), nil
	}

	return toolResult, nil
}

// clampNum bounds a requested result count to [1, max]. Out-of-range counts
// are clamped rather than rejected to keep the tools permissive.
func clampNum(num, max int) int {
	if num < 1 {
		return 1
	}
	if num > max {
		return max
	}
	return num
}

// toolError builds a tool error result tagged with a stable error kind so
// callers can react without parsing free-form text.
func toolError(kind search.ErrorKind, msg string) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("%s: %s", kind, msg))
}
