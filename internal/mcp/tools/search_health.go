package tools

import (
	"context"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	mcp "github.com/mark3labs/mcp-go/mcp"

	"github.com/elos-ai/google-search-mcp/library/search"
)

// HealthTool implements the get_search_health MCP tool. The call itself
// never fails: configuration problems are reported as a degraded status
// instead of an error result.
type HealthTool struct {
	resolver EngineResolver
	logger   logSDK.Logger
}

// NewHealthTool constructs a HealthTool with the provided dependencies.
func NewHealthTool(resolver EngineResolver, logger logSDK.Logger) (*HealthTool, error) {
	if resolver == nil {
		return nil, errors.New("engine resolver is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	return &HealthTool{
		resolver: resolver,
		logger:   logger,
	}, nil
}

// Definition returns the MCP metadata describing the tool.
func (t *HealthTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"get_search_health",
		mcp.WithDescription("Check the health and credential configuration of the Google search server."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
	)
}

// Handle computes a fresh HealthStatus. Nothing is cached between calls.
func (t *HealthTool) Handle(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := CheckHealth(ctx, t.resolver)
	if status.Status != search.StatusHealthy {
		t.logger.Warn("search health degraded",
			zap.Bool("api_key_configured", status.APIKeyConfigured),
			zap.Bool("search_engine_id_configured", status.SearchEngineIDConfigured),
			zap.Bool("credentials_file_configured", status.CredentialsFileConfigured),
		)
	}

	toolResult, err := mcp.NewToolResultJSON(status)
	if err != nil {
		t.logger.Error("encode health status", zap.Error(err))
		return mcp.NewToolResultError("failed to encode health status"), nil
	}

	return toolResult, nil
}

// CheckHealth reports whether credential resolution currently succeeds and
// which configuration inputs are present. Only presence flags are included,
// never the configured values.
func CheckHealth(ctx context.Context, resolver EngineResolver) search.HealthStatus {
	cfg := resolver.Config()
	status := search.HealthStatus{
		Status:                    search.StatusDegraded,
		APIKeyConfigured:          cfg.APIKey != "",
		SearchEngineIDConfigured:  cfg.SearchEngineID != "",
		CredentialsFileConfigured: cfg.CredentialsFile != "",
	}

	if _, mode, err := resolver.Resolve(ctx); err == nil {
		status.Status = search.StatusHealthy
		status.CredentialsAvailable = true
		status.CredentialMode = string(mode)
	}

	return status
}
