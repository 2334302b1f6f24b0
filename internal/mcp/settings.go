// Package mcp provides the MCP server implementation and its search tools.
package mcp

import (
	"os"
	"strings"

	gconfig "github.com/Laisky/go-config/v2"

	"github.com/elos-ai/google-search-mcp/library/search/google"
)

// ToolsSettings captures runtime configuration for enabling or disabling individual MCP tools.
type ToolsSettings struct {
	GoogleSearchEnabled bool
	WebSearchEnabled    bool
	ImageSearchEnabled  bool
	HealthEnabled       bool
}

// LoadToolsSettingsFromConfig reads the MCP tools configuration and returns a ToolsSettings instance.
// By default, all tools are enabled unless explicitly disabled in the configuration.
func LoadToolsSettingsFromConfig() ToolsSettings {
	return ToolsSettings{
		GoogleSearchEnabled: boolFromConfig("settings.mcp.tools.google_search.enabled", true),
		WebSearchEnabled:    boolFromConfig("settings.mcp.tools.google_search_web.enabled", true),
		ImageSearchEnabled:  boolFromConfig("settings.mcp.tools.google_search_images.enabled", true),
		HealthEnabled:       boolFromConfig("settings.mcp.tools.get_search_health.enabled", true),
	}
}

// LoadCredentialConfigFromConfig assembles the immutable credential
// configuration. Each value is read from the configuration file first and
// falls back to the environment variable the upstream Google tooling uses.
func LoadCredentialConfigFromConfig() google.Config {
	return google.Config{
		APIKey:          stringFromConfig("settings.google.api_key", "GOOGLE_API_KEY"),
		SearchEngineID:  stringFromConfig("settings.google.search_engine_id", "GOOGLE_CSE_ID"),
		CredentialsFile: stringFromConfig("settings.google.credentials_file", "GOOGLE_APPLICATION_CREDENTIALS"),
	}
}

// stringFromConfig retrieves a string configuration value with an environment fallback.
func stringFromConfig(key, envKey string) string {
	if value := strings.TrimSpace(gconfig.S.GetString(key)); value != "" {
		return value
	}
	return strings.TrimSpace(os.Getenv(envKey))
}

// boolFromConfig retrieves a boolean configuration value with a default fallback.
func boolFromConfig(key string, def bool) bool {
	value := gconfig.S.Get(key)
	switch v := value.(type) {
	case nil:
		return def
	case bool:
		return v
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case string:
		switch v {
		case "true", "True", "TRUE", "1", "yes", "Yes", "YES":
			return true
		case "false", "False", "FALSE", "0", "no", "No", "NO":
			return false
		default:
			return def
		}
	default:
		return def
	}
}
