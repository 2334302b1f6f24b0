package mcp

import (
	"testing"

	gconfig "github.com/Laisky/go-config/v2"
	"github.com/stretchr/testify/require"
)

func TestLoadCredentialConfigFromEnvironment(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "env-key")
	t.Setenv("GOOGLE_CSE_ID", "env-cx")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/tmp/sa.json")

	cfg := LoadCredentialConfigFromConfig()
	require.Equal(t, "env-key", cfg.APIKey)
	require.Equal(t, "env-cx", cfg.SearchEngineID)
	require.Equal(t, "/tmp/sa.json", cfg.CredentialsFile)
}

func TestLoadCredentialConfigPrefersConfigFile(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "env-key")

	gconfig.Shared.Set("settings.google.api_key", "file-key")
	defer gconfig.Shared.Set("settings.google.api_key", "")

	cfg := LoadCredentialConfigFromConfig()
	require.Equal(t, "file-key", cfg.APIKey)
}

func TestLoadCredentialConfigAbsenceIsValid(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("GOOGLE_CSE_ID", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

	cfg := LoadCredentialConfigFromConfig()
	require.Empty(t, cfg.APIKey)
	require.Empty(t, cfg.SearchEngineID)
	require.Empty(t, cfg.CredentialsFile)
}

func TestLoadToolsSettingsDefaultsEnabled(t *testing.T) {
	settings := LoadToolsSettingsFromConfig()
	require.True(t, settings.GoogleSearchEnabled)
	require.True(t, settings.WebSearchEnabled)
	require.True(t, settings.ImageSearchEnabled)
	require.True(t, settings.HealthEnabled)
}

func TestLoadToolsSettingsDisable(t *testing.T) {
	gconfig.Shared.Set("settings.mcp.tools.google_search_images.enabled", false)
	defer gconfig.Shared.Set("settings.mcp.tools.google_search_images.enabled", nil)

	settings := LoadToolsSettingsFromConfig()
	require.False(t, settings.ImageSearchEnabled)
	require.True(t, settings.GoogleSearchEnabled)
}
