package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func getterFromMap(values map[string]any) configGetter {
	return func(key string) any {
		return values[key]
	}
}

func TestValidateStartupConfigNilGetter(t *testing.T) {
	err := validateStartupConfigWithGetter(nil)
	require.Error(t, err)
}

func TestValidateStartupConfigEmptyIsValid(t *testing.T) {
	// absence of all credential configuration is a valid state
	err := validateStartupConfigWithGetter(getterFromMap(map[string]any{}))
	require.NoError(t, err)
}

func TestValidateStartupConfigValidValues(t *testing.T) {
	err := validateStartupConfigWithGetter(getterFromMap(map[string]any{
		"listen": "0.0.0.0:8000",
		"settings.mcp.tools.google_search.enabled": true,
		"settings.google.api_key":                  "key",
		"settings.google.search_engine_id":         "cx",
	}))
	require.NoError(t, err)
}

func TestValidateStartupConfigBadListen(t *testing.T) {
	err := validateStartupConfigWithGetter(getterFromMap(map[string]any{
		"listen": "not-an-address",
	}))
	require.Error(t, err)
	require.Contains(t, err.Error(), "listen must be a host:port address")
}

func TestValidateStartupConfigBadToolToggle(t *testing.T) {
	err := validateStartupConfigWithGetter(getterFromMap(map[string]any{
		"settings.mcp.tools.google_search_images.enabled": "maybe",
	}))
	require.Error(t, err)
	require.Contains(t, err.Error(), "settings.mcp.tools.google_search_images.enabled must be a boolean")
}

func TestValidateStartupConfigEmptyCredentialString(t *testing.T) {
	err := validateStartupConfigWithGetter(getterFromMap(map[string]any{
		"settings.google.api_key": "   ",
	}))
	require.Error(t, err)
	require.Contains(t, err.Error(), "settings.google.api_key must not be empty")
}

func TestValidateStartupConfigCollectsAllErrors(t *testing.T) {
	err := validateStartupConfigWithGetter(getterFromMap(map[string]any{
		"listen":                  "nope",
		"settings.google.api_key": 42,
	}))
	require.Error(t, err)
	require.Contains(t, err.Error(), "listen must be a host:port address")
	require.Contains(t, err.Error(), "settings.google.api_key must be a string")
}
