package cmd

import (
	"fmt"
	"math"
	"net"
	"strings"

	errors "github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
)

// configGetter retrieves raw configuration values by dotted key path.
type configGetter func(key string) any

// validateStartupConfig validates startup configuration from the shared config source.
// It returns an error when any configured value is malformed or violates constraints.
func validateStartupConfig() error {
	return validateStartupConfigWithGetter(func(key string) any {
		return gconfig.S.Get(key)
	})
}

// validateStartupConfigWithGetter validates startup configuration via a key-value getter.
// It accepts a value getter and returns nil when all configured values are valid.
func validateStartupConfigWithGetter(get configGetter) error {
	if get == nil {
		return errors.New("config getter is nil")
	}

	validationErrs := make([]string, 0)

	validateListenConfig(get, &validationErrs)
	validateMCPToolsConfig(get, &validationErrs)
	validateGoogleConfig(get, &validationErrs)

	if len(validationErrs) == 0 {
		return nil
	}

	return errors.Errorf("invalid configuration:\n - %s", strings.Join(validationErrs, "\n - "))
}

// validateListenConfig validates the listen address when one is configured.
func validateListenConfig(get configGetter, errs *[]string) {
	raw := get("listen")
	if raw == nil {
		return
	}

	value, parseErr := parseStrictString(raw)
	if parseErr != nil || strings.TrimSpace(value) == "" {
		appendValidationError(errs, "listen must be a non-empty string")
		return
	}

	if _, _, err := net.SplitHostPort(value); err != nil {
		appendValidationError(errs, "listen must be a host:port address")
	}
}

// validateMCPToolsConfig validates MCP tool toggles.
func validateMCPToolsConfig(get configGetter, errs *[]string) {
	keys := []string{
		"settings.mcp.tools.google_search.enabled",
		"settings.mcp.tools.google_search_web.enabled",
		"settings.mcp.tools.google_search_images.enabled",
		"settings.mcp.tools.get_search_health.enabled",
	}

	for _, key := range keys {
		validateOptionalBool(get, key, errs)
	}
}

// validateGoogleConfig validates the Google credential configuration.
// Absence of every credential value is a valid configuration state: the
// resolver reports it at call time instead of failing startup.
func validateGoogleConfig(get configGetter, errs *[]string) {
	validateOptionalStringNonEmpty(get, "settings.google.api_key", errs)
	validateOptionalStringNonEmpty(get, "settings.google.search_engine_id", errs)
	validateOptionalStringNonEmpty(get, "settings.google.credentials_file", errs)
}

// validateOptionalBool validates an optionally configured boolean key.
func validateOptionalBool(get configGetter, key string, errs *[]string) {
	raw := get(key)
	if raw == nil {
		return
	}

	if _, ok := parseStrictBool(raw); !ok {
		appendValidationError(errs, "%s must be a boolean", key)
	}
}

// validateOptionalStringNonEmpty validates that an optionally configured key is a non-empty string.
func validateOptionalStringNonEmpty(get configGetter, key string, errs *[]string) {
	raw := get(key)
	if raw == nil {
		return
	}

	value, parseErr := parseStrictString(raw)
	if parseErr != nil {
		appendValidationError(errs, "%s must be a string", key)
		return
	}

	if strings.TrimSpace(value) == "" {
		appendValidationError(errs, "%s must not be empty", key)
	}
}

// parseStrictBool parses a raw configuration value as a boolean.
// It returns the parsed value and whether parsing succeeded.
func parseStrictBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case int:
		return v != 0, true
	case int64:
		return v != 0, true
	case float64:
		if math.Trunc(v) != v {
			return false, false
		}
		return int64(v) != 0, true
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return false, false
		}
		switch strings.ToLower(trimmed) {
		case "true", "1", "yes":
			return true, true
		case "false", "0", "no":
			return false, true
		default:
			return false, false
		}
	default:
		return false, false
	}
}

// parseStrictString parses a raw configuration value as a string.
func parseStrictString(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	default:
		return "", errors.Errorf("value %v is not a string", value)
	}
}

// appendValidationError appends a formatted validation error to the collector.
func appendValidationError(errs *[]string, format string, args ...any) {
	if errs == nil {
		return
	}
	*errs = append(*errs, fmt.Sprintf(format, args...))
}
