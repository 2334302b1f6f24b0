// Package search defines the shared data model for Google Custom Search
// queries and their normalized results.
package search

// Kind identifies the category of a search query. The kind determines the
// result-count cap and any kind-specific request parameters.
type Kind string

const (
	// KindGeneral is an unrestricted search, capped at 10 results.
	KindGeneral Kind = "general"
	// KindWeb is a web-biased search, capped at 5 results.
	KindWeb Kind = "web"
	// KindImage is an image search, capped at 5 results.
	KindImage Kind = "image"
)

// PageMax is the largest number of items the Custom Search API returns in a
// single page. Requests never ask for more; no multi-page aggregation occurs.
const PageMax = 10

// MaxResults returns the result-count cap for the kind.
func (k Kind) MaxResults() int {
	switch k {
	case KindWeb, KindImage:
		return 5
	default:
		return 10
	}
}

// Query is a single call-scoped search request.
type Query struct {
	// Text is the plain-text search query. Must be non-empty.
	Text string
	// Num bounds the number of results. Callers clamp it to [1, kind cap]
	// before dispatch.
	Num int
	// Kind selects the search category.
	Kind Kind
}

// ImageInfo carries the image-specific fields of an image search result.
type ImageInfo struct {
	ContextLink   string `json:"context_link"`
	ThumbnailLink string `json:"thumbnail_link,omitempty"`
	Height        int64  `json:"height,omitempty"`
	Width         int64  `json:"width,omitempty"`
}

// ResultItem is a single normalized search result. Missing upstream fields
// are mapped to the empty string, never omitted, so downstream callers need
// no null checks.
type ResultItem struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Source  string `json:"source,omitempty"`

	// Image is populated for image search results only.
	Image *ImageInfo `json:"image,omitempty"`
}

// SimplifiedSearchResult is the minimal response payload for MCP tools.
// It only contains the essential results without auxiliary metadata.
type SimplifiedSearchResult struct {
	Results []ResultItem `json:"results"`
}

// HealthStatus reports whether credential resolution currently succeeds and
// which parts of the configuration are present. It deliberately carries
// presence flags only, never the configured values.
type HealthStatus struct {
	Status                    string `json:"status"`
	CredentialsAvailable      bool   `json:"credentials_available"`
	CredentialMode            string `json:"credential_mode,omitempty"`
	APIKeyConfigured          bool   `json:"api_key_configured"`
	SearchEngineIDConfigured  bool   `json:"search_engine_id_configured"`
	CredentialsFileConfigured bool   `json:"credentials_file_configured"`
}

// Health status values reported by the health check.
const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"
)
