// Package google implements search transports backed by the Google Custom
// Search API, together with credential resolution between an API-key pair
// and a service-account file.
package google

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"

	appLog "github.com/elos-ai/google-search-mcp/library/log"
	"github.com/elos-ai/google-search-mcp/library/search"
)

const (
	defaultEndpoint    = "https://www.googleapis.com/customsearch/v1"
	httpRequestTimeout = 10 * time.Second
	// logBodyLimit caps the number of response bytes logged for debugging.
	logBodyLimit = 4096
)

// Source labels attached to normalized results, mirroring the search kind.
const (
	sourceCustomSearch = "Google Custom Search"
	sourceWebSearch    = "Google Web Search"
	sourceImageSearch  = "Google Image Search"
)

// Option configures the SearchEngine instance.
type Option func(*SearchEngine)

// WithHTTPClient overrides the HTTP client used to reach the Custom Search API.
func WithHTTPClient(client *http.Client) Option {
	return func(engine *SearchEngine) {
		if client != nil {
			engine.client = client
		}
	}
}

// WithLogger overrides the default logger.
func WithLogger(logger logSDK.Logger) Option {
	return func(engine *SearchEngine) {
		if logger != nil {
			engine.logger = logger
		}
	}
}

// WithEndpoint overrides the Custom Search endpoint, primarily for testing.
func WithEndpoint(endpoint string) Option {
	return func(engine *SearchEngine) {
		trimmed := strings.TrimSpace(endpoint)
		if trimmed != "" {
			engine.endpoint = trimmed
		}
	}
}

// SearchEngine queries the Custom Search JSON API with an API key and
// converts the response into normalized search items.
type SearchEngine struct {
	apiKey   string
	cx       string
	endpoint string
	client   *http.Client
	logger   logSDK.Logger
}

// NewSearchEngine instantiates an API-key backed Custom Search client.
// Both apiKey and cx must be non-empty at search time.
func NewSearchEngine(apiKey, cx string, opts ...Option) *SearchEngine {
	engine := &SearchEngine{
		apiKey:   strings.TrimSpace(apiKey),
		cx:       strings.TrimSpace(cx),
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: httpRequestTimeout},
		logger:   appLog.Logger.Named("google_search"),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(engine)
		}
	}

	return engine
}

// CustomSearchResponse models the JSON payload returned by the Custom Search API.
type CustomSearchResponse struct {
	Kind              string             `json:"kind"`
	SearchInformation *SearchInformation `json:"searchInformation,omitempty"`
	Items             []SearchResultItem `json:"items"`
}

// SearchInformation provides aggregate stats about a query.
type SearchInformation struct {
	SearchTime            float64 `json:"searchTime"`
	FormattedSearchTime   string  `json:"formattedSearchTime"`
	TotalResults          string  `json:"totalResults"`
	FormattedTotalResults string  `json:"formattedTotalResults"`
}

// SearchResultItem represents a single search result item.
type SearchResultItem struct {
	Kind        string           `json:"kind"`
	Title       string           `json:"title"`
	HTMLTitle   string           `json:"htmlTitle"`
	Link        string           `json:"link"`
	DisplayLink string           `json:"displayLink"`
	Snippet     string           `json:"snippet"`
	HTMLSnippet string           `json:"htmlSnippet"`
	Image       *SearchItemImage `json:"image,omitempty"`
}

// SearchItemImage carries the image metadata of an image search result.
type SearchItemImage struct {
	ContextLink   string `json:"contextLink"`
	ThumbnailLink string `json:"thumbnailLink"`
	Height        int64  `json:"height"`
	Width         int64  `json:"width"`
}

// apiErrorResponse models the error envelope the API returns on failures.
type apiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Search executes one Custom Search request and returns normalized items.
// Only the first page is requested; q.Num is capped at the API page maximum.
func (se *SearchEngine) Search(ctx context.Context, q search.Query) ([]search.ResultItem, error) {
	if strings.TrimSpace(q.Text) == "" {
		return nil, errors.Wrap(search.ErrInvalidArgument, "search query cannot be empty")
	}
	if se.apiKey == "" {
		return nil, errors.Wrap(search.ErrCredentialsUnavailable, "google api key is not configured")
	}
	if se.cx == "" {
		return nil, errors.Wrap(search.ErrCredentialsUnavailable, "google search engine id (cx) is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, se.endpoint, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create request to `%s`", se.endpoint)
	}

	params := req.URL.Query()
	params.Set("key", se.apiKey)
	params.Set("cx", se.cx)
	params.Set("q", q.Text)
	params.Set("num", strconv.Itoa(pageNum(q.Num)))
	if q.Kind == search.KindImage {
		params.Set("searchType", "image")
	}
	req.URL.RawQuery = params.Encode()

	logger := se.logger
	if logger == nil {
		logger = appLog.Logger.Named("google_search")
	}

	logger.Debug("outgoing http request",
		zap.String("method", req.Method),
		zap.String("kind", string(q.Kind)),
		zap.Int("num", pageNum(q.Num)),
		zap.Int("query_len", len(q.Text)),
	)

	startAt := time.Now()
	resp, err := se.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(search.ErrUpstreamRequest, "failed to send request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(search.ErrUpstreamRequest, "failed to read response body: %v", err)
	}

	truncatedBody, truncated := truncateForLog(body, logBodyLimit)
	logger.Debug("incoming http response",
		zap.Int("status", resp.StatusCode),
		zap.String("body", truncatedBody),
		zap.Bool("body_truncated", truncated),
		zap.Duration("cost", time.Since(startAt)),
	)

	if resp.StatusCode != http.StatusOK {
		return nil, classifyHTTPError(resp.StatusCode, body, truncatedBody)
	}

	result := new(CustomSearchResponse)
	if err := json.Unmarshal(body, result); err != nil {
		return nil, errors.Wrapf(search.ErrUpstreamRequest, "failed to unmarshal JSON response: %v", err)
	}

	if len(result.Items) == 0 {
		logger.Warn("google search returned no results",
			zap.Int("status", resp.StatusCode),
			zap.Int("query_len", len(q.Text)),
		)
	}

	return normalizeItems(result.Items, q.Kind), nil
}

// classifyHTTPError maps a non-2xx Custom Search response to a typed error.
// Quota exhaustion (429, or 403 with a rate-limit status) is distinguished so
// callers can back off.
func classifyHTTPError(status int, body []byte, truncatedBody string) error {
	if status == http.StatusTooManyRequests {
		return errors.Wrapf(search.ErrQuotaExceeded, "google search returned status %d: %s", status, truncatedBody)
	}

	if status == http.StatusForbidden {
		var apiErr apiErrorResponse
		if err := json.Unmarshal(body, &apiErr); err == nil {
			reason := strings.ToLower(apiErr.Error.Status + " " + apiErr.Error.Message)
			if strings.Contains(reason, "quota") || strings.Contains(reason, "rate") {
				return errors.Wrapf(search.ErrQuotaExceeded, "google search returned status %d: %s", status, truncatedBody)
			}
		}
	}

	return errors.Wrapf(search.ErrUpstreamRequest, "google search returned status %d: %s", status, truncatedBody)
}

// normalizeItems converts raw API items into the shared result shape.
// Missing optional fields map to empty strings, never absent values.
func normalizeItems(items []SearchResultItem, kind search.Kind) []search.ResultItem {
	normalized := make([]search.ResultItem, 0, len(items))
	for _, item := range items {
		converted := search.ResultItem{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
			Source:  sourceForKind(kind),
		}
		if kind == search.KindImage && item.Image != nil {
			converted.Image = &search.ImageInfo{
				ContextLink:   item.Image.ContextLink,
				ThumbnailLink: item.Image.ThumbnailLink,
				Height:        item.Image.Height,
				Width:         item.Image.Width,
			}
		}
		normalized = append(normalized, converted)
	}
	return normalized
}

func sourceForKind(kind search.Kind) string {
	switch kind {
	case search.KindWeb:
		return sourceWebSearch
	case search.KindImage:
		return sourceImageSearch
	default:
		return sourceCustomSearch
	}
}

// pageNum bounds the requested result count to [1, PageMax] so a negative or
// oversized count is never passed upstream.
func pageNum(num int) int {
	if num < 1 {
		return 1
	}
	if num > search.PageMax {
		return search.PageMax
	}
	return num
}

func truncateForLog(body []byte, limit int) (string, bool) {
	if len(body) <= limit {
		return string(body), false
	}
	return string(body[:limit]), true
}
