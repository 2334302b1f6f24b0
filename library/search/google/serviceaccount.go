package google

import (
	"context"
	"strings"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	customsearch "google.golang.org/api/customsearch/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	appLog "github.com/elos-ai/google-search-mcp/library/log"
	"github.com/elos-ai/google-search-mcp/library/search"
)

// ServiceAccountEngine queries the Custom Search API through the generated
// Google API client, authenticated with whatever credential options the
// caller supplies (typically a service-account key file).
type ServiceAccountEngine struct {
	svc    *customsearch.Service
	cx     string
	logger logSDK.Logger
}

// NewServiceAccountEngine builds a Custom Search service from the supplied
// client options. The search-engine id (cx) may be empty at construction
// time; Search reports it as a credential problem when it is still missing.
func NewServiceAccountEngine(ctx context.Context, cx string, opts ...option.ClientOption) (*ServiceAccountEngine, error) {
	svc, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "create custom search service")
	}

	return &ServiceAccountEngine{
		svc:    svc,
		cx:     strings.TrimSpace(cx),
		logger: appLog.Logger.Named("google_search_sa"),
	}, nil
}

// Search executes one Custom Search call and returns normalized items.
func (e *ServiceAccountEngine) Search(ctx context.Context, q search.Query) ([]search.ResultItem, error) {
	if strings.TrimSpace(q.Text) == "" {
		return nil, errors.Wrap(search.ErrInvalidArgument, "search query cannot be empty")
	}
	if e.cx == "" {
		return nil, errors.Wrap(search.ErrCredentialsUnavailable,
			"google search engine id (cx) is not configured")
	}

	call := e.svc.Cse.List().
		Cx(e.cx).
		Q(q.Text).
		Num(int64(pageNum(q.Num))).
		Context(ctx)
	if q.Kind == search.KindImage {
		call = call.SearchType("image")
	}

	resp, err := call.Do()
	if err != nil {
		return nil, classifyGoogleAPIError(err)
	}

	if len(resp.Items) == 0 {
		e.logger.Warn("google search returned no results",
			zap.Int("query_len", len(q.Text)),
			zap.String("kind", string(q.Kind)),
		)
	}

	items := make([]search.ResultItem, 0, len(resp.Items))
	for _, item := range resp.Items {
		converted := search.ResultItem{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
			Source:  sourceForKind(q.Kind),
		}
		if q.Kind == search.KindImage && item.Image != nil {
			converted.Image = &search.ImageInfo{
				ContextLink:   item.Image.ContextLink,
				ThumbnailLink: item.Image.ThumbnailLink,
				Height:        item.Image.Height,
				Width:         item.Image.Width,
			}
		}
		items = append(items, converted)
	}

	return items, nil
}

// classifyGoogleAPIError maps a generated-client failure to a typed error,
// distinguishing quota exhaustion from other upstream failures.
func classifyGoogleAPIError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == 429 {
			return errors.Wrapf(search.ErrQuotaExceeded, "google search request: %v", err)
		}
		if apiErr.Code == 403 {
			for _, item := range apiErr.Errors {
				reason := strings.ToLower(item.Reason)
				if strings.Contains(reason, "quota") || strings.Contains(reason, "ratelimit") ||
					strings.Contains(reason, "dailylimit") {
					return errors.Wrapf(search.ErrQuotaExceeded, "google search request: %v", err)
				}
			}
		}
	}

	return errors.Wrapf(search.ErrUpstreamRequest, "google search request: %v", err)
}
