package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/elos-ai/google-search-mcp/library/search"
)

func TestSearchEngineSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "GET", r.Method)
		require.Equal(t, "test-query", r.URL.Query().Get("q"))
		require.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.Equal(t, "test-cx", r.URL.Query().Get("cx"))
		require.Equal(t, "5", r.URL.Query().Get("num"))
		require.Empty(t, r.URL.Query().Get("searchType"))

		payload := map[string]any{
			"kind": "customsearch#search",
			"items": []map[string]string{
				{"title": "First", "link": "https://example.com/1", "snippet": "first snippet"},
				{"title": "Second", "link": "https://example.com/2"},
			},
		}

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(payload))
	}))
	defer server.Close()

	engine := NewSearchEngine("test-key", "test-cx",
		WithEndpoint(server.URL), WithHTTPClient(server.Client()))

	items, err := engine.Search(context.Background(), search.Query{
		Text: "test-query",
		Num:  5,
		Kind: search.KindGeneral,
	})
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "First", items[0].Title)
	require.Equal(t, "https://example.com/1", items[0].Link)
	require.Equal(t, "first snippet", items[0].Snippet)
	require.Equal(t, "Google Custom Search", items[0].Source)

	// a missing snippet maps to an empty string, never an absent value
	require.Equal(t, "Second", items[1].Title)
	require.Equal(t, "", items[1].Snippet)
}

func TestSearchEngineImageSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "image", r.URL.Query().Get("searchType"))
		require.Equal(t, "3", r.URL.Query().Get("num"))

		payload := map[string]any{
			"items": []map[string]any{
				{
					"title": "Cat",
					"link":  "https://example.com/cat.png",
					"image": map[string]any{
						"contextLink":   "https://example.com/cats",
						"thumbnailLink": "https://example.com/cat_thumb.png",
						"height":        480,
						"width":         640,
					},
				},
			},
		}

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(payload))
	}))
	defer server.Close()

	engine := NewSearchEngine("key", "cx",
		WithEndpoint(server.URL), WithHTTPClient(server.Client()))

	items, err := engine.Search(context.Background(), search.Query{
		Text: "cat",
		Num:  3,
		Kind: search.KindImage,
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Google Image Search", items[0].Source)
	require.NotNil(t, items[0].Image)
	require.Equal(t, "https://example.com/cats", items[0].Image.ContextLink)
	require.Equal(t, "https://example.com/cat_thumb.png", items[0].Image.ThumbnailLink)
	require.EqualValues(t, 480, items[0].Image.Height)
	require.EqualValues(t, 640, items[0].Image.Width)
}

func TestSearchEngineClampsPageSize(t *testing.T) {
	var gotNum string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotNum = r.URL.Query().Get("num")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	defer server.Close()

	engine := NewSearchEngine("key", "cx",
		WithEndpoint(server.URL), WithHTTPClient(server.Client()))

	_, err := engine.Search(context.Background(), search.Query{Text: "q", Num: 50, Kind: search.KindGeneral})
	require.NoError(t, err)
	require.Equal(t, "10", gotNum)

	_, err = engine.Search(context.Background(), search.Query{Text: "q", Num: -3, Kind: search.KindGeneral})
	require.NoError(t, err)
	require.Equal(t, "1", gotNum)
}

func TestSearchEngineQuotaExceeded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"Quota exceeded"}}`))
	}))
	defer server.Close()

	engine := NewSearchEngine("key", "cx",
		WithEndpoint(server.URL), WithHTTPClient(server.Client()))

	items, err := engine.Search(context.Background(), search.Query{Text: "q", Num: 5, Kind: search.KindWeb})
	require.Error(t, err)
	require.Nil(t, items)
	require.ErrorIs(t, err, search.ErrQuotaExceeded)
	require.Equal(t, search.KindUpstreamQuotaExceeded, search.KindOf(err))
}

func TestSearchEngineQuotaExceededOn403RateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"Rate Limit Exceeded","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer server.Close()

	engine := NewSearchEngine("key", "cx",
		WithEndpoint(server.URL), WithHTTPClient(server.Client()))

	_, err := engine.Search(context.Background(), search.Query{Text: "q", Num: 5, Kind: search.KindGeneral})
	require.Error(t, err)
	require.ErrorIs(t, err, search.ErrQuotaExceeded)
}

func TestSearchEngineHandlesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"server"}`))
	}))
	defer server.Close()

	engine := NewSearchEngine("key", "cx",
		WithEndpoint(server.URL), WithHTTPClient(server.Client()))

	items, err := engine.Search(context.Background(), search.Query{Text: "q", Num: 5, Kind: search.KindGeneral})
	require.Error(t, err)
	require.Nil(t, items)
	require.ErrorIs(t, err, search.ErrUpstreamRequest)
	require.Contains(t, err.Error(), "returned status")
}

func TestSearchEngineValidatesCredentials(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	engine := NewSearchEngine("", "cx",
		WithEndpoint(server.URL), WithHTTPClient(server.Client()))

	items, err := engine.Search(context.Background(), search.Query{Text: "q", Num: 5, Kind: search.KindGeneral})
	require.Error(t, err)
	require.Nil(t, items)
	require.ErrorIs(t, err, search.ErrCredentialsUnavailable)
	require.EqualValues(t, 0, calls.Load(), "no network call without credentials")
}

func TestSearchEngineValidatesQuery(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	engine := NewSearchEngine("key", "cx",
		WithEndpoint(server.URL), WithHTTPClient(server.Client()))

	items, err := engine.Search(context.Background(), search.Query{Text: "   ", Num: 5, Kind: search.KindGeneral})
	require.Error(t, err)
	require.Nil(t, items)
	require.ErrorIs(t, err, search.ErrInvalidArgument)
	require.EqualValues(t, 0, calls.Load(), "no network call for an empty query")
}
