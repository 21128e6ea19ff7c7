package rawg

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapCache is an in-process Cache for tests.
type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}}
}

func (c *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	return raw, ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func TestGamesBuildsQueryParams(t *testing.T) {
	var got url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Write([]byte(`{"count": 0, "results": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-key", nil)
	_, err := client.Games(context.Background(), GamesQuery{
		Page:     2,
		PageSize: 20,
		Search:   "hades",
		Genres:   "indie,action",
		Ordering: "-released",
	})
	require.NoError(t, err)

	assert.Equal(t, "secret-key", got.Get("key"))
	assert.Equal(t, "2", got.Get("page"))
	assert.Equal(t, "20", got.Get("page_size"))
	assert.Equal(t, "hades", got.Get("search"))
	assert.Equal(t, "indie,action", got.Get("genres"))
	assert.Equal(t, "-released", got.Get("ordering"))
	assert.Empty(t, got.Get("dates"), "zero-value fields must be omitted")
}

func TestGameParsesDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/games/42", r.URL.Path)
		w.Write([]byte(`{
			"id": 42,
			"name": "Outer Wilds",
			"description_raw": "Space.",
			"genres": [{"id": 1, "name": "Adventure", "slug": "adventure"}],
			"platforms": [{"platform": {"id": 4, "name": "PC", "slug": "pc"}}]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", nil)
	details, err := client.Game(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, 42, details.ID)
	assert.Equal(t, "Space.", details.Description)
	require.Len(t, details.Genres, 1)
	assert.Equal(t, "adventure", details.Genres[0].Slug)
	require.Len(t, details.Platforms, 1)
	assert.Equal(t, "PC", details.Platforms[0].Platform.Name)
}

func TestProviderErrorsBecomeAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Not found."}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", nil)
	_, err := client.Game(context.Background(), "999")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Not found.", apiErr.Message)
}

func TestCacheHitSkipsNetwork(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`{"count": 1, "results": [{"id": 42, "name": "Outer Wilds"}]}`))
	}))
	defer server.Close()

	cache := newMapCache()
	client := NewClient(server.URL, "secret-key", cache)

	query := GamesQuery{Search: "outer"}
	first, err := client.Games(context.Background(), query)
	require.NoError(t, err)
	second, err := client.Games(context.Background(), query)
	require.NoError(t, err)

	assert.Equal(t, 1, requests, "second fetch must be served from cache")
	assert.Equal(t, first, second)

	// The credential must not leak into cache keys.
	for key := range cache.data {
		assert.NotContains(t, key, "secret-key")
	}
}

func TestCorruptBodiesAreNotCached(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			w.Write([]byte(`{"count": truncated`))
			return
		}
		w.Write([]byte(`{"count": 1, "results": [{"id": 42, "name": "Outer Wilds"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", newMapCache())

	_, err := client.Games(context.Background(), GamesQuery{})
	require.Error(t, err)

	// The undecodable body must not be served back from the cache.
	page, err := client.Games(context.Background(), GamesQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Count)
	assert.Equal(t, 2, requests)
}

func TestProviderErrorsAreNotCached(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"count": 0, "results": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", newMapCache())

	_, err := client.Games(context.Background(), GamesQuery{})
	require.Error(t, err)
	_, err = client.Games(context.Background(), GamesQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, requests)
}
