package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*CatalogCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCatalogCache(client, ttl), mr
}

func TestCatalogCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	raw, ok, err := cache.Get(ctx, "/games?page=1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, raw)

	require.NoError(t, cache.Set(ctx, "/games?page=1", []byte(`{"count": 0}`)))

	raw, ok, err = cache.Get(ctx, "/games?page=1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"count": 0}`), raw)

	// Different key, still a miss.
	_, ok, err = cache.Get(ctx, "/games?page=2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCatalogCacheEntriesExpire(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "/genres", []byte(`{}`)))
	mr.FastForward(2 * time.Minute)

	_, ok, err := cache.Get(ctx, "/genres")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCatalogCacheKeysAreNamespaced(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)

	require.NoError(t, cache.Set(context.Background(), "/games", []byte(`{}`)))
	assert.True(t, mr.Exists("catalog:/games"))
}
