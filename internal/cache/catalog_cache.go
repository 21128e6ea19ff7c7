package cache

import (
	"context"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// CatalogCache stores raw provider responses in redis, keyed by request URL.
// A miss is never an error; the gateway just goes to the network.
type CatalogCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewCatalogCache(client *redisv9.Client, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CatalogCache{client: client, ttl: ttl}
}

func (c *CatalogCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := c.client.Get(ctx, c.cacheKey(key)).Bytes()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get catalog entry failed: %w", err)
	}
	return raw, true, nil
}

func (c *CatalogCache) Set(ctx context.Context, key string, value []byte) error {
	if err := c.client.Set(ctx, c.cacheKey(key), value, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set catalog entry failed: %w", err)
	}
	return nil
}

func (c *CatalogCache) cacheKey(key string) string {
	return "catalog:" + key
}
