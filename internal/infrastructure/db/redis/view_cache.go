package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultViewTTL = 5 * time.Minute

// ViewCache stores rendered views as JSON, keyed by the path that renders
// them. Key format: view:<path>
type ViewCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewViewCache creates a ViewCache wrapping the given Redis client. A
// non-positive ttl uses the default.
func NewViewCache(client *redis.Client, ttl time.Duration) *ViewCache {
	if ttl <= 0 {
		ttl = defaultViewTTL
	}
	return &ViewCache{client: client, ttl: ttl}
}

// Invalidate drops the cached view for path. A missing key is not an error.
func (c *ViewCache) Invalidate(ctx context.Context, path string) error {
	if err := c.client.Del(ctx, viewKey(path)).Err(); err != nil {
		return fmt.Errorf("invalidate %s: %w", path, err)
	}
	return nil
}

// Get decodes the cached view for path into dst and reports whether it was
// present.
func (c *ViewCache) Get(ctx context.Context, path string, dst any) (bool, error) {
	b, err := c.client.Get(ctx, viewKey(path)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("view get %s: %w", path, err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, fmt.Errorf("view decode %s: %w", path, err)
	}
	return true, nil
}

func (c *ViewCache) Set(ctx context.Context, path string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("view encode %s: %w", path, err)
	}
	if err := c.client.Set(ctx, viewKey(path), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("view set %s: %w", path, err)
	}
	return nil
}

func viewKey(path string) string {
	return "view:" + path
}
