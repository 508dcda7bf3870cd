// Package cache provides a Redis-backed cache for search responses, keyed
// on the normalized query and limit, with singleflight deduplication of
// concurrent misses. Every catalog mutation invalidates the whole keyspace.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/anshulpatil/catalog-search/internal/query"
	"github.com/anshulpatil/catalog-search/internal/search"
	"github.com/anshulpatil/catalog-search/pkg/config"
	pkgredis "github.com/anshulpatil/catalog-search/pkg/redis"
	"golang.org/x/sync/singleflight"
)

const keyPrefix = "catalog:search:"

// ResultCache caches serialized search results in Redis.
type ResultCache struct {
	client *pkgredis.Client
	cfg    config.RedisConfig
	group  singleflight.Group
	logger *slog.Logger
	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a ResultCache on the given Redis client.
func New(client *pkgredis.Client, cfg config.RedisConfig) *ResultCache {
	return &ResultCache{
		client: client,
		cfg:    cfg,
		logger: slog.Default().With("component", "search-cache"),
	}
}

// Get returns the cached result for the query and limit, if present.
func (c *ResultCache) Get(ctx context.Context, rawQuery string, limit int) (*search.Result, bool) {
	key := c.buildKey(rawQuery, limit)
	data, err := c.client.Get(ctx, key)
	if err != nil {
		if !pkgredis.IsNilError(err) {
			c.logger.Error("cache get failed", "key", key, "error", err)
		}
		c.misses.Add(1)
		return nil, false
	}
	var result search.Result
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		c.logger.Error("cache unmarshal failed", "key", key, "error", err)
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return &result, true
}

// Set stores a result under the query and limit with the configured TTL.
func (c *ResultCache) Set(ctx context.Context, rawQuery string, limit int, result *search.Result) {
	key := c.buildKey(rawQuery, limit)
	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.cfg.CacheTTL); err != nil {
		c.logger.Error("cache set failed", "key", key, "error", err)
	}
}

// GetOrCompute returns the cached result or computes and stores it, with
// concurrent misses for the same key collapsed into one computation.
func (c *ResultCache) GetOrCompute(
	ctx context.Context,
	rawQuery string,
	limit int,
	computeFn func() (*search.Result, error),
) (*search.Result, bool, error) {
	if result, ok := c.Get(ctx, rawQuery, limit); ok {
		return result, true, nil
	}
	key := c.buildKey(rawQuery, limit)
	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		if result, ok := c.Get(ctx, rawQuery, limit); ok {
			return result, nil
		}
		result, err := computeFn()
		if err != nil {
			return nil, err
		}
		c.Set(ctx, rawQuery, limit, result)
		return result, nil
	})
	if err != nil {
		return nil, false, err
	}
	return val.(*search.Result), false, nil
}

// Invalidate drops every cached search result. Called on any catalog
// mutation, since an index change can affect any query.
func (c *ResultCache) Invalidate(ctx context.Context) error {
	deleted, err := c.client.FlushByPattern(ctx, keyPrefix+"*")
	if err != nil {
		return fmt.Errorf("invalidating search cache: %w", err)
	}
	c.logger.Info("search cache invalidated", "keys_deleted", deleted)
	return nil
}

// Stats returns the hit and miss counters.
func (c *ResultCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *ResultCache) buildKey(rawQuery string, limit int) string {
	normalized := query.Normalize(rawQuery)
	raw := fmt.Sprintf("%s:limit=%d", normalized, limit)
	hash := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%s%x", keyPrefix, hash[:16])
}
