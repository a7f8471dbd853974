// internal/search/cached.go
package search

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"matchtech-assistant/internal/assistant"
	"matchtech-assistant/internal/common/logger"
)

// CachedClient decorates a Searcher with a short-lived Redis result cache.
// Cache failures are never fatal: a miss or a Redis error falls through to
// the wrapped client.
type CachedClient struct {
	next   assistant.Searcher
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedClient(next assistant.Searcher, rdb *redis.Client, ttl time.Duration, log logger.Logger) *CachedClient {
	return &CachedClient{
		next:  next,
		redis: rdb,
		ttl:   ttl,
		logger: log.With(map[string]interface{}{
			"component": "web-search-cache",
		}),
	}
}

func (c *CachedClient) Search(ctx context.Context, query string) ([]assistant.SearchResult, error) {
	key := cacheKey(query)

	if raw, err := c.redis.Get(ctx, key).Result(); err == nil {
		var cached []assistant.SearchResult
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			c.logger.Debug("cache hit", map[string]interface{}{"key": key})
			return cached, nil
		}
	} else if err != redis.Nil {
		c.logger.Warn("cache lookup failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	results, err := c.next.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(results); err == nil {
		if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Warn("cache store failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return results, nil
}

func cacheKey(query string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(query))))
	return "websearch:" + hex.EncodeToString(sum[:])
}
