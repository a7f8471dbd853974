// internal/search/cached_test.go
package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchtech-assistant/internal/assistant"
	"matchtech-assistant/internal/common/logger"
)

type fakeSearcher struct {
	results []assistant.SearchResult
	err     error
	calls   int
}

func (f *fakeSearcher) Search(ctx context.Context, query string) ([]assistant.SearchResult, error) {
	f.calls++
	return f.results, f.err
}

func newCacheFixture(t *testing.T, next assistant.Searcher, ttl time.Duration) (*CachedClient, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewCachedClient(next, rdb, ttl, logger.NewNoOpLogger()), mr
}

func TestCachedClient_SecondCallServedFromCache(t *testing.T) {
	next := &fakeSearcher{
		results: []assistant.SearchResult{
			{Title: "Reseña", Content: "Buena tablet.", URL: "https://example.com"},
		},
	}
	cached, _ := newCacheFixture(t, next, time.Minute)

	first, err := cached.Search(context.Background(), "tablet gama media")
	require.NoError(t, err)
	assert.Equal(t, 1, next.calls)

	second, err := cached.Search(context.Background(), "tablet gama media")
	require.NoError(t, err)
	assert.Equal(t, 1, next.calls, "second lookup must not hit the upstream client")
	assert.Equal(t, first, second)
}

func TestCachedClient_KeyNormalizesCaseAndWhitespace(t *testing.T) {
	next := &fakeSearcher{
		results: []assistant.SearchResult{{Title: "t", Content: "c", URL: "u"}},
	}
	cached, _ := newCacheFixture(t, next, time.Minute)

	_, err := cached.Search(context.Background(), "Mejor Celular")
	require.NoError(t, err)

	_, err = cached.Search(context.Background(), "  mejor celular  ")
	require.NoError(t, err)

	assert.Equal(t, 1, next.calls)
}

func TestCachedClient_ErrorsAreNotCached(t *testing.T) {
	next := &fakeSearcher{err: errors.New("upstream down")}
	cached, mr := newCacheFixture(t, next, time.Minute)

	_, err := cached.Search(context.Background(), "celular")
	assert.Error(t, err)

	assert.Empty(t, mr.Keys(), "failed searches must leave no cache entry")

	_, err = cached.Search(context.Background(), "celular")
	assert.Error(t, err)
	assert.Equal(t, 2, next.calls)
}

func TestCachedClient_EntriesExpire(t *testing.T) {
	next := &fakeSearcher{
		results: []assistant.SearchResult{{Title: "t", Content: "c", URL: "u"}},
	}
	cached, mr := newCacheFixture(t, next, 30*time.Second)

	_, err := cached.Search(context.Background(), "celular")
	require.NoError(t, err)

	mr.FastForward(time.Minute)

	_, err = cached.Search(context.Background(), "celular")
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls, "expired entry must refresh from upstream")
}

func TestCachedClient_RedisDownFallsThrough(t *testing.T) {
	next := &fakeSearcher{
		results: []assistant.SearchResult{{Title: "t", Content: "c", URL: "u"}},
	}
	cached, mr := newCacheFixture(t, next, time.Minute)
	mr.Close()

	results, err := cached.Search(context.Background(), "celular")

	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, 1, next.calls)
}
