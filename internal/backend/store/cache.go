package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// repositoriesCacheKey holds the marshaled repository list.
const repositoriesCacheKey = "repolizer:repositories"

// DefaultCacheTTL is how long a cached repository list stays fresh.
const DefaultCacheTTL = 5 * time.Minute

// CachedStore decorates a Store with a Redis-backed cache for the repository
// list. Cache failures degrade to direct file reads with a warning; the cache
// never makes an operation fail.
type CachedStore struct {
	store  *Store
	client *redis.Client
	ttl    time.Duration
}

// NewCachedStore wraps store with a read-through cache on client. A
// non-positive ttl falls back to DefaultCacheTTL.
func NewCachedStore(store *Store, client *redis.Client, ttl time.Duration) *CachedStore {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedStore{
		store:  store,
		client: client,
		ttl:    ttl,
	}
}

// LoadRepositories returns the cached repository list when present, falling
// back to the file-backed store and populating the cache on a miss.
func (c *CachedStore) LoadRepositories(ctx context.Context) []Repository {
	cached, err := c.client.Get(ctx, repositoriesCacheKey).Bytes()
	switch {
	case err == nil:
		var repositories []Repository
		uerr := json.Unmarshal(cached, &repositories)
		if uerr == nil {
			return repositories
		}
		slog.Warn("discarding unreadable cached repository list", "error", uerr)
	case !errors.Is(err, redis.Nil):
		slog.Warn("repository cache read failed", "error", err)
	}

	repositories := c.store.LoadRepositories()
	if data, merr := json.Marshal(repositories); merr == nil {
		if serr := c.client.Set(ctx, repositoriesCacheKey, data, c.ttl).Err(); serr != nil {
			slog.Warn("repository cache write failed", "error", serr)
		}
	}
	return repositories
}

// GetRepositoryByID performs the same linear first-match scan as the
// underlying store, but over the cached list.
func (c *CachedStore) GetRepositoryByID(ctx context.Context, id string) (Repository, bool) {
	for _, repo := range c.LoadRepositories(ctx) {
		if got, ok := repo["id"].(string); ok && got == id {
			return repo, true
		}
	}
	return nil, false
}

// Invalidate drops the cached repository list so the next load re-reads the
// backing file.
func (c *CachedStore) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, repositoriesCacheKey).Err(); err != nil {
		slog.Warn("repository cache invalidation failed", "error", err)
	}
}
