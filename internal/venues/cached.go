package venues

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/babygenie/service-planner/internal/domain/planning"
)

const cacheKeyPrefix = "venues/candidates/"

// CachedSource keeps the results of a wrapped source in redis, keyed by postcode.
// Cache failures are logged and fall through to the wrapped source.
type CachedSource struct {
	next   planning.CandidateSource
	cache  *cache.Cache[string]
	logger *zap.Logger
}

// NewCachedSource wraps next with a redis-backed cache whose entries expire after ttl.
func NewCachedSource(next planning.CandidateSource, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedSource {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(ttl))

	return &CachedSource{
		next:   next,
		cache:  cache.New[string](redisStore),
		logger: logger,
	}
}

// CacheKey returns the cache key used for a location.
func CacheKey(location string) string {
	return cacheKeyPrefix + planning.NormalizePostcode(location)
}

// Fetch returns cached candidates for location, loading and storing them on a miss.
func (s *CachedSource) Fetch(ctx context.Context, location string) ([]planning.VenueCandidate, error) {
	key := CacheKey(location)

	cached, err := s.cache.Get(ctx, key)
	if err == nil {
		var candidates []planning.VenueCandidate
		if err := json.Unmarshal([]byte(cached), &candidates); err == nil {
			return candidates, nil
		}
		s.logger.Warn("discarding unreadable cache entry", zap.String("key", key))
	}

	candidates, err := s.next.Fetch(ctx, location)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(candidates)
	if err != nil {
		return nil, fmt.Errorf("failed to encode candidates: %w", err)
	}
	if err := s.cache.Set(ctx, key, string(encoded)); err != nil {
		s.logger.Warn("failed to cache candidates", zap.String("key", key), zap.Error(err))
	}
	return candidates, nil
}

// Invalidate drops the cached candidates for location.
func (s *CachedSource) Invalidate(ctx context.Context, location string) error {
	key := CacheKey(location)
	if err := s.cache.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to invalidate %s: %w", key, err)
	}
	return nil
}
