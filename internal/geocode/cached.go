package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/deppfellow/placeshare/internal/lib/utils"
	"github.com/deppfellow/placeshare/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ErrCacheMiss reports that a key is not cached.
var ErrCacheMiss = errors.New("geocode: cache miss")

// Cache stores encoded locations by key.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// RedisCache is a Cache on top of go-redis.
type RedisCache struct {
	rdb *redis.Client
}

func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	return value, err
}

func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

// Cached serves repeated lookups of the same address from a Cache.
//
// Cache failures never fail a lookup: they are logged and the wrapped
// geocoder is asked instead. Errors of the wrapped geocoder are not cached.
type Cached struct {
	next   Geocoder
	cache  Cache
	ttl    time.Duration
	logger *zerolog.Logger
}

func NewCached(next Geocoder, cache Cache, ttl time.Duration, logger *zerolog.Logger) *Cached {
	return &Cached{next: next, cache: cache, ttl: ttl, logger: logger}
}

// CacheKey returns the cache key for address.
func CacheKey(address string) string {
	return "geocode:" + utils.NormalizeAddress(address)
}

func (c *Cached) Coordinates(ctx context.Context, address string) (model.Location, error) {
	key := CacheKey(address)

	raw, err := c.cache.Get(ctx, key)
	switch {
	case err == nil:
		var location model.Location
		if err := json.Unmarshal([]byte(raw), &location); err == nil {
			return location, nil
		}
		c.logger.Warn().Str("key", key).Msg("discarding malformed cached location")
	case !errors.Is(err, ErrCacheMiss):
		c.logger.Warn().Err(err).Str("key", key).Msg("geocode cache read failed")
	}

	location, err := c.next.Coordinates(ctx, address)
	if err != nil {
		return model.Location{}, err
	}

	encoded, err := json.Marshal(location)
	if err == nil {
		err = c.cache.Set(ctx, key, string(encoded), c.ttl)
	}
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("geocode cache write failed")
	}

	return location, nil
}
