package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// CacheKeyPrefix is the Redis key prefix for cached data
	CacheKeyPrefix = "cache:"
	// DefaultCacheTTL is how long catalog reads stay cached
	DefaultCacheTTL = 10 * time.Minute
	// MinCacheTTL / MaxCacheTTL clamp custom TTLs
	MinCacheTTL = 1 * time.Minute
	MaxCacheTTL = 1 * time.Hour
)

// CacheService provides read-through caching for catalog data.
type CacheService struct {
	redis *redis.Client
}

func NewCacheService(redisClient *redis.Client) *CacheService {
	return &CacheService{redis: redisClient}
}

// Get retrieves a value from cache. A miss is not an error.
func (c *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	val, err := c.redis.Get(ctx, CacheKeyPrefix+key).Result()
	if err != nil {
		return false, nil // cache miss
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores a value in cache with the default TTL.
func (c *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return c.SetWithTTL(ctx, key, value, DefaultCacheTTL)
}

// SetWithTTL stores a value with a custom TTL, clamped to the allowed range.
func (c *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl < MinCacheTTL {
		ttl = MinCacheTTL
	}
	if ttl > MaxCacheTTL {
		ttl = MaxCacheTTL
	}

	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.redis.Set(ctx, CacheKeyPrefix+key, jsonData, ttl).Err()
}

// Delete removes a value from cache.
func (c *CacheService) Delete(ctx context.Context, key string) error {
	return c.redis.Del(ctx, CacheKeyPrefix+key).Err()
}
