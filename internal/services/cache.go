package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AnshRaj112/jurnal-backend/internal/models"
)

const (
	// CacheKeyPrefix is the Redis key prefix for cached data
	CacheKeyPrefix = "cache:"
	// DefaultCacheTTL sits in the middle of the allowed range
	DefaultCacheTTL = 8 * time.Hour
	MinCacheTTL     = 6 * time.Hour
	MaxCacheTTL     = 12 * time.Hour

	weeklyRecapResource = "weekly_recap"
)

// RecapCache is a read-through cache in front of the recap store.
// A miss is (nil, false, nil); errors are advisory and never fail a request.
type RecapCache interface {
	GetRecap(ctx context.Context, userID, weekStart, weekEnd string) (*models.WeeklyRecap, bool, error)
	SetRecap(ctx context.Context, r *models.WeeklyRecap) error
	InvalidateUser(ctx context.Context, userID string) error
}

// CacheKey generates a cache key for a specific resource
func CacheKey(resource string, parts ...string) string {
	key := resource
	for _, p := range parts {
		key = fmt.Sprintf("%s:%s", key, p)
	}
	return key
}

func clampTTL(ttl time.Duration) time.Duration {
	if ttl < MinCacheTTL {
		return MinCacheTTL
	}
	if ttl > MaxCacheTTL {
		return MaxCacheTTL
	}
	return ttl
}

// RedisRecapCache stores recaps as JSON under cache:weekly_recap:<user>:<start>:<end>.
type RedisRecapCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRecapCache clamps ttl to [MinCacheTTL, MaxCacheTTL]; zero means DefaultCacheTTL.
func NewRedisRecapCache(client *redis.Client, ttl time.Duration) *RedisRecapCache {
	if ttl == 0 {
		ttl = DefaultCacheTTL
	}
	return &RedisRecapCache{client: client, ttl: clampTTL(ttl)}
}

func recapCacheKey(userID, weekStart, weekEnd string) string {
	return CacheKeyPrefix + CacheKey(weeklyRecapResource, userID, weekStart, weekEnd)
}

func (c *RedisRecapCache) GetRecap(ctx context.Context, userID, weekStart, weekEnd string) (*models.WeeklyRecap, bool, error) {
	val, err := c.client.Get(ctx, recapCacheKey(userID, weekStart, weekEnd)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var r models.WeeklyRecap
	if err := json.Unmarshal(val, &r); err != nil {
		return nil, false, err
	}
	// json:"-" drops the owner; the key already scopes it.
	r.UserID = userID
	return &r, true, nil
}

func (c *RedisRecapCache) SetRecap(ctx context.Context, r *models.WeeklyRecap) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, recapCacheKey(r.UserID, r.WeekStart, r.WeekEnd), data, c.ttl).Err()
}

// InvalidateUser drops every cached recap for the user.
func (c *RedisRecapCache) InvalidateUser(ctx context.Context, userID string) error {
	pattern := CacheKeyPrefix + CacheKey(weeklyRecapResource, userID, "*")
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
