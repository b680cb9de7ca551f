// Package cache is a thin JSON cache on top of Redis.
//
// All helpers are nil-safe: when Connect has not been called (tests, CLI
// commands that do not need Redis) every read is a miss and every write is
// a no-op, so callers never need to branch on availability.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fennwick/brasserie/config"
	"github.com/fennwick/brasserie/pkg/metrics"
)

var RDB *redis.Client

// Connect initialises the shared Redis client from REDIS_ADDR / REDIS_PASSWORD.
func Connect() {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
	})
}

// Ping verifies the Redis connection is live.
func Ping(ctx context.Context) error {
	if RDB == nil {
		return nil
	}
	return RDB.Ping(ctx).Err()
}

// Get loads a JSON value into dest. Returns true on a cache hit.
func Get(ctx context.Context, key string, dest interface{}) bool {
	if RDB == nil {
		return false
	}

	val, err := RDB.Get(ctx, key).Result()
	if err != nil {
		metrics.CacheMisses.WithLabelValues("redis").Inc()
		return false
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		metrics.CacheMisses.WithLabelValues("redis").Inc()
		return false
	}

	metrics.CacheHits.WithLabelValues("redis").Inc()
	return true
}

// Set stores a JSON-encoded value with the given TTL (0 = no expiry).
func Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if RDB == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return RDB.Set(ctx, key, data, ttl).Err()
}

// SetString stores a raw string value with the given TTL.
func SetString(ctx context.Context, key, value string, ttl time.Duration) error {
	if RDB == nil {
		return nil
	}
	return RDB.Set(ctx, key, value, ttl).Err()
}

// Exists reports whether key is present.
func Exists(ctx context.Context, key string) bool {
	if RDB == nil {
		return false
	}
	n, err := RDB.Exists(ctx, key).Result()
	return err == nil && n > 0
}

// Delete removes one or more keys. Missing keys are ignored.
func Delete(ctx context.Context, keys ...string) error {
	if RDB == nil || len(keys) == 0 {
		return nil
	}
	return RDB.Del(ctx, keys...).Err()
}
