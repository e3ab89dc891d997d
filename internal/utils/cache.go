package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"errors"        // Error comparison
	"strconv"       // Key formatting
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// Cache key layout
const (
	FlightListKey   = "flight:list"      // All flights
	flightKeyPrefix = "flight:id:"       // Single flight by id
	UserPagePrefix  = "admin:users:page" // Admin user listing pages
)

// FlightKey returns the cache key of a single flight
func FlightKey(id uint) string {
	return flightKeyPrefix + strconv.FormatUint(uint64(id), 10)
}

// GetCache retrieves a value from Redis and unmarshals it into dest.
// A nil client behaves like a cache miss.
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	if rdb == nil {
		return false, nil
	}
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if errors.Is(err, redis.Nil) {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	if rdb == nil {
		return nil
	}
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// DeleteCache deletes keys from Redis
func DeleteCache(ctx context.Context, rdb *redis.Client, keys ...string) error {
	if rdb == nil || len(keys) == 0 {
		return nil
	}
	return rdb.Del(ctx, keys...).Err() // Delete keys from Redis
}

// DeletePrefix removes every key starting with prefix
func DeletePrefix(ctx context.Context, rdb *redis.Client, prefix string) error {
	if rdb == nil {
		return nil
	}
	iter := rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return DeleteCache(ctx, rdb, keys...)
}
