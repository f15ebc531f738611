package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// JSONCache stores a single JSON-encoded value under one key.
// A nil cache or a cache without a client is a no-op that always misses.
type JSONCache[T any] struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

func NewJSONCache[T any](rdb *redis.Client, key string, ttl time.Duration) *JSONCache[T] {
	return &JSONCache[T]{rdb: rdb, key: key, ttl: ttl}
}

func (c *JSONCache[T]) enabled() bool { return c != nil && c.rdb != nil }

// Get returns the cached value and whether it was present.
func (c *JSONCache[T]) Get(ctx context.Context) (*T, bool, error) {
	if !c.enabled() {
		return nil, false, nil
	}
	res, err := c.rdb.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var v T
	if err := json.Unmarshal(res, &v); err != nil {
		return nil, false, err
	}
	return &v, true, nil
}

func (c *JSONCache[T]) Set(ctx context.Context, v *T) error {
	if !c.enabled() {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.key, b, c.ttl).Err()
}

// SetIfAbsent stores v only when the key is empty and reports whether it did.
// Read-through fills use it so a value loaded before a concurrent write cannot
// replace the one that write stored.
func (c *JSONCache[T]) SetIfAbsent(ctx context.Context, v *T) (bool, error) {
	if !c.enabled() {
		return false, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return false, err
	}
	return c.rdb.SetNX(ctx, c.key, b, c.ttl).Result()
}

func (c *JSONCache[T]) Invalidate(ctx context.Context) error {
	if !c.enabled() {
		return nil
	}
	return c.rdb.Del(ctx, c.key).Err()
}
