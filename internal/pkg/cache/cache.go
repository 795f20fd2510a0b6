package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned when the key is absent from the cache.
var ErrMiss = errors.New("cache miss")

// Cache is a thin JSON cache over Redis.
// All failures other than a plain miss are reported to the caller so it can
// decide whether to fall through to the primary store.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New connects to Redis and verifies the connection with a ping.
func New(ctx context.Context, addr string, ttl time.Duration) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, err
	}

	return &Cache{rdb: rdb, ttl: ttl}, nil
}

// GetJSON reads key and unmarshals the stored JSON into dest.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) error {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrMiss
		}
		return err
	}
	return json.Unmarshal(raw, dest)
}

// SetJSON marshals value and stores it under key with the configured TTL.
func (c *Cache) SetJSON(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, raw, c.ttl).Err()
}

// Delete removes key. A missing key is not an error.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}

// Close releases the underlying connection pool.
func (c *Cache) Close() error {
	return c.rdb.Close()
}
