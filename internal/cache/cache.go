package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a thin wrapper over Redis. A nil *Cache (or one with a nil client)
// degrades to a no-op so callers never have to branch on whether Redis is up.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(addr, password string, ttl time.Duration) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Cache{client: rdb, ttl: ttl}, nil
}

// GetJSON loads the value at key into target. Returns false on miss or when
// the cache is disabled.
func (c *Cache) GetJSON(ctx context.Context, key string, target any) (bool, error) {
	if c == nil || c.client == nil {
		return false, nil
	}

	raw, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON stores value at key with the configured TTL.
func (c *Cache) SetJSON(ctx context.Context, key string, value any) error {
	if c == nil || c.client == nil {
		return nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}

// Invalidate removes the given keys.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if c == nil || c.client == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Once marks key for the given window and reports whether this caller was
// first. Used by the reminder worker to avoid re-sending the same notice.
func (c *Cache) Once(ctx context.Context, key string, window time.Duration) (bool, error) {
	if c == nil || c.client == nil {
		// Without Redis every caller is "first"; the worker tolerates
		// duplicate reminders in that mode.
		return true, nil
	}
	return c.client.SetNX(ctx, key, 1, window).Result()
}
