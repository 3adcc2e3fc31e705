// Package cache memoizes expensive lookups in Redis.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

// Client wraps a Redis connection used for research memoization.
type Client struct {
	redis *redis.Client
}

// New connects to the given Redis address. The connection is lazy; a Redis
// that is down degrades to cache misses rather than failures.
func New(addr string) *Client {
	return &Client{
		redis: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// Memoize caches a function result in Redis under the given key. Cache
// errors are treated as misses; the wrapped function's error is the only
// one surfaced.
func Memoize[T any](ctx context.Context, c *Client, key string, ttl time.Duration, fn func() (T, error)) (T, error) {
	var result T

	if c != nil {
		cached, err := c.redis.Get(ctx, key).Bytes()
		if err == nil {
			if jsonErr := json.Unmarshal(cached, &result); jsonErr == nil {
				return result, nil
			}
		}
	}

	result, err := fn()
	if err != nil {
		return result, err
	}

	if c != nil {
		if data, err := json.Marshal(result); err == nil {
			c.redis.Set(ctx, key, data, ttl)
		}
	}
	return result, nil
}
