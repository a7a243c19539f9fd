package cache

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores entries in Redis, letting several processes share views.
type RedisCache struct {
	client   redis.UniversalClient
	attempts int
	backoff  time.Duration
}

// RedisOption configures a RedisCache.
type RedisOption func(*RedisCache)

// WithRetry retries network failures attempts times, starting at backoff.
func WithRetry(attempts int, backoff time.Duration) RedisOption {
	return func(c *RedisCache) {
		c.attempts = max(1, attempts)
		c.backoff = backoff
	}
}

// NewRedisCache connects to the Redis server at url, e.g.
// "redis://localhost:6379/0".
func NewRedisCache(url string, opts ...RedisOption) (*RedisCache, error) {
	o, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewRedisCacheFromClient(redis.NewClient(o), opts...), nil
}

// NewRedisCacheFromClient wraps an existing client.
func NewRedisCacheFromClient(client redis.UniversalClient, opts ...RedisOption) *RedisCache {
	c := &RedisCache{client: client, attempts: 3, backoff: 100 * time.Millisecond}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ping checks the connection.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.do(ctx, func() error { return c.client.Ping(ctx).Err() })
}

// Get implements Cache.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := c.do(ctx, func() error {
		var err error
		data, err = c.client.Get(ctx, key).Bytes()
		return err
	})
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set implements Cache. A ttl of zero never expires.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.do(ctx, func() error { return c.client.Set(ctx, key, data, ttl).Err() })
}

// Delete implements Cache.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.do(ctx, func() error { return c.client.Del(ctx, key).Err() })
}

// Close implements Cache.
func (c *RedisCache) Close() error { return c.client.Close() }

func (c *RedisCache) do(ctx context.Context, fn func() error) error {
	return RetryWithBackoff(ctx, c.attempts, c.backoff, func() error {
		err := fn()
		var netErr net.Error
		if errors.As(err, &netErr) {
			return Retryable(fmt.Errorf("%w: %w", ErrUnavailable, err))
		}
		return err
	})
}

var _ Cache = (*RedisCache)(nil)
