package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Client is the cache contract used by repositories and middleware.
type Client interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// Incr increments a counter and starts its TTL when the counter is new.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	Close() error
}

// ErrCacheMiss is returned when the key does not exist.
var ErrCacheMiss = errors.New("cache miss")

// RedisClient is the Redis implementation of Client.
type RedisClient struct {
	rdb *redis.Client
}

// NewRedisClient connects to Redis and checks the connection with a PING.
func NewRedisClient(addr string) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}

	return &RedisClient{rdb: rdb}, nil
}

// Get returns the value stored at key, or ErrCacheMiss.
func (c *RedisClient) Get(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Set stores value at key with a TTL.
func (c *RedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.rdb.Set(ctx, key, value, expiration).Err()
}

// Delete removes keys; missing keys are not an error.
func (c *RedisClient) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// Incr increments key. The TTL is set only by the call that created the counter,
// so a fixed window starts at the first hit.
func (c *RedisClient) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	n, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := c.rdb.Expire(ctx, key, ttl).Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}

// Close releases the connection pool.
func (c *RedisClient) Close() error {
	return c.rdb.Close()
}

// NoopClient always misses. Used when no Redis address is configured.
type NoopClient struct{}

func (NoopClient) Get(context.Context, string) (string, error) { return "", ErrCacheMiss }
func (NoopClient) Set(context.Context, string, interface{}, time.Duration) error {
	return nil
}
func (NoopClient) Delete(context.Context, ...string) error                    { return nil }
func (NoopClient) Incr(context.Context, string, time.Duration) (int64, error) { return 1, nil }
func (NoopClient) Close() error                                               { return nil }
