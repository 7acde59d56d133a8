package cache

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores entries in Redis under a key namespace.
type RedisCache struct {
	client    redis.UniversalClient
	namespace string
}

// RedisConfig configures NewRedisCache.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	Namespace string // key prefix, defaults to "typst:"
}

// NewRedisCache connects to Redis and verifies the connection, retrying
// transient network failures.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis address is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	err := RetryWithBackoff(ctx, func() error {
		err := client.Ping(ctx).Err()
		var netErr net.Error
		if errors.As(err, &netErr) {
			return Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
		}
		return err
	})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Addr, err)
	}
	return NewRedisCacheFromClient(client, cfg.Namespace), nil
}

// NewRedisCacheFromClient wraps an existing client.
func NewRedisCacheFromClient(client redis.UniversalClient, namespace string) *RedisCache {
	if namespace == "" {
		namespace = "typst:"
	}
	return &RedisCache{client: client, namespace: namespace}
}

func (c *RedisCache) key(k string) string {
	return c.namespace + k
}

// Get retrieves a value; redis.Nil is a miss.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return data, true, nil
}

// Set stores a value with the given expiry.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.key(key), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes a value.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Clear deletes every key in the namespace using SCAN.
func (c *RedisCache) Clear(ctx context.Context) (int, error) {
	count := 0
	iter := c.client.Scan(ctx, 0, c.namespace+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return count, fmt.Errorf("redis del: %w", err)
		}
		count++
	}
	if err := iter.Err(); err != nil {
		return count, fmt.Errorf("redis scan: %w", err)
	}
	return count, nil
}

// Close closes the client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

var (
	_ Cache   = (*RedisCache)(nil)
	_ Clearer = (*RedisCache)(nil)
)
