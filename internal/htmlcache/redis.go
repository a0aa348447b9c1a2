// internal/htmlcache/redis.go
//
// Redis cache backend.
//
// Production edge instances share one Redis so a purge issued through
// any instance is visible to all of them.  Conservative client timeouts
// keep a slow Redis from stalling responses; the dispatcher treats any
// Get error as a miss.

package htmlcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions carries the subset of client tunables we expose in config.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// Redis is a Store backed by a shared Redis instance.
type Redis struct {
	client *redis.Client
}

// NewRedis builds the client and verifies connectivity with a ping so a
// misconfigured cache address fails at boot, not on the first request.
func NewRedis(ctx context.Context, opts RedisOptions) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("htmlcache: redis ping: %w", err)
	}
	return &Redis{client: client}, nil
}

// NewRedisFromClient wraps an existing client; used by tests with
// miniredis.
func NewRedisFromClient(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (c *Redis) Get(ctx context.Context, key string) (string, error) {
	html, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	if err != nil {
		return "", fmt.Errorf("htmlcache: redis get: %w", err)
	}
	return html, nil
}

func (c *Redis) Put(ctx context.Context, key, html string, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, html, ttl).Err(); err != nil {
		return fmt.Errorf("htmlcache: redis set: %w", err)
	}
	return nil
}

func (c *Redis) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("htmlcache: redis del: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (c *Redis) Close() error { return c.client.Close() }
