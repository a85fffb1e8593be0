// Package cache provides the optional Redis-backed cache for rendered public
// pages. When Redis is not configured a no-op implementation is used and
// every request renders directly.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/jonathan/careers-builder/internal/config"
)

// PageCache stores rendered public page models keyed by company slug.
type PageCache interface {
	GetPage(ctx context.Context, slug string) ([]byte, bool, error)
	SetPage(ctx context.Context, slug string, payload []byte) error
	InvalidatePage(ctx context.Context, slug string) error
}

const pageKeyPrefix = "page:"

// RedisCache is the Redis-backed PageCache.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a PageCache over a Redis connection and verifies it.
func NewRedis(ctx context.Context, cfg *config.CacheConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisCache{client: client, ttl: cfg.PageTTL}, nil
}

// GetPage returns the cached payload for a slug, with a hit indicator.
func (c *RedisCache) GetPage(ctx context.Context, slug string) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, pageKeyPrefix+slug).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return payload, true, nil
}

// SetPage stores a rendered page with the configured TTL.
func (c *RedisCache) SetPage(ctx context.Context, slug string, payload []byte) error {
	return c.client.Set(ctx, pageKeyPrefix+slug, payload, c.ttl).Err()
}

// InvalidatePage drops the cached page for a slug. Called on publish and
// unpublish so the public page never serves a stale generation.
func (c *RedisCache) InvalidatePage(ctx context.Context, slug string) error {
	return c.client.Del(ctx, pageKeyPrefix+slug).Err()
}

// Close releases the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Noop is the PageCache used when Redis is not configured.
type Noop struct{}

// GetPage always misses.
func (Noop) GetPage(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// SetPage discards the payload.
func (Noop) SetPage(context.Context, string, []byte) error { return nil }

// InvalidatePage is a no-op.
func (Noop) InvalidatePage(context.Context, string) error { return nil }
