// Package config provides environment-driven configuration for the careers-page builder.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// CacheConfig holds configuration for the optional Redis page cache.
// When Addr is empty, caching is disabled and the server renders directly.
type CacheConfig struct {
	Addr     string
	Password string
	DB       int
	PageTTL  time.Duration
}

// NewCacheConfig creates a cache configuration from environment variables.
// It reads REDIS_ADDR (empty disables caching), REDIS_PASSWORD, REDIS_DB
// (default: 0) and PAGE_CACHE_TTL (default: 5m).
func NewCacheConfig() (*CacheConfig, error) {
	cfg := &CacheConfig{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		PageTTL:  5 * time.Minute,
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %v", err)
		}
		cfg.DB = db
	}

	if ttlStr := os.Getenv("PAGE_CACHE_TTL"); ttlStr != "" {
		ttl, err := time.ParseDuration(ttlStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PAGE_CACHE_TTL: %v", err)
		}
		cfg.PageTTL = ttl
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Enabled reports whether a Redis address was configured.
func (c *CacheConfig) Enabled() bool {
	return c.Addr != ""
}

// normalize validates the configuration.
func (c *CacheConfig) normalize() error {
	if c.PageTTL <= 0 {
		return fmt.Errorf("PAGE_CACHE_TTL must be positive, got: %s", c.PageTTL)
	}
	if c.DB < 0 {
		return fmt.Errorf("REDIS_DB cannot be negative: %d", c.DB)
	}
	return nil
}
