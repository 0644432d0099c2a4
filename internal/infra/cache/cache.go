// Package cache stores raw vendor responses for a short time.
package cache

import (
	"context"
	"strings"
	"time"

	"vtex-storefront/internal/config"
)

type Cache interface {
	// Get reports a miss with ok == false and a nil error.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set stores value for ttl. A ttl <= 0 keeps the value until it is
	// overwritten.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}

// New returns a Redis cache when an address is configured and an in-memory
// cache otherwise.
func New(cfg config.RedisConfig) (Cache, error) {
	if strings.TrimSpace(cfg.Addr) == "" {
		return NewMemory(), nil
	}
	r, err := NewRedis(cfg)
	if err != nil {
		return nil, err
	}
	return r, nil
}
