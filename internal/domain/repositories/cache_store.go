package repositories

import (
	"context"
	"time"
)

// CacheStore is a string key-value cache with expiration
type CacheStore interface {
	// Get returns the cached value and whether it was present
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
