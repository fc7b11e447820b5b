// Package cache provides an optional Redis-backed cache. Callers treat a nil
// Cache as "caching disabled".
package cache

import (
	"context"
	"time"
)

// Cache stores JSON-serializable values with a TTL.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}
