// Package cache provides short-lived JSON value caches used to avoid
// repeating identical upstream fetches within a bounded staleness window.
package cache

import (
	"context"
	"time"
)

// Cache stores JSON-encodable values under string keys with a TTL.
type Cache interface {
	// Get decodes the value stored under key into dst.
	// Returns false, nil on a miss or an expired entry.
	Get(ctx context.Context, key string, dst interface{}) (bool, error)

	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}
