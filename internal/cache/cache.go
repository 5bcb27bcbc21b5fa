// Package cache is the key/value backend that holds browser sessions.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned when a key is absent or expired
var ErrCacheMiss = errors.New("cache miss")

// Cache is the key/value backend behind console sessions. A zero ttl
// never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// Expire resets the ttl of keys that still exist; missing keys are skipped
	Expire(ctx context.Context, ttl time.Duration, keys ...string) error
	Ping(ctx context.Context) error
	Close() error
}

// SessionKey namespaces a stored field under a browser session id
func SessionKey(sessionID, field string) string {
	return "session:" + sessionID + ":" + field
}
