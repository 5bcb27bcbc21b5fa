package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/otcheredev/hms-console/internal/cache"
)

// Storage is the persistent key/value area of one browser
type Storage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, keys ...string) error
}

// CacheStorage scopes a cache.Cache to one session id
type CacheStorage struct {
	cache     cache.Cache
	sessionID string
	ttl       time.Duration
}

func NewCacheStorage(c cache.Cache, sessionID string, ttl time.Duration) *CacheStorage {
	return &CacheStorage{cache: c, sessionID: sessionID, ttl: ttl}
}

func (s *CacheStorage) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.cache.Get(ctx, cache.SessionKey(s.sessionID, key))
	if errors.Is(err, cache.ErrCacheMiss) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return string(val), true, nil
}

func (s *CacheStorage) Set(ctx context.Context, key, value string) error {
	if err := s.cache.Set(ctx, cache.SessionKey(s.sessionID, key), []byte(value), s.ttl); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *CacheStorage) Remove(ctx context.Context, keys ...string) error {
	if err := s.cache.Delete(ctx, s.cacheKeys(keys)...); err != nil {
		return fmt.Errorf("remove %v: %w", keys, err)
	}
	return nil
}

// Touch restarts the ttl of the login fields, so an active browser is not
// logged out mid-visit. The pending flash keeps its own ttl.
func (s *CacheStorage) Touch(ctx context.Context) error {
	if err := s.cache.Expire(ctx, s.ttl, s.cacheKeys(loginKeys)...); err != nil {
		return fmt.Errorf("touch session: %w", err)
	}
	return nil
}

func (s *CacheStorage) cacheKeys(fields []string) []string {
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = cache.SessionKey(s.sessionID, f)
	}
	return keys
}
