package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache keeps sessions in process. Sessions do not survive a restart
// and are not shared between replicas.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

type entry struct {
	value    []byte
	deadline time.Time
}

func (e entry) live(now time.Time) bool {
	return e.deadline.IsZero() || now.Before(e.deadline)
}

// NewMemoryCache starts a cache that sweeps expired sessions every minute
func NewMemoryCache() *MemoryCache {
	return newMemoryCache(time.Now)
}

func newMemoryCache(now func() time.Time) *MemoryCache {
	mc := &MemoryCache{
		entries: make(map[string]entry),
		now:     now,
		stop:    make(chan struct{}),
	}
	go mc.sweep(time.Minute)
	return mc
}

func (m *MemoryCache) deadline(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return m.now().Add(ttl)
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || !e.live(m.now()) {
		return nil, ErrCacheMiss
	}
	return append([]byte(nil), e.value...), nil
}

func (m *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	m.entries[key] = entry{value: append([]byte(nil), value...), deadline: m.deadline(ttl)}
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	for _, key := range keys {
		delete(m.entries, key)
	}
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) Expire(_ context.Context, ttl time.Duration, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for _, key := range keys {
		if e, ok := m.entries[key]; ok && e.live(now) {
			e.deadline = m.deadline(ttl)
			m.entries[key] = e
		}
	}
	return nil
}

func (m *MemoryCache) Ping(context.Context) error { return nil }

// Close stops the sweeper; stored sessions stay readable
func (m *MemoryCache) Close() error {
	m.once.Do(func() { close(m.stop) })
	return nil
}

func (m *MemoryCache) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			now := m.now()
			m.mu.Lock()
			for key, e := range m.entries {
				if !e.live(now) {
					delete(m.entries, key)
				}
			}
			m.mu.Unlock()
		}
	}
}
