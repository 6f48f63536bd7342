package cache

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Guyuepp/go-community-client/domain"
)

// Entry is a stored value with the time it was written.
type Entry[V any] struct {
	Value    V
	StoredAt time.Time
}

// isExpired 检查是否过期
func (e Entry[V]) isExpired(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.StoredAt) >= ttl
}

// TTL is an in-memory cache whose entries expire a fixed duration after they were set.
// Expired entries are purged lazily on read. There is no size bound.
type TTL[V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]Entry[V]
}

var _ domain.Cache[int] = (*TTL[int])(nil)

type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now, tests use it to move time forward.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NewTTL creates an empty cache
func NewTTL[V any](ttl time.Duration, opts ...Option) *TTL[V] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &TTL[V]{
		ttl:     ttl,
		now:     o.now,
		entries: make(map[string]Entry[V]),
	}
}

// Get returns domain.ErrCacheMiss when key is absent or expired.
func (c *TTL[V]) Get(_ context.Context, key string) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.entries[key]
	if !ok {
		return zero, domain.ErrCacheMiss
	}
	if e.isExpired(c.now(), c.ttl) {
		delete(c.entries, key)
		return zero, domain.ErrCacheMiss
	}
	return e.Value, nil
}

// Set always overwrites and resets the entry's age.
func (c *TTL[V]) Set(_ context.Context, key string, value V) error {
	c.mu.Lock()
	c.entries[key] = Entry[V]{Value: value, StoredAt: c.now()}
	c.mu.Unlock()
	return nil
}

// Invalidate removes every key containing pattern, or everything for "".
func (c *TTL[V]) Invalidate(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if pattern == "" {
		clear(c.entries)
		return nil
	}
	for key := range c.entries {
		if strings.Contains(key, pattern) {
			delete(c.entries, key)
		}
	}
	return nil
}

// Keys lists the live keys in sorted order, purging expired ones on the way.
func (c *TTL[V]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	keys := make([]string, 0, len(c.entries))
	for key, e := range c.entries {
		if e.isExpired(now, c.ttl) {
			delete(c.entries, key)
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Len counts stored entries, expired ones included until they are read.
func (c *TTL[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
