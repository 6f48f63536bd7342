package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Guyuepp/go-community-client/domain"
)

const (
	KeyPrefix = "community:%s:"
	scanBatch = 100
)

// jsonCache stores JSON encoded values under a per-session namespace, redis enforces the TTL.
type jsonCache[V any] struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ domain.Cache[int] = (*jsonCache[int])(nil)

// NewCache creates a redis backed domain.Cache. namespace keeps sessions apart.
func NewCache[V any](client *redis.Client, namespace string, ttl time.Duration) *jsonCache[V] {
	return &jsonCache[V]{
		client: client,
		prefix: fmt.Sprintf(KeyPrefix, namespace),
		ttl:    ttl,
	}
}

func (c *jsonCache[V]) Get(ctx context.Context, key string) (res V, err error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return res, domain.ErrCacheMiss
	} else if err != nil {
		return res, err
	}
	if err = json.Unmarshal(data, &res); err != nil {
		return res, err
	}
	return res, nil
}

func (c *jsonCache[V]) Set(ctx context.Context, key string, value V) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.prefix+key, data, c.ttl).Err()
}

// Invalidate deletes matching keys in SCAN sized batches to stay easy on memory.
func (c *jsonCache[V]) Invalidate(ctx context.Context, pattern string) error {
	match := c.MatchPattern(pattern)
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, match, scanBatch).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// MatchPattern is the SCAN glob for a substring pattern inside this namespace.
func (c *jsonCache[V]) MatchPattern(pattern string) string {
	if pattern == "" {
		return c.prefix + "*"
	}
	return c.prefix + "*" + escapeGlob(pattern) + "*"
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

func escapeGlob(s string) string {
	return globEscaper.Replace(s)
}
