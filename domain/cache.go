package domain

import (
	"context"
	"fmt"
	"time"
)

const (
	// FeedCacheTTL bounds how long a batched feed page is served from cache.
	FeedCacheTTL = 60 * time.Second
	// UserCacheTTL bounds profile and user reads.
	UserCacheTTL = 120 * time.Second
	// StatsCacheTTL bounds low-churn stats.
	StatsCacheTTL = 300 * time.Second
)

// Cache keys. Invalidation patterns are plain substrings, so every key embeds the
// words its mutations evict by.
const (
	KeyBatchFeed    = "batch-feed-%d-%d"
	KeyFeedStats    = "feed-stats"
	KeyPostDetail   = "posts-detail-%d"
	KeyPostComments = "comments-post-%d"
	KeyUserProfile  = "user-profile-%d"
)

// Invalidation patterns.
const (
	PatternPosts    = "posts"
	PatternStats    = "stats"
	PatternBatch    = "batch"
	PatternComments = "comments"
	PatternProfile  = "profile"
	PatternUser     = "user"
	PatternSimilar  = "similar"
)

func BatchFeedKey(page, pageSize int) string { return fmt.Sprintf(KeyBatchFeed, page, pageSize) }

func PostDetailKey(id int64) string { return fmt.Sprintf(KeyPostDetail, id) }

func PostCommentsKey(id int64) string { return fmt.Sprintf(KeyPostComments, id) }

func UserProfileKey(id int64) string { return fmt.Sprintf(KeyUserProfile, id) }

// Invalidator evicts every key containing pattern. An empty pattern clears everything.
type Invalidator interface {
	Invalidate(ctx context.Context, pattern string) error
}

// Cache is a key-value store with a fixed time-to-live per instance.
// Get returns ErrCacheMiss when the key is absent or expired.
type Cache[V any] interface {
	Get(ctx context.Context, key string) (V, error)
	Set(ctx context.Context, key string, value V) error
	Invalidator
}
