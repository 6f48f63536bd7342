package domain

import (
	"context"
	"time"
)

// Tab selects which collection of a FeedBundle the UI shows.
type Tab string

const (
	TabAll     Tab = "all"
	TabSimilar Tab = "similar"
)

// ParseTab falls back to TabAll for anything it does not know.
func ParseTab(s string) Tab {
	if Tab(s) == TabSimilar {
		return TabSimilar
	}
	return TabAll
}

// SimilarFeedFallbackMessage replaces a raw error when the similarity feed cannot load.
const SimilarFeedFallbackMessage = "Add tags to your profile to see posts from people with similar interests."

// PostSummary is the card-sized view of a post
type PostSummary struct {
	ID           int64       `json:"id"`
	Title        string      `json:"title"`
	Body         string      `json:"body"`
	Author       UserSummary `json:"author"`
	Tags         []string    `json:"tags,omitempty"`
	LikeCount    int         `json:"like_count"`
	CommentCount int         `json:"comment_count"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// PostDetail is a full post. Comments is only meaningful when CommentsIncluded is set,
// the API leaves them out on some deployments.
type PostDetail struct {
	PostSummary
	Comments         []FlatComment `json:"comments,omitempty"`
	CommentsIncluded bool          `json:"comments_included"`
}

// FeedStats are the shared counters shown next to the feed.
type FeedStats struct {
	TotalPosts   int `json:"total_posts"`
	SimilarPosts int `json:"similar_posts"`
	TotalUsers   int `json:"total_users"`
	MatchingTags int `json:"matching_tags"`
}

// FeedBundle holds both feed collections of one page.
// Degraded is set when it was assembled from per-collection fallbacks.
type FeedBundle struct {
	AllPosts          []PostSummary `json:"all_posts"`
	SimilarPosts      []PostSummary `json:"similar_posts"`
	AllPagination     Pagination    `json:"all_posts_pagination"`
	SimilarPagination Pagination    `json:"similar_posts_pagination"`
	Stats             FeedStats     `json:"stats"`
	ActiveTab         Tab           `json:"active_tab"`
	Message           string        `json:"message,omitempty"`
	Degraded          bool          `json:"degraded"`
}

// BatchFeed is the combined endpoint's answer.
type BatchFeed struct {
	AllPosts          []PostSummary
	SimilarPosts      []PostSummary
	AllPagination     Pagination
	SimilarPagination Pagination
	Stats             FeedStats
	Message           string
}

// FeedPage is one page of a single collection.
type FeedPage struct {
	Posts      []PostSummary
	Pagination Pagination
	Message    string
}

// PostView is what the detail page renders.
type PostView struct {
	Post         PostSummary      `json:"post"`
	Comments     []*CommentNode   `json:"comments"`
	Interaction  InteractionState `json:"interaction"`
	CommentCount int              `json:"comment_count"`
}

// FeedAPI is the remote feed contract.
type FeedAPI interface {
	FetchBatch(ctx context.Context, page, pageSize int) (BatchFeed, error)
	FetchAll(ctx context.Context, page, pageSize int) (FeedPage, error)
	FetchSimilar(ctx context.Context, page, pageSize int) (FeedPage, error)
	FetchStats(ctx context.Context) (FeedStats, error)
}

// PostAPI is the remote post contract.
type PostAPI interface {
	// GetPost returns ErrNotFound if the post does not exist.
	GetPost(ctx context.Context, id int64) (PostDetail, error)
}

type FeedUsecase interface {
	LoadFeed(ctx context.Context, page, pageSize int, tab Tab) (FeedBundle, error)
}

type PostUsecase interface {
	GetDetail(ctx context.Context, id int64) (PostView, error)
}
