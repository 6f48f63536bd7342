package domain

import (
	"context"
	"fmt"
)

// InteractionState is the like state of one post as every view of it renders it.
type InteractionState struct {
	IsLiked   bool `json:"is_liked"`
	LikeCount int  `json:"like_count"`
	IsLoading bool `json:"is_loading"`
}

// LikeStatus is the server's view of the session user's like on a post.
type LikeStatus struct {
	IsLiked   bool
	LikeCount int
}

// LikeAPI is the remote like contract.
type LikeAPI interface {
	Like(ctx context.Context, postID int64) error
	Unlike(ctx context.Context, postID int64) error
	LikeStatus(ctx context.Context, postID int64) (LikeStatus, error)
}

// LikeMutationError is returned when a like/unlike request fails. The optimistic state
// stays in place, Previous is what the caller may restore.
type LikeMutationError struct {
	PostID   int64
	Action   LikeAction
	Previous InteractionState
	Err      error
}

func (e *LikeMutationError) Error() string {
	return fmt.Sprintf("%s post %d: %v", e.Action, e.PostID, e.Err)
}

func (e *LikeMutationError) Unwrap() error { return e.Err }

// Mutation names a user action that makes cached reads stale.
type Mutation int8

const (
	MutationLike Mutation = iota + 1
	MutationUnlike
	MutationCommentCreate
	MutationCommentEdit
	MutationCommentDelete
	MutationProfileUpdate
	MutationTagsUpdate
)

func (m Mutation) String() string {
	switch m {
	case MutationLike:
		return "like"
	case MutationUnlike:
		return "unlike"
	case MutationCommentCreate:
		return "comment-create"
	case MutationCommentEdit:
		return "comment-edit"
	case MutationCommentDelete:
		return "comment-delete"
	case MutationProfileUpdate:
		return "profile-update"
	case MutationTagsUpdate:
		return "tags-update"
	default:
		return "unknown"
	}
}

// MutationObserver is told about every successful mutation.
type MutationObserver interface {
	AfterMutation(ctx context.Context, m Mutation)
}

// CommentCounter is the part of the interaction state the comment flows write.
type CommentCounter interface {
	SetCommentCount(postID int64, count int)
	// AdjustCommentCount is a no-op returning false when the count was never seeded.
	AdjustCommentCount(postID int64, delta int) (int, bool)
}

type InteractionUsecase interface {
	CommentCounter

	Mount(postID int64, serverCount int) InteractionState
	State(postID int64) (InteractionState, bool)
	SetLikeState(postID int64, isLiked bool, count int) InteractionState
	FetchLikeStatus(ctx context.Context, postID int64) (InteractionState, error)
	ToggleLike(ctx context.Context, postID int64) (InteractionState, error)

	// SeedCommentCount stores count only when nothing is known yet and returns the current value.
	SeedCommentCount(postID int64, count int) int
	CommentCount(postID int64) (int, bool)

	// Watch calls fn with the full state after every like change of postID.
	Watch(postID int64, fn func(InteractionState)) (cancel func())
	Reset()
}
