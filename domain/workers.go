package domain

import "context"

type LikeAction int8

const (
	Like   LikeAction = 1
	Unlike LikeAction = -1
)

func (l LikeAction) String() string {
	switch l {
	case Like:
		return "LIKE"
	case Unlike:
		return "UNLIKE"
	default:
		return "UNKNOWN"
	}
}

// LikeStatusFetcher reconciles one post's like state with the server.
type LikeStatusFetcher interface {
	FetchLikeStatus(ctx context.Context, postID int64) (InteractionState, error)
}

type LikeStatusWorker interface {
	Start(ctx context.Context)

	// Send queues a status fetch for postID on the given store, never blocks.
	// It reports false when the task was dropped.
	Send(store LikeStatusFetcher, postID int64) bool
}
