package domain

import (
	"context"
	"time"
)

// FlatComment is a comment as the API returns it, replies reference their parent by id.
type FlatComment struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	PostID    int64     `json:"post_id"`
	ParentID  *int64    `json:"parent_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Commenter 评论作者信息, API 为了性能可能省略
	Commenter *UserSummary `json:"commenter,omitempty"`
}

// CommentNode is a comment placed in its thread.
type CommentNode struct {
	ID        int64       `json:"id"`
	UserID    int64       `json:"user_id"`
	PostID    int64       `json:"post_id"`
	ParentID  *int64      `json:"parent_id"`
	Body      string      `json:"body"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	Commenter UserSummary `json:"commenter"`

	// Replies 子评论列表, oldest first
	Replies []*CommentNode `json:"replies"`
}

// TreeContext carries the identities the tree builder may fall back to.
type TreeContext struct {
	SessionUser *UserSummary
	PostAuthor  UserSummary
}

// NewComment is the input of a comment creation.
type NewComment struct {
	PostID   int64  `json:"post_id" validate:"required,gt=0"`
	ParentID *int64 `json:"parent_id" validate:"omitempty,gt=0"`
	Body     string `json:"body" validate:"required,max=2000"`
}

// CommentEdit is the input of a comment edit.
type CommentEdit struct {
	ID   int64  `json:"id" validate:"required,gt=0"`
	Body string `json:"body" validate:"required,max=2000"`
}

// CommentAPI is the remote comment contract.
type CommentAPI interface {
	ListByPost(ctx context.Context, postID int64) ([]FlatComment, error)
	Create(ctx context.Context, in NewComment) (FlatComment, error)
	Update(ctx context.Context, in CommentEdit) (FlatComment, error)
	Delete(ctx context.Context, id int64) error
}

// CommentUsecase 业务逻辑接口
type CommentUsecase interface {
	Thread(ctx context.Context, postID int64, tc TreeContext) ([]*CommentNode, error)
	Create(ctx context.Context, in NewComment) (FlatComment, error)
	Edit(ctx context.Context, postID int64, in CommentEdit) (FlatComment, error)
	Delete(ctx context.Context, postID, commentID int64) error
}
