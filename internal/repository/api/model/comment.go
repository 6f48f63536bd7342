package model

import (
	"encoding/json"
	"time"

	"github.com/Guyuepp/go-community-client/domain"
)

type Comment struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	PostID    int64     `json:"postId"`
	ParentID  *int64    `json:"parentId"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// 部分部署把作者放在 user 字段
	Commenter *User `json:"commenter"`
	User      *User `json:"user"`
}

func (m *Comment) ToDomain() domain.FlatComment {
	c := domain.FlatComment{
		ID:        m.ID,
		UserID:    m.UserID,
		PostID:    m.PostID,
		ParentID:  m.ParentID,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if c.ParentID != nil && *c.ParentID == 0 {
		c.ParentID = nil
	}

	author := m.Commenter
	if author == nil {
		author = m.User
	}
	if author != nil {
		u := author.ToDomain()
		c.Commenter = &u
	}
	return c
}

// CommentList is a list of comments in any of the shapes the API uses.
type CommentList []Comment

func (l *CommentList) UnmarshalJSON(data []byte) error {
	raw, err := listPayload(data, "comments", "items")
	if err != nil {
		return err
	}
	if raw == nil {
		*l = nil
		return nil
	}
	var items []Comment
	if err := json.Unmarshal(raw, &items); err != nil {
		return err
	}
	*l = items
	return nil
}

func (l CommentList) ToDomain() []domain.FlatComment {
	res := make([]domain.FlatComment, 0, len(l))
	for i := range l {
		res = append(res, l[i].ToDomain())
	}
	return res
}

type CommentEnvelope struct {
	Comment Comment `json:"comment"`
}

type CommentRequest struct {
	PostID   int64  `json:"postId,omitempty"`
	ParentID *int64 `json:"parentId,omitempty"`
	Body     string `json:"body"`
}

func NewCommentRequestFromDomain(in domain.NewComment) CommentRequest {
	return CommentRequest{
		PostID:   in.PostID,
		ParentID: in.ParentID,
		Body:     in.Body,
	}
}
