package response

import "github.com/Guyuepp/go-community-client/domain"

type Comment struct {
	ID        int64  `json:"id"`
	PostID    int64  `json:"post_id"`
	UserID    int64  `json:"user_id"`
	Body      string `json:"body"`
	ParentID  *int64 `json:"parent_id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`

	// Commenter 评论作者信息
	Commenter *User `json:"commenter,omitempty"`
	// Replies 子评论列表
	Replies []*Comment `json:"replies,omitempty"`
}

func NewFlatCommentFromDomain(c *domain.FlatComment) *Comment {
	res := &Comment{
		ID:        c.ID,
		PostID:    c.PostID,
		UserID:    c.UserID,
		Body:      c.Body,
		ParentID:  c.ParentID,
		CreatedAt: formatTime(c.CreatedAt),
		UpdatedAt: formatTime(c.UpdatedAt),
	}
	if c.Commenter != nil {
		u := NewUserFromDomain(*c.Commenter)
		res.Commenter = &u
	}
	return res
}

// NewCommentFromDomain: Domain -> Response, replies included
func NewCommentFromDomain(n *domain.CommentNode) *Comment {
	if n == nil {
		return nil
	}
	u := NewUserFromDomain(n.Commenter)
	return &Comment{
		ID:        n.ID,
		PostID:    n.PostID,
		UserID:    n.UserID,
		Body:      n.Body,
		ParentID:  n.ParentID,
		CreatedAt: formatTime(n.CreatedAt),
		UpdatedAt: formatTime(n.UpdatedAt),
		Commenter: &u,
		Replies:   NewCommentTreeFromDomain(n.Replies),
	}
}

func NewCommentTreeFromDomain(nodes []*domain.CommentNode) []*Comment {
	res := make([]*Comment, 0, len(nodes))
	for _, n := range nodes {
		res = append(res, NewCommentFromDomain(n))
	}
	return res
}
