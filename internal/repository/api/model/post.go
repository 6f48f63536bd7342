package model

import (
	"encoding/json"
	"time"

	"github.com/Guyuepp/go-community-client/domain"
)

type Post struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	UserID       int64     `json:"userId"`
	Author       *User     `json:"author"`
	Tags         []string  `json:"tags"`
	LikeCount    int       `json:"likeCount"`
	CommentCount int       `json:"commentCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Comments 为 nil 表示响应里没有内嵌评论
	Comments *CommentList `json:"comments"`
}

func (m *Post) ToDomain() domain.PostSummary {
	p := domain.PostSummary{
		ID:           m.ID,
		Title:        m.Title,
		Body:         m.Body,
		Tags:         m.Tags,
		LikeCount:    max(m.LikeCount, 0),
		CommentCount: max(m.CommentCount, 0),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Author != nil {
		p.Author = m.Author.ToDomain()
	} else {
		p.Author = domain.PlaceholderUser(m.UserID)
	}
	return p
}

func (m *Post) ToDetail() domain.PostDetail {
	d := domain.PostDetail{PostSummary: m.ToDomain()}
	if m.Comments != nil {
		d.Comments = m.Comments.ToDomain()
		d.CommentsIncluded = true
	}
	return d
}

// PostEnvelope accepts {"post": {...}} as well as a bare post.
type PostEnvelope struct {
	Post Post
}

func (e *PostEnvelope) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(objectPayload(data, "post"), &e.Post)
}

// PostList is a list of posts in any of the shapes the API uses.
type PostList []Post

func (l *PostList) UnmarshalJSON(data []byte) error {
	raw, err := listPayload(data, "posts", "items")
	if err != nil {
		return err
	}
	if raw == nil {
		*l = nil
		return nil
	}
	var items []Post
	if err := json.Unmarshal(raw, &items); err != nil {
		return err
	}
	*l = items
	return nil
}

func (l PostList) ToDomain() []domain.PostSummary {
	res := make([]domain.PostSummary, 0, len(l))
	for i := range l {
		res = append(res, l[i].ToDomain())
	}
	return res
}
