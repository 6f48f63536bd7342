package request

import "github.com/Guyuepp/go-community-client/domain"

type Comment struct {
	Body     string `json:"body" binding:"required"`
	ParentID *int64 `json:"parent_id"` // for CREATE
	PostID   int64  `json:"post_id"`   // for EDIT
}

// ToNewComment: Request -> Domain
func (r *Comment) ToNewComment(postID int64) domain.NewComment {
	return domain.NewComment{
		PostID:   postID,
		ParentID: r.ParentID,
		Body:     r.Body,
	}
}

func (r *Comment) ToEdit(id int64) domain.CommentEdit {
	return domain.CommentEdit{
		ID:   id,
		Body: r.Body,
	}
}
