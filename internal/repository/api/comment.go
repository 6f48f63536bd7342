package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Guyuepp/go-community-client/domain"
	"github.com/Guyuepp/go-community-client/internal/repository/api/model"
)

type commentRepository struct {
	client *Client
}

var _ domain.CommentAPI = (*commentRepository)(nil)

func NewCommentRepository(client *Client) *commentRepository {
	return &commentRepository{client: client}
}

func (r *commentRepository) ListByPost(ctx context.Context, postID int64) ([]domain.FlatComment, error) {
	var res model.CommentList
	if err := r.client.do(ctx, http.MethodGet, fmt.Sprintf("/posts/%d/comments", postID), nil, nil, &res); err != nil {
		return nil, err
	}
	return res.ToDomain(), nil
}

func (r *commentRepository) Create(ctx context.Context, in domain.NewComment) (domain.FlatComment, error) {
	var res model.CommentEnvelope
	path := fmt.Sprintf("/posts/%d/comments", in.PostID)
	if err := r.client.do(ctx, http.MethodPost, path, nil, model.NewCommentRequestFromDomain(in), &res); err != nil {
		return domain.FlatComment{}, err
	}
	return res.Comment.ToDomain(), nil
}

func (r *commentRepository) Update(ctx context.Context, in domain.CommentEdit) (domain.FlatComment, error) {
	var res model.CommentEnvelope
	path := fmt.Sprintf("/comments/%d", in.ID)
	if err := r.client.do(ctx, http.MethodPut, path, nil, model.CommentRequest{Body: in.Body}, &res); err != nil {
		return domain.FlatComment{}, err
	}
	return res.Comment.ToDomain(), nil
}

func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	return r.client.do(ctx, http.MethodDelete, fmt.Sprintf("/comments/%d", id), nil, nil, nil)
}
