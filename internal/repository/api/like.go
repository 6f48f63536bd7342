package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Guyuepp/go-community-client/domain"
	"github.com/Guyuepp/go-community-client/internal/repository/api/model"
)

type likeRepository struct {
	client *Client
}

var _ domain.LikeAPI = (*likeRepository)(nil)

func NewLikeRepository(client *Client) *likeRepository {
	return &likeRepository{client: client}
}

func (r *likeRepository) Like(ctx context.Context, postID int64) error {
	return r.client.do(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/like", postID), nil, nil, nil)
}

func (r *likeRepository) Unlike(ctx context.Context, postID int64) error {
	return r.client.do(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/unlike", postID), nil, nil, nil)
}

func (r *likeRepository) LikeStatus(ctx context.Context, postID int64) (domain.LikeStatus, error) {
	var res model.LikeStatusResponse
	if err := r.client.do(ctx, http.MethodGet, fmt.Sprintf("/posts/%d/like-status", postID), nil, nil, &res); err != nil {
		return domain.LikeStatus{}, err
	}
	return res.ToDomain(), nil
}
