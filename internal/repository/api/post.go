package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Guyuepp/go-community-client/domain"
	"github.com/Guyuepp/go-community-client/internal/repository/api/model"
)

type postRepository struct {
	client *Client
}

var _ domain.PostAPI = (*postRepository)(nil)

func NewPostRepository(client *Client) *postRepository {
	return &postRepository{client: client}
}

func (r *postRepository) GetPost(ctx context.Context, id int64) (domain.PostDetail, error) {
	var res model.PostEnvelope
	if err := r.client.do(ctx, http.MethodGet, fmt.Sprintf("/posts/%d", id), nil, nil, &res); err != nil {
		return domain.PostDetail{}, err
	}
	if res.Post.ID == 0 {
		return domain.PostDetail{}, domain.ErrNotFound
	}
	return res.Post.ToDetail(), nil
}
