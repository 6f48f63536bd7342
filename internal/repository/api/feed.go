package api

import (
	"context"
	"net/http"

	"github.com/Guyuepp/go-community-client/domain"
	"github.com/Guyuepp/go-community-client/internal/repository/api/model"
)

type feedRepository struct {
	client *Client
}

var _ domain.FeedAPI = (*feedRepository)(nil)

func NewFeedRepository(client *Client) *feedRepository {
	return &feedRepository{client: client}
}

func (r *feedRepository) FetchBatch(ctx context.Context, page, pageSize int) (domain.BatchFeed, error) {
	var res model.BatchFeedResponse
	if err := r.client.do(ctx, http.MethodGet, "/feed/batch", pageQuery(page, pageSize), nil, &res); err != nil {
		return domain.BatchFeed{}, err
	}
	return res.ToDomain(page, pageSize), nil
}

func (r *feedRepository) FetchAll(ctx context.Context, page, pageSize int) (domain.FeedPage, error) {
	return r.fetchPage(ctx, "/feed/all", page, pageSize)
}

func (r *feedRepository) FetchSimilar(ctx context.Context, page, pageSize int) (domain.FeedPage, error) {
	return r.fetchPage(ctx, "/feed/similar", page, pageSize)
}

func (r *feedRepository) fetchPage(ctx context.Context, path string, page, pageSize int) (domain.FeedPage, error) {
	var res model.FeedPageResponse
	if err := r.client.do(ctx, http.MethodGet, path, pageQuery(page, pageSize), nil, &res); err != nil {
		return domain.FeedPage{}, err
	}
	return res.ToDomain(page, pageSize), nil
}

func (r *feedRepository) FetchStats(ctx context.Context) (domain.FeedStats, error) {
	var res model.StatsEnvelope
	if err := r.client.do(ctx, http.MethodGet, "/feed/stats", nil, nil, &res); err != nil {
		return domain.FeedStats{}, err
	}
	return res.Stats.ToDomain(), nil
}
