package feed

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/Guyuepp/go-community-client/domain"
)

type Service struct {
	feedAPI      domain.FeedAPI
	authAPI      domain.AuthAPI
	interactions domain.InteractionUsecase
	feedCache    domain.Cache[domain.FeedBundle]
	statsCache   domain.Cache[domain.FeedStats]
	group        singleflight.Group
}

var _ domain.FeedUsecase = (*Service)(nil)

// NewService will create a new feed loader
func NewService(f domain.FeedAPI, a domain.AuthAPI, i domain.InteractionUsecase, feedCache domain.Cache[domain.FeedBundle], statsCache domain.Cache[domain.FeedStats]) *Service {
	return &Service{
		feedAPI:      f,
		authAPI:      a,
		interactions: i,
		feedCache:    feedCache,
		statsCache:   statsCache,
	}
}

// LoadFeed returns both feed collections of one page. Identical concurrent loads share a
// single upstream round trip.
func (s *Service) LoadFeed(ctx context.Context, page, pageSize int, tab domain.Tab) (domain.FeedBundle, error) {
	page, pageSize = domain.ClampPage(page, pageSize)

	status, err := s.authAPI.Status(ctx)
	if err != nil {
		return domain.FeedBundle{}, err
	}
	if !status.Authenticated {
		return domain.FeedBundle{}, domain.ErrUnauthenticated
	}

	key := domain.BatchFeedKey(page, pageSize)
	bundle, err := s.feedCache.Get(ctx, key)
	if err == nil {
		bundle.ActiveTab = tab
		return s.mount(bundle), nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		logrus.Warnf("feed cache get %s: %v", key, err)
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.load(ctx, key, page, pageSize)
	})
	if err != nil {
		return domain.FeedBundle{}, err
	}
	bundle = v.(domain.FeedBundle)
	bundle.ActiveTab = tab
	return s.mount(bundle), nil
}

// mount seeds the interaction state of every card and renders the cards with the shared
// counts, so a card shows what the detail view of the same post shows.
func (s *Service) mount(bundle domain.FeedBundle) domain.FeedBundle {
	bundle.AllPosts = s.mountPosts(bundle.AllPosts)
	bundle.SimilarPosts = s.mountPosts(bundle.SimilarPosts)
	return bundle
}

func (s *Service) mountPosts(posts []domain.PostSummary) []domain.PostSummary {
	// 拷贝一份, 缓存里的切片不能改
	res := make([]domain.PostSummary, len(posts))
	for i, p := range posts {
		p.LikeCount = s.interactions.Mount(p.ID, p.LikeCount).LikeCount
		p.CommentCount = s.interactions.SeedCommentCount(p.ID, p.CommentCount)
		res[i] = p
	}
	return res
}

func (s *Service) load(ctx context.Context, key string, page, pageSize int) (domain.FeedBundle, error) {
	batch, err := s.feedAPI.FetchBatch(ctx, page, pageSize)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return domain.FeedBundle{}, err
		}
		logrus.Warnf("batch feed page %d failed, falling back to single endpoints: %v", page, err)
		return s.loadDegraded(ctx, page, pageSize)
	}

	bundle := domain.FeedBundle{
		AllPosts:          nonNil(batch.AllPosts),
		SimilarPosts:      nonNil(batch.SimilarPosts),
		AllPagination:     batch.AllPagination.Normalize(),
		SimilarPagination: batch.SimilarPagination.Normalize(),
		Stats:             batch.Stats,
		Message:           batch.Message,
	}
	if err := s.feedCache.Set(ctx, key, bundle); err != nil {
		logrus.Warnf("feed cache set %s: %v", key, err)
	}
	return bundle, nil
}

// loadDegraded fans out to the single endpoints and waits for all of them. Each collection
// fails on its own into an empty list, even when both fail. The result is not cached so the
// next load retries the batch endpoint.
func (s *Service) loadDegraded(ctx context.Context, page, pageSize int) (domain.FeedBundle, error) {
	var (
		g                             errgroup.Group
		all, similar                  domain.FeedPage
		stats                         domain.FeedStats
		allErr, similarErr, statsErr error
	)
	g.Go(func() error {
		all, allErr = s.feedAPI.FetchAll(ctx, page, pageSize)
		return nil
	})
	g.Go(func() error {
		similar, similarErr = s.feedAPI.FetchSimilar(ctx, page, pageSize)
		return nil
	})
	g.Go(func() error {
		stats, statsErr = s.stats(ctx)
		return nil
	})
	_ = g.Wait()

	for _, err := range []error{allErr, similarErr, statsErr} {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return domain.FeedBundle{}, err
		}
	}
	bundle := domain.FeedBundle{Degraded: true, Stats: stats}
	if allErr != nil {
		logrus.Warnf("all feed page %d failed: %v", page, allErr)
		bundle.AllPosts = []domain.PostSummary{}
		bundle.AllPagination = domain.EmptyPagination(page, pageSize)
	} else {
		bundle.AllPosts = nonNil(all.Posts)
		bundle.AllPagination = all.Pagination.Normalize()
		bundle.Message = all.Message
	}
	if similarErr != nil {
		logrus.Warnf("similar feed page %d failed: %v", page, similarErr)
		bundle.SimilarPosts = []domain.PostSummary{}
		bundle.SimilarPagination = domain.EmptyPagination(page, pageSize)
		bundle.Message = domain.SimilarFeedFallbackMessage
	} else {
		bundle.SimilarPosts = nonNil(similar.Posts)
		bundle.SimilarPagination = similar.Pagination.Normalize()
		if similar.Message != "" {
			bundle.Message = similar.Message
		}
	}
	if statsErr != nil {
		logrus.Warnf("feed stats failed: %v", statsErr)
	}
	return bundle, nil
}

// stats reads through its own cache, stats change slower than the feed.
func (s *Service) stats(ctx context.Context) (domain.FeedStats, error) {
	stats, err := s.statsCache.Get(ctx, domain.KeyFeedStats)
	if err == nil {
		return stats, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		logrus.Warnf("stats cache get: %v", err)
	}

	stats, err = s.feedAPI.FetchStats(ctx)
	if err != nil {
		return domain.FeedStats{}, err
	}
	if err := s.statsCache.Set(ctx, domain.KeyFeedStats, stats); err != nil {
		logrus.Warnf("stats cache set: %v", err)
	}
	return stats, nil
}

func nonNil(posts []domain.PostSummary) []domain.PostSummary {
	if posts == nil {
		return []domain.PostSummary{}
	}
	return posts
}
