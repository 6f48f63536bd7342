package feed_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/go-community-client/domain"
	"github.com/Guyuepp/go-community-client/internal/repository/cache"
	"github.com/Guyuepp/go-community-client/internal/usecase/feed"
	"github.com/Guyuepp/go-community-client/internal/usecase/interaction"
	"github.com/Guyuepp/go-community-client/internal/usecase/mocks"
)

var loggedIn = domain.AuthStatus{Authenticated: true, User: &domain.UserSummary{ID: 1, Username: "ann"}}

type fixture struct {
	feedAPI    *mocks.FeedAPI
	authAPI    *mocks.AuthAPI
	likes      *mocks.LikeAPI
	store      *interaction.Store
	feedCache  *cache.TTL[domain.FeedBundle]
	statsCache *cache.TTL[domain.FeedStats]
	svc        *feed.Service
}

func newFixture() *fixture {
	observer := new(mocks.MutationObserver)
	observer.On("AfterMutation", mock.Anything, mock.Anything).Return()
	f := &fixture{
		feedAPI:    new(mocks.FeedAPI),
		authAPI:    new(mocks.AuthAPI),
		likes:      new(mocks.LikeAPI),
		feedCache:  cache.NewTTL[domain.FeedBundle](domain.FeedCacheTTL),
		statsCache: cache.NewTTL[domain.FeedStats](domain.StatsCacheTTL),
	}
	f.store = interaction.NewStore(f.likes, observer, nil)
	f.svc = feed.NewService(f.feedAPI, f.authAPI, f.store, f.feedCache, f.statsCache)
	return f
}

func posts(n int) []domain.PostSummary {
	res := make([]domain.PostSummary, n)
	for i := range res {
		res[i] = domain.PostSummary{ID: int64(i + 1), Title: faker.Sentence()}
	}
	return res
}

func batch() domain.BatchFeed {
	return domain.BatchFeed{
		AllPosts:          posts(3),
		SimilarPosts:      posts(1),
		AllPagination:     domain.NewPagination(1, 10, 3),
		SimilarPagination: domain.NewPagination(1, 10, 1),
		Stats:             domain.FeedStats{TotalPosts: 3, SimilarPosts: 1},
	}
}

func TestLoadFeed_BatchIsCachedAndTabOverridden(t *testing.T) {
	f := newFixture()
	f.authAPI.On("Status", mock.Anything).Return(loggedIn, nil)
	f.feedAPI.On("FetchBatch", mock.Anything, 1, 10).Return(batch(), nil).Once()

	first, err := f.svc.LoadFeed(context.Background(), 1, 10, domain.TabAll)
	require.NoError(t, err)
	assert.Equal(t, domain.TabAll, first.ActiveTab)
	assert.Len(t, first.AllPosts, 3)
	assert.False(t, first.Degraded)

	second, err := f.svc.LoadFeed(context.Background(), 1, 10, domain.TabSimilar)
	require.NoError(t, err)
	assert.Equal(t, domain.TabSimilar, second.ActiveTab)
	assert.Equal(t, first.AllPosts, second.AllPosts)

	f.feedAPI.AssertExpectations(t)
	assert.Equal(t, []string{"batch-feed-1-10"}, f.feedCache.Keys())
}

func TestLoadFeed_ClampsPageParameters(t *testing.T) {
	f := newFixture()
	f.authAPI.On("Status", mock.Anything).Return(loggedIn, nil)
	f.feedAPI.On("FetchBatch", mock.Anything, 1, 50).Return(batch(), nil)

	_, err := f.svc.LoadFeed(context.Background(), -2, 300, domain.TabAll)
	require.NoError(t, err)
	f.feedAPI.AssertExpectations(t)
}

func TestLoadFeed_Unauthenticated(t *testing.T) {
	f := newFixture()
	f.authAPI.On("Status", mock.Anything).Return(domain.AuthStatus{}, nil)

	_, err := f.svc.LoadFeed(context.Background(), 1, 10, domain.TabAll)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	f.feedAPI.AssertNotCalled(t, "FetchBatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoadFeed_PartialFailureKeepsSibling(t *testing.T) {
	f := newFixture()
	f.authAPI.On("Status", mock.Anything).Return(loggedIn, nil)
	f.feedAPI.On("FetchBatch", mock.Anything, 1, 10).Return(domain.BatchFeed{}, errors.New("batch down"))
	f.feedAPI.On("FetchAll", mock.Anything, 1, 10).Return(domain.FeedPage{
		Posts:      posts(2),
		Pagination: domain.NewPagination(1, 10, 2),
	}, nil)
	f.feedAPI.On("FetchSimilar", mock.Anything, 1, 10).Return(domain.FeedPage{}, &domain.APIError{Status: 500, Message: "no tags"})
	f.feedAPI.On("FetchStats", mock.Anything).Return(domain.FeedStats{TotalPosts: 2}, nil)

	bundle, err := f.svc.LoadFeed(context.Background(), 1, 10, domain.TabSimilar)
	require.NoError(t, err)

	assert.True(t, bundle.Degraded)
	assert.Len(t, bundle.AllPosts, 2)
	assert.Equal(t, 1, bundle.AllPagination.TotalPages)
	assert.NotNil(t, bundle.SimilarPosts)
	assert.Empty(t, bundle.SimilarPosts)
	assert.Equal(t, domain.EmptyPagination(1, 10), bundle.SimilarPagination)
	assert.Equal(t, domain.SimilarFeedFallbackMessage, bundle.Message)
	assert.Equal(t, 2, bundle.Stats.TotalPosts)
	assert.Equal(t, domain.TabSimilar, bundle.ActiveTab)

	assert.Empty(t, f.feedCache.Keys(), "degraded bundles are not cached")
	assert.Equal(t, []string{domain.KeyFeedStats}, f.statsCache.Keys())
}

func TestLoadFeed_StatsFailureIsZeroStats(t *testing.T) {
	f := newFixture()
	f.authAPI.On("Status", mock.Anything).Return(loggedIn, nil)
	f.feedAPI.On("FetchBatch", mock.Anything, 1, 10).Return(domain.BatchFeed{}, errors.New("batch down"))
	f.feedAPI.On("FetchAll", mock.Anything, 1, 10).Return(domain.FeedPage{Posts: posts(1)}, nil)
	f.feedAPI.On("FetchSimilar", mock.Anything, 1, 10).Return(domain.FeedPage{Posts: posts(1)}, nil)
	f.feedAPI.On("FetchStats", mock.Anything).Return(domain.FeedStats{}, errors.New("stats down"))

	bundle, err := f.svc.LoadFeed(context.Background(), 1, 10, domain.TabAll)
	require.NoError(t, err)
	assert.Equal(t, domain.FeedStats{}, bundle.Stats)
	assert.Empty(t, bundle.Message)
	assert.Len(t, bundle.SimilarPosts, 1)
}

func TestLoadFeed_UsesCachedStats(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.statsCache.Set(context.Background(), domain.KeyFeedStats, domain.FeedStats{TotalUsers: 8}))
	f.authAPI.On("Status", mock.Anything).Return(loggedIn, nil)
	f.feedAPI.On("FetchBatch", mock.Anything, 1, 10).Return(domain.BatchFeed{}, errors.New("batch down"))
	f.feedAPI.On("FetchAll", mock.Anything, 1, 10).Return(domain.FeedPage{}, nil)
	f.feedAPI.On("FetchSimilar", mock.Anything, 1, 10).Return(domain.FeedPage{}, nil)

	bundle, err := f.svc.LoadFeed(context.Background(), 1, 10, domain.TabAll)
	require.NoError(t, err)
	assert.Equal(t, 8, bundle.Stats.TotalUsers)
	f.feedAPI.AssertNotCalled(t, "FetchStats", mock.Anything)
}

func TestLoadFeed_BothCollectionsFail(t *testing.T) {
	f := newFixture()
	f.authAPI.On("Status", mock.Anything).Return(loggedIn, nil)
	f.feedAPI.On("FetchBatch", mock.Anything, 1, 10).Return(domain.BatchFeed{}, errors.New("batch down"))
	f.feedAPI.On("FetchAll", mock.Anything, 1, 10).Return(domain.FeedPage{}, errors.New("all down"))
	f.feedAPI.On("FetchSimilar", mock.Anything, 1, 10).Return(domain.FeedPage{}, errors.New("similar down"))
	f.feedAPI.On("FetchStats", mock.Anything).Return(domain.FeedStats{TotalPosts: 9}, nil)

	bundle, err := f.svc.LoadFeed(context.Background(), 1, 10, domain.TabAll)
	require.NoError(t, err)

	assert.True(t, bundle.Degraded)
	assert.NotNil(t, bundle.AllPosts)
	assert.Empty(t, bundle.AllPosts)
	assert.NotNil(t, bundle.SimilarPosts)
	assert.Empty(t, bundle.SimilarPosts)
	assert.Equal(t, domain.EmptyPagination(1, 10), bundle.AllPagination)
	assert.Equal(t, domain.EmptyPagination(1, 10), bundle.SimilarPagination)
	assert.Equal(t, 9, bundle.Stats.TotalPosts)
	assert.Equal(t, domain.SimilarFeedFallbackMessage, bundle.Message)
	assert.Empty(t, f.feedCache.Keys())
}

func TestLoadFeed_SeedsInteractionStateFromCards(t *testing.T) {
	f := newFixture()
	f.authAPI.On("Status", mock.Anything).Return(loggedIn, nil)
	b := batch()
	b.AllPosts[0].LikeCount = 42
	b.AllPosts[0].CommentCount = 10
	f.feedAPI.On("FetchBatch", mock.Anything, 1, 10).Return(b, nil)
	f.likes.On("Like", mock.Anything, int64(1)).Return(nil)

	_, err := f.svc.LoadFeed(context.Background(), 1, 10, domain.TabAll)
	require.NoError(t, err)

	state, ok := f.store.State(1)
	require.True(t, ok)
	assert.Equal(t, 42, state.LikeCount)
	count, ok := f.store.CommentCount(1)
	require.True(t, ok)
	assert.Equal(t, 10, count)

	liked, err := f.store.ToggleLike(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 43, liked.LikeCount)
	f.likes.AssertNotCalled(t, "LikeStatus", mock.Anything, mock.Anything)
}

func TestLoadFeed_CardsShowSharedCounts(t *testing.T) {
	f := newFixture()
	f.authAPI.On("Status", mock.Anything).Return(loggedIn, nil)
	b := batch()
	b.AllPosts[1].LikeCount = 4
	b.AllPosts[1].CommentCount = 2
	f.feedAPI.On("FetchBatch", mock.Anything, 1, 10).Return(b, nil)

	f.store.SetLikeState(2, true, 5)
	f.store.SetCommentCount(2, 3)

	bundle, err := f.svc.LoadFeed(context.Background(), 1, 10, domain.TabAll)
	require.NoError(t, err)
	assert.Equal(t, 5, bundle.AllPosts[1].LikeCount)
	assert.Equal(t, 3, bundle.AllPosts[1].CommentCount)

	cached, err := f.feedCache.Get(context.Background(), "batch-feed-1-10")
	require.NoError(t, err)
	assert.Equal(t, 4, cached.AllPosts[1].LikeCount, "the cached bundle keeps the server values")
}

func TestLoadFeed_AuthErrorOnBatchIsNotSwallowed(t *testing.T) {
	f := newFixture()
	f.authAPI.On("Status", mock.Anything).Return(loggedIn, nil)
	f.feedAPI.On("FetchBatch", mock.Anything, 1, 10).Return(domain.BatchFeed{}, &domain.APIError{Status: 401, Message: "expired"})

	_, err := f.svc.LoadFeed(context.Background(), 1, 10, domain.TabAll)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	f.feedAPI.AssertNotCalled(t, "FetchAll", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoadFeed_DegradedPathRunsConcurrently(t *testing.T) {
	f := newFixture()
	f.authAPI.On("Status", mock.Anything).Return(loggedIn, nil)
	f.feedAPI.On("FetchBatch", mock.Anything, 1, 10).Return(domain.BatchFeed{}, errors.New("batch down"))

	var wg sync.WaitGroup
	wg.Add(3)
	gate := make(chan struct{})
	go func() {
		wg.Wait()
		close(gate)
	}()
	arrive := func(mock.Arguments) {
		wg.Done()
		<-gate
	}
	f.feedAPI.On("FetchAll", mock.Anything, 1, 10).Run(arrive).Return(domain.FeedPage{}, nil)
	f.feedAPI.On("FetchSimilar", mock.Anything, 1, 10).Run(arrive).Return(domain.FeedPage{}, nil)
	f.feedAPI.On("FetchStats", mock.Anything).Run(arrive).Return(domain.FeedStats{}, nil)

	done := make(chan error, 1)
	go func() {
		_, err := f.svc.LoadFeed(context.Background(), 1, 10, domain.TabAll)
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("fallback requests did not run concurrently")
	}
}

func TestLoadFeed_CoalescesConcurrentLoads(t *testing.T) {
	f := newFixture()
	f.authAPI.On("Status", mock.Anything).Return(loggedIn, nil)
	release := make(chan struct{})
	f.feedAPI.On("FetchBatch", mock.Anything, 1, 10).
		Run(func(mock.Arguments) { <-release }).
		Return(batch(), nil).Once()

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.LoadFeed(context.Background(), 1, 10, domain.TabAll)
			assert.NoError(t, err)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	f.feedAPI.AssertNumberOfCalls(t, "FetchBatch", 1)
}
