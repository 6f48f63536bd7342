package session

import (
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Guyuepp/go-community-client/domain"
	"github.com/Guyuepp/go-community-client/internal/repository"
	"github.com/Guyuepp/go-community-client/internal/repository/api"
	"github.com/Guyuepp/go-community-client/internal/repository/cache"
	myRedisCache "github.com/Guyuepp/go-community-client/internal/repository/redis"
	"github.com/Guyuepp/go-community-client/internal/usecase/comment"
	"github.com/Guyuepp/go-community-client/internal/usecase/feed"
	"github.com/Guyuepp/go-community-client/internal/usecase/interaction"
	"github.com/Guyuepp/go-community-client/internal/usecase/post"
	"github.com/Guyuepp/go-community-client/internal/usecase/user"
)

// Dependencies are shared by every session.
type Dependencies struct {
	BaseURL    string
	HTTPClient *http.Client
	// Redis switches the session caches from process memory to redis when set
	Redis  *redis.Client
	Worker domain.LikeStatusWorker
}

// Build wires the repositories and usecases of one session.
func (d Dependencies) Build(id, token string) *Session {
	client := api.NewClient(d.BaseURL, token, d.HTTPClient)
	authRepo := api.NewAuthRepository(client)

	feedCache := newCache[domain.FeedBundle](d, id, domain.FeedCacheTTL)
	statsCache := newCache[domain.FeedStats](d, id, domain.StatsCacheTTL)
	postCache := newCache[domain.PostDetail](d, id, domain.FeedCacheTTL)
	commentCache := newCache[[]domain.FlatComment](d, id, domain.FeedCacheTTL)
	profileCache := newCache[domain.Profile](d, id, domain.UserCacheTTL)

	coordinator := repository.NewCoordinator(feedCache, statsCache, postCache, commentCache, profileCache)

	store := interaction.NewStore(api.NewLikeRepository(client), coordinator, d.Worker)
	comments := comment.NewService(api.NewCommentRepository(client), commentCache, store, coordinator)

	return &Session{
		ID:           id,
		Feed:         feed.NewService(api.NewFeedRepository(client), authRepo, store, feedCache, statsCache),
		Posts:        post.NewService(api.NewPostRepository(client), authRepo, comments, store, postCache),
		Comments:     comments,
		Interactions: store,
		Users:        user.NewService(api.NewUserRepository(client), profileCache, coordinator),
		Coordinator:  coordinator,
	}
}

func newCache[V any](d Dependencies, id string, ttl time.Duration) domain.Cache[V] {
	if d.Redis != nil {
		return myRedisCache.NewCache[V](d.Redis, id, ttl)
	}
	return cache.NewTTL[V](ttl)
}
