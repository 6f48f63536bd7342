package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/go-community-client/domain"
	"github.com/Guyuepp/go-community-client/internal/repository"
	"github.com/Guyuepp/go-community-client/internal/repository/cache"
)

// Session is the data layer of one browser session.
type Session struct {
	ID           string
	Feed         domain.FeedUsecase
	Posts        domain.PostUsecase
	Comments     domain.CommentUsecase
	Interactions domain.InteractionUsecase
	Users        domain.UserUsecase
	Coordinator  *repository.Coordinator
}

// BuildFunc creates the data layer for a new session.
type BuildFunc func(id, token string) *Session

// Registry maps bearer tokens to sessions. A session is dropped after idle time without
// requests and rebuilt empty on the next one.
type Registry struct {
	mu       sync.Mutex
	sessions *cache.TTL[*Session]
	build    BuildFunc
}

func NewRegistry(idle time.Duration, build BuildFunc, opts ...cache.Option) *Registry {
	return &Registry{
		sessions: cache.NewTTL[*Session](idle, opts...),
		build:    build,
	}
}

// Key derives the session id from a token so raw tokens are never used as cache keys.
func Key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:16])
}

func (r *Registry) Get(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}
	id := Key(token)

	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.sessions.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			return nil, err
		}
		logrus.Debugf("new session %s", id)
		s = r.build(id, token)
	}
	// refresh the idle timer
	if err := r.sessions.Set(ctx, id, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Drop forgets the session of token, e.g. on logout.
func (r *Registry) Drop(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions.Invalidate(ctx, Key(token))
}

func (r *Registry) Len() int {
	return r.sessions.Len()
}

// Sweep purges expired sessions and returns how many are live.
func (r *Registry) Sweep() int {
	return len(r.sessions.Keys())
}

// RunSweeper sweeps every interval until ctx is done.
func (r *Registry) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			logrus.Debugf("%d live sessions", r.Sweep())
		case <-ctx.Done():
			return
		}
	}
}
