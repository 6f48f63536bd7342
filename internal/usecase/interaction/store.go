package interaction

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/go-community-client/domain"
)

type postState struct {
	state domain.InteractionState
	// seq moves on every user action and explicit write, a status fetch that started
	// before the move is discarded
	seq      uint64
	inflight int
	// pending 首次状态查询还没返回
	pending bool
}

// must hold s.mu
func (st *postState) syncLoading() {
	st.state.IsLoading = st.inflight > 0 || st.pending
}

// Store is the per session like and comment-count state, shared by every view of a post.
type Store struct {
	likes    domain.LikeAPI
	observer domain.MutationObserver
	worker   domain.LikeStatusWorker

	mu       sync.Mutex
	posts    map[int64]*postState
	comments map[int64]int
	watchers map[int64]map[uint64]func(domain.InteractionState)
	nextID   uint64
}

var (
	_ domain.InteractionUsecase = (*Store)(nil)
	_ domain.LikeStatusFetcher  = (*Store)(nil)
)

// NewStore creates an empty store. worker may be nil, mounted posts are then only
// reconciled by explicit FetchLikeStatus calls.
func NewStore(likes domain.LikeAPI, observer domain.MutationObserver, worker domain.LikeStatusWorker) *Store {
	return &Store{
		likes:    likes,
		observer: observer,
		worker:   worker,
		posts:    make(map[int64]*postState),
		comments: make(map[int64]int),
		watchers: make(map[int64]map[uint64]func(domain.InteractionState)),
	}
}

// must hold s.mu
func (s *Store) entry(postID int64) *postState {
	st, ok := s.posts[postID]
	if !ok {
		st = &postState{}
		s.posts[postID] = st
	}
	return st
}

// Mount seeds a not-liked state with the server count the first time a post is seen and
// queues a status fetch for it. The state reports IsLoading until that fetch lands.
func (s *Store) Mount(postID int64, serverCount int) domain.InteractionState {
	s.mu.Lock()
	if st, ok := s.posts[postID]; ok {
		state := st.state
		s.mu.Unlock()
		return state
	}
	st := s.entry(postID)
	st.state = domain.InteractionState{LikeCount: max(serverCount, 0)}
	st.pending = s.worker != nil
	st.syncLoading()
	state := st.state
	fns := s.watchersOf(postID)
	s.mu.Unlock()

	notify(fns, state)
	if s.worker == nil || s.worker.Send(s, postID) {
		return state
	}

	// queue full, nothing will answer
	s.mu.Lock()
	st.pending = false
	st.syncLoading()
	state = st.state
	fns = s.watchersOf(postID)
	s.mu.Unlock()

	notify(fns, state)
	return state
}

func (s *Store) State(postID int64) (domain.InteractionState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.posts[postID]
	if !ok {
		return domain.InteractionState{}, false
	}
	return st.state, true
}

// SetLikeState replaces the like state, e.g. to restore LikeMutationError.Previous.
func (s *Store) SetLikeState(postID int64, isLiked bool, count int) domain.InteractionState {
	s.mu.Lock()
	st := s.entry(postID)
	st.seq++
	st.pending = false
	st.state.IsLiked = isLiked
	st.state.LikeCount = max(count, 0)
	st.syncLoading()
	state := st.state
	fns := s.watchersOf(postID)
	s.mu.Unlock()

	notify(fns, state)
	return state
}

// FetchLikeStatus reconciles the post with the server. The answer is dropped when a user
// action or explicit write happened while it was in flight, and no fetch is made while a
// like request is pending since the server may not have applied it yet.
func (s *Store) FetchLikeStatus(ctx context.Context, postID int64) (domain.InteractionState, error) {
	s.mu.Lock()
	var seq uint64
	if st, ok := s.posts[postID]; ok {
		if st.inflight > 0 {
			state := st.state
			s.mu.Unlock()
			return state, nil
		}
		seq = st.seq
	}
	s.mu.Unlock()

	status, err := s.likes.LikeStatus(ctx, postID)

	s.mu.Lock()
	st, known := s.posts[postID]
	if known && (st.seq != seq || st.inflight > 0) {
		state := st.state
		s.mu.Unlock()
		logrus.Debugf("discarding stale like status of post %d", postID)
		return state, nil
	}
	if err != nil {
		if !known {
			s.mu.Unlock()
			return domain.InteractionState{}, err
		}
		st.pending = false
		st.syncLoading()
		state := st.state
		fns := s.watchersOf(postID)
		s.mu.Unlock()

		notify(fns, state)
		return state, err
	}
	st = s.entry(postID)
	st.pending = false
	st.state.IsLiked = status.IsLiked
	st.state.LikeCount = max(status.LikeCount, 0)
	st.syncLoading()
	state := st.state
	fns := s.watchersOf(postID)
	s.mu.Unlock()

	notify(fns, state)
	return state, nil
}

// ToggleLike flips the like optimistically and confirms it with the API. On failure the
// optimistic state is kept and a *domain.LikeMutationError carries the state before the
// action.
func (s *Store) ToggleLike(ctx context.Context, postID int64) (domain.InteractionState, error) {
	// a post no view has seeded needs the server count first, counting from 0 would stick
	s.mu.Lock()
	_, known := s.posts[postID]
	s.mu.Unlock()
	if !known {
		if _, err := s.FetchLikeStatus(ctx, postID); err != nil {
			return domain.InteractionState{}, fmt.Errorf("like status of post %d: %w", postID, err)
		}
	}

	s.mu.Lock()
	st := s.entry(postID)
	previous := st.state
	previous.IsLoading = st.inflight > 0
	action := domain.Like
	if previous.IsLiked {
		action = domain.Unlike
	}
	st.seq++
	st.inflight++
	st.pending = false
	st.state.IsLiked = !previous.IsLiked
	st.state.LikeCount = max(previous.LikeCount+int(action), 0)
	st.state.IsLoading = true
	optimistic := st.state
	fns := s.watchersOf(postID)
	s.mu.Unlock()

	notify(fns, optimistic)

	var err error
	if action == domain.Like {
		err = s.likes.Like(ctx, postID)
	} else {
		err = s.likes.Unlike(ctx, postID)
	}

	s.mu.Lock()
	st = s.entry(postID)
	st.inflight = max(st.inflight-1, 0)
	st.syncLoading()
	state := st.state
	fns = s.watchersOf(postID)
	s.mu.Unlock()

	notify(fns, state)

	if err != nil {
		return state, &domain.LikeMutationError{
			PostID:   postID,
			Action:   action,
			Previous: previous,
			Err:      err,
		}
	}

	mutation := domain.MutationLike
	if action == domain.Unlike {
		mutation = domain.MutationUnlike
	}
	s.observer.AfterMutation(ctx, mutation)
	return state, nil
}

func (s *Store) SetCommentCount(postID int64, count int) {
	s.mu.Lock()
	s.comments[postID] = max(count, 0)
	s.mu.Unlock()
}

func (s *Store) SeedCommentCount(postID int64, count int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.comments[postID]; ok {
		return current
	}
	s.comments[postID] = max(count, 0)
	return s.comments[postID]
}

// AdjustCommentCount moves a known count by delta. An unknown count stays unknown so the
// next seed still takes the server value, which already includes the change.
func (s *Store) AdjustCommentCount(postID int64, delta int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.comments[postID]
	if !ok {
		return 0, false
	}
	count := max(current+delta, 0)
	s.comments[postID] = count
	return count, true
}

func (s *Store) CommentCount(postID int64) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count, ok := s.comments[postID]
	return count, ok
}

// Watch registers fn for every like change of postID until cancel is called.
func (s *Store) Watch(postID int64, fn func(domain.InteractionState)) (cancel func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	if s.watchers[postID] == nil {
		s.watchers[postID] = make(map[uint64]func(domain.InteractionState))
	}
	s.watchers[postID][id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.watchers[postID], id)
			if len(s.watchers[postID]) == 0 {
				delete(s.watchers, postID)
			}
			s.mu.Unlock()
		})
	}
}

// Reset forgets every post, watchers stay registered.
func (s *Store) Reset() {
	s.mu.Lock()
	s.posts = make(map[int64]*postState)
	s.comments = make(map[int64]int)
	s.mu.Unlock()
}

// must hold s.mu
func (s *Store) watchersOf(postID int64) []func(domain.InteractionState) {
	ws := s.watchers[postID]
	if len(ws) == 0 {
		return nil
	}
	fns := make([]func(domain.InteractionState), 0, len(ws))
	for _, fn := range ws {
		fns = append(fns, fn)
	}
	return fns
}

func notify(fns []func(domain.InteractionState), state domain.InteractionState) {
	for _, fn := range fns {
		fn(state)
	}
}
