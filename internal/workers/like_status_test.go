package workers_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Guyuepp/go-community-client/domain"
	"github.com/Guyuepp/go-community-client/internal/workers"
)

type countingFetcher struct {
	mu    sync.Mutex
	calls map[int64]int
}

func newCountingFetcher() *countingFetcher {
	return &countingFetcher{calls: make(map[int64]int)}
}

func (f *countingFetcher) FetchLikeStatus(_ context.Context, postID int64) (domain.InteractionState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[postID]++
	return domain.InteractionState{}, nil
}

func (f *countingFetcher) count(postID int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[postID]
}

func TestLikeStatusWorker_DeduplicatesWithinBatch(t *testing.T) {
	w := workers.NewLikeStatusWorker(16, 2, 20*time.Millisecond)
	store := newCountingFetcher()
	other := newCountingFetcher()

	for range 3 {
		w.Send(store, 1)
	}
	w.Send(store, 2)
	w.Send(other, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	assert.Eventually(t, func() bool {
		return store.count(1) == 1 && store.count(2) == 1 && other.count(1) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestLikeStatusWorker_DropsWhenFull(t *testing.T) {
	w := workers.NewLikeStatusWorker(1, 1, time.Hour)
	store := newCountingFetcher()

	assert.True(t, w.Send(store, 1))
	assert.False(t, w.Send(store, 2), "queue of one is full")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
	assert.Zero(t, store.count(2))
}
