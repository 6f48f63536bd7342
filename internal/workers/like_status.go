package workers

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Guyuepp/go-community-client/domain"
)

const (
	defaultQueueSize   = 1024
	defaultBatchSize   = 100
	defaultInterval    = time.Second
	defaultParallelism = 8
	fetchTimeout       = 5 * time.Second
)

type StatusTask struct {
	Store  domain.LikeStatusFetcher
	PostID int64
}

type likeStatusWorker struct {
	ch          chan StatusTask
	interval    time.Duration
	batchSize   int
	parallelism int
}

var _ domain.LikeStatusWorker = (*likeStatusWorker)(nil)

// NewLikeStatusWorker creates the worker that reconciles freshly mounted posts with the
// server in the background.
func NewLikeStatusWorker(queueSize, parallelism int, interval time.Duration) *likeStatusWorker {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	if parallelism <= 0 {
		parallelism = defaultParallelism
	}
	if interval <= 0 {
		interval = defaultInterval
	}
	return &likeStatusWorker{
		ch:          make(chan StatusTask, queueSize),
		interval:    interval,
		batchSize:   defaultBatchSize,
		parallelism: parallelism,
	}
}

// Send queues a status fetch, the task is dropped when the queue is full
func (w *likeStatusWorker) Send(store domain.LikeStatusFetcher, postID int64) bool {
	select {
	case w.ch <- StatusTask{Store: store, PostID: postID}:
		return true
	default:
		logrus.Warnf("like status queue is full, post %d dropped", postID)
		return false
	}
}

func (w *likeStatusWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	batch := make([]StatusTask, 0, w.batchSize)
	for {
		select {
		case task := <-w.ch:
			batch = append(batch, task)
			if len(batch) == w.batchSize {
				w.flush(ctx, batch)
				batch = make([]StatusTask, 0, w.batchSize)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				w.flush(ctx, batch)
				batch = make([]StatusTask, 0, w.batchSize)
			}
		case <-ctx.Done():
			logrus.Infof("shutting down like status worker, %d queued tasks skipped", len(batch)+len(w.ch))
			return
		}
	}
}

func (w *likeStatusWorker) flush(ctx context.Context, batch []StatusTask) {
	seen := make(map[StatusTask]struct{}, len(batch))

	var g errgroup.Group
	g.SetLimit(w.parallelism)
	for _, task := range batch {
		if _, ok := seen[task]; ok {
			continue
		}
		seen[task] = struct{}{}

		g.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
			defer cancel()
			if _, err := task.Store.FetchLikeStatus(fetchCtx, task.PostID); err != nil {
				logrus.Warnf("like status of post %d: %v", task.PostID, err)
			}
			return nil
		})
	}
	_ = g.Wait()
}
