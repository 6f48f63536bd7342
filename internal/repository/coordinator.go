package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/go-community-client/domain"
)

// mutationPatterns 每种写操作需要失效的缓存 key 片段
var mutationPatterns = map[domain.Mutation][]string{
	domain.MutationLike:          {domain.PatternPosts, domain.PatternStats, domain.PatternBatch},
	domain.MutationUnlike:        {domain.PatternPosts, domain.PatternStats, domain.PatternBatch},
	domain.MutationCommentCreate: {domain.PatternPosts, domain.PatternComments, domain.PatternBatch},
	domain.MutationCommentEdit:   {domain.PatternPosts, domain.PatternComments, domain.PatternBatch},
	domain.MutationCommentDelete: {domain.PatternPosts, domain.PatternComments, domain.PatternBatch},
	domain.MutationProfileUpdate: {domain.PatternProfile, domain.PatternUser, domain.PatternBatch},
	domain.MutationTagsUpdate:    {domain.PatternSimilar, domain.PatternBatch, domain.PatternStats, domain.PatternProfile},
}

// PatternsFor returns the invalidation patterns of a mutation.
func PatternsFor(m domain.Mutation) []string {
	return append([]string(nil), mutationPatterns[m]...)
}

// Coordinator 协调层，把写操作翻译成对所有缓存的失效
type Coordinator struct {
	mu      sync.RWMutex
	targets []domain.Invalidator
}

var _ domain.MutationObserver = (*Coordinator)(nil)

func NewCoordinator(targets ...domain.Invalidator) *Coordinator {
	return &Coordinator{targets: targets}
}

// Register adds caches that must follow every invalidation.
func (c *Coordinator) Register(targets ...domain.Invalidator) {
	c.mu.Lock()
	c.targets = append(c.targets, targets...)
	c.mu.Unlock()
}

// Invalidate evicts every pattern from every registered cache. A failing cache does not
// stop the others.
func (c *Coordinator) Invalidate(ctx context.Context, patterns ...string) error {
	c.mu.RLock()
	targets := append([]domain.Invalidator(nil), c.targets...)
	c.mu.RUnlock()

	var errs []error
	for _, pattern := range patterns {
		for _, target := range targets {
			if err := target.Invalidate(ctx, pattern); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// AfterMutation runs the invalidation of a successful mutation. Failures are only logged,
// the mutation itself already happened.
func (c *Coordinator) AfterMutation(ctx context.Context, m domain.Mutation) {
	patterns, ok := mutationPatterns[m]
	if !ok {
		logrus.Warnf("no invalidation patterns for mutation %s", m)
		return
	}
	if err := c.Invalidate(ctx, patterns...); err != nil {
		logrus.Warnf("invalidate after %s: %v", m, err)
	}
}
