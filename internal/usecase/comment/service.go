package comment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/go-community-client/domain"
)

type service struct {
	commentAPI domain.CommentAPI
	cache      domain.Cache[[]domain.FlatComment]
	counter    domain.CommentCounter
	observer   domain.MutationObserver
	validate   *validator.Validate
}

var _ domain.CommentUsecase = (*service)(nil)

func NewService(api domain.CommentAPI, cache domain.Cache[[]domain.FlatComment], counter domain.CommentCounter, observer domain.MutationObserver) *service {
	return &service{
		commentAPI: api,
		cache:      cache,
		counter:    counter,
		observer:   observer,
		validate:   validator.New(),
	}
}

// Thread 获取帖子评论并组装成树
func (s *service) Thread(ctx context.Context, postID int64, tc domain.TreeContext) ([]*domain.CommentNode, error) {
	if postID <= 0 {
		return nil, domain.ErrBadParamInput
	}
	flat, err := s.list(ctx, postID)
	if err != nil {
		return nil, err
	}
	return Organize(flat, tc), nil
}

func (s *service) list(ctx context.Context, postID int64) ([]domain.FlatComment, error) {
	key := domain.PostCommentsKey(postID)
	flat, err := s.cache.Get(ctx, key)
	if err == nil {
		return flat, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		logrus.Warnf("comment cache get %s: %v", key, err)
	}

	flat, err = s.commentAPI.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, flat); err != nil {
		logrus.Warnf("comment cache set %s: %v", key, err)
	}
	return flat, nil
}

func (s *service) Create(ctx context.Context, in domain.NewComment) (domain.FlatComment, error) {
	in.Body = strings.TrimSpace(in.Body)
	if err := s.validate.Struct(in); err != nil {
		return domain.FlatComment{}, fmt.Errorf("%w: %v", domain.ErrBadParamInput, err)
	}

	created, err := s.commentAPI.Create(ctx, in)
	if err != nil {
		return domain.FlatComment{}, err
	}
	s.counter.AdjustCommentCount(in.PostID, 1)
	s.observer.AfterMutation(ctx, domain.MutationCommentCreate)
	return created, nil
}

func (s *service) Edit(ctx context.Context, postID int64, in domain.CommentEdit) (domain.FlatComment, error) {
	in.Body = strings.TrimSpace(in.Body)
	if err := s.validate.Struct(in); err != nil {
		return domain.FlatComment{}, fmt.Errorf("%w: %v", domain.ErrBadParamInput, err)
	}
	if postID <= 0 {
		return domain.FlatComment{}, domain.ErrBadParamInput
	}

	updated, err := s.commentAPI.Update(ctx, in)
	if err != nil {
		return domain.FlatComment{}, err
	}
	s.observer.AfterMutation(ctx, domain.MutationCommentEdit)
	return updated, nil
}

func (s *service) Delete(ctx context.Context, postID, commentID int64) error {
	if postID <= 0 || commentID <= 0 {
		return domain.ErrBadParamInput
	}
	if err := s.commentAPI.Delete(ctx, commentID); err != nil {
		return err
	}
	s.counter.AdjustCommentCount(postID, -1)
	s.observer.AfterMutation(ctx, domain.MutationCommentDelete)
	return nil
}
