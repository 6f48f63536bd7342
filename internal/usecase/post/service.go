package post

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/go-community-client/domain"
	"github.com/Guyuepp/go-community-client/internal/usecase/comment"
)

type Service struct {
	postAPI      domain.PostAPI
	authAPI      domain.AuthAPI
	comments     domain.CommentUsecase
	interactions domain.InteractionUsecase
	cache        domain.Cache[domain.PostDetail]
}

var _ domain.PostUsecase = (*Service)(nil)

func NewService(p domain.PostAPI, a domain.AuthAPI, c domain.CommentUsecase, i domain.InteractionUsecase, cache domain.Cache[domain.PostDetail]) *Service {
	return &Service{
		postAPI:      p,
		authAPI:      a,
		comments:     c,
		interactions: i,
		cache:        cache,
	}
}

// GetDetail loads a post with its comment thread and mounts its interaction state.
func (s *Service) GetDetail(ctx context.Context, id int64) (domain.PostView, error) {
	if id <= 0 {
		return domain.PostView{}, domain.ErrBadParamInput
	}

	detail, err := s.detail(ctx, id)
	if err != nil {
		return domain.PostView{}, err
	}

	tc := domain.TreeContext{PostAuthor: detail.Author}
	if status, err := s.authAPI.Status(ctx); err != nil {
		logrus.Warnf("auth status for post %d: %v", id, err)
	} else if status.Authenticated && status.User != nil {
		tc.SessionUser = status.User
	}

	var thread []*domain.CommentNode
	if detail.CommentsIncluded {
		thread = comment.Organize(detail.Comments, tc)
	} else {
		thread, err = s.comments.Thread(ctx, id, tc)
		if err != nil {
			// 评论加载失败不影响帖子本身
			logrus.Warnf("comments of post %d: %v", id, err)
			thread = []*domain.CommentNode{}
		}
	}

	serverCount := detail.CommentCount
	if serverCount == 0 && detail.CommentsIncluded {
		serverCount = len(detail.Comments)
	}

	return domain.PostView{
		Post:         detail.PostSummary,
		Comments:     thread,
		Interaction:  s.interactions.Mount(id, detail.LikeCount),
		CommentCount: s.interactions.SeedCommentCount(id, serverCount),
	}, nil
}

func (s *Service) detail(ctx context.Context, id int64) (domain.PostDetail, error) {
	key := domain.PostDetailKey(id)
	detail, err := s.cache.Get(ctx, key)
	if err == nil {
		return detail, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		logrus.Warnf("post cache get %s: %v", key, err)
	}

	detail, err = s.postAPI.GetPost(ctx, id)
	if err != nil {
		return domain.PostDetail{}, err
	}
	if err := s.cache.Set(ctx, key, detail); err != nil {
		logrus.Warnf("post cache set %s: %v", key, err)
	}
	return detail, nil
}
