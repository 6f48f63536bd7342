// Package mocks holds testify mocks of the domain ports used by the usecases.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Guyuepp/go-community-client/domain"
)

type FeedAPI struct {
	mock.Mock
}

func (m *FeedAPI) FetchBatch(ctx context.Context, page, pageSize int) (domain.BatchFeed, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).(domain.BatchFeed), args.Error(1)
}

func (m *FeedAPI) FetchAll(ctx context.Context, page, pageSize int) (domain.FeedPage, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).(domain.FeedPage), args.Error(1)
}

func (m *FeedAPI) FetchSimilar(ctx context.Context, page, pageSize int) (domain.FeedPage, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).(domain.FeedPage), args.Error(1)
}

func (m *FeedAPI) FetchStats(ctx context.Context) (domain.FeedStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.FeedStats), args.Error(1)
}

type AuthAPI struct {
	mock.Mock
}

func (m *AuthAPI) Status(ctx context.Context) (domain.AuthStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.AuthStatus), args.Error(1)
}

type PostAPI struct {
	mock.Mock
}

func (m *PostAPI) GetPost(ctx context.Context, id int64) (domain.PostDetail, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.PostDetail), args.Error(1)
}

type CommentAPI struct {
	mock.Mock
}

func (m *CommentAPI) ListByPost(ctx context.Context, postID int64) ([]domain.FlatComment, error) {
	args := m.Called(ctx, postID)
	res, _ := args.Get(0).([]domain.FlatComment)
	return res, args.Error(1)
}

func (m *CommentAPI) Create(ctx context.Context, in domain.NewComment) (domain.FlatComment, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(domain.FlatComment), args.Error(1)
}

func (m *CommentAPI) Update(ctx context.Context, in domain.CommentEdit) (domain.FlatComment, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(domain.FlatComment), args.Error(1)
}

func (m *CommentAPI) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type LikeAPI struct {
	mock.Mock
}

func (m *LikeAPI) Like(ctx context.Context, postID int64) error {
	return m.Called(ctx, postID).Error(0)
}

func (m *LikeAPI) Unlike(ctx context.Context, postID int64) error {
	return m.Called(ctx, postID).Error(0)
}

func (m *LikeAPI) LikeStatus(ctx context.Context, postID int64) (domain.LikeStatus, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(domain.LikeStatus), args.Error(1)
}

type UserAPI struct {
	mock.Mock
}

func (m *UserAPI) GetProfile(ctx context.Context, id int64) (domain.Profile, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Profile), args.Error(1)
}

func (m *UserAPI) UpdateProfile(ctx context.Context, in domain.ProfileUpdate) (domain.Profile, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(domain.Profile), args.Error(1)
}

func (m *UserAPI) UpdateTags(ctx context.Context, tags []string) (domain.Profile, error) {
	args := m.Called(ctx, tags)
	return args.Get(0).(domain.Profile), args.Error(1)
}
