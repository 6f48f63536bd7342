package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Guyuepp/go-community-client/domain"
)

type FeedUsecase struct {
	mock.Mock
}

func (m *FeedUsecase) LoadFeed(ctx context.Context, page, pageSize int, tab domain.Tab) (domain.FeedBundle, error) {
	args := m.Called(ctx, page, pageSize, tab)
	return args.Get(0).(domain.FeedBundle), args.Error(1)
}

type PostUsecase struct {
	mock.Mock
}

func (m *PostUsecase) GetDetail(ctx context.Context, id int64) (domain.PostView, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.PostView), args.Error(1)
}

type UserUsecase struct {
	mock.Mock
}

func (m *UserUsecase) GetProfile(ctx context.Context, id int64) (domain.Profile, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Profile), args.Error(1)
}

func (m *UserUsecase) UpdateProfile(ctx context.Context, in domain.ProfileUpdate) (domain.Profile, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(domain.Profile), args.Error(1)
}

func (m *UserUsecase) UpdateTags(ctx context.Context, tags []string) (domain.Profile, error) {
	args := m.Called(ctx, tags)
	return args.Get(0).(domain.Profile), args.Error(1)
}
