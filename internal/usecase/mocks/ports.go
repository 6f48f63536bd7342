package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Guyuepp/go-community-client/domain"
)

type MutationObserver struct {
	mock.Mock
}

func (m *MutationObserver) AfterMutation(ctx context.Context, mu domain.Mutation) {
	m.Called(ctx, mu)
}

type CommentCounter struct {
	mock.Mock
}

func (m *CommentCounter) SetCommentCount(postID int64, count int) {
	m.Called(postID, count)
}

func (m *CommentCounter) AdjustCommentCount(postID int64, delta int) (int, bool) {
	args := m.Called(postID, delta)
	return args.Int(0), args.Bool(1)
}

type CommentUsecase struct {
	mock.Mock
}

func (m *CommentUsecase) Thread(ctx context.Context, postID int64, tc domain.TreeContext) ([]*domain.CommentNode, error) {
	args := m.Called(ctx, postID, tc)
	res, _ := args.Get(0).([]*domain.CommentNode)
	return res, args.Error(1)
}

func (m *CommentUsecase) Create(ctx context.Context, in domain.NewComment) (domain.FlatComment, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(domain.FlatComment), args.Error(1)
}

func (m *CommentUsecase) Edit(ctx context.Context, postID int64, in domain.CommentEdit) (domain.FlatComment, error) {
	args := m.Called(ctx, postID, in)
	return args.Get(0).(domain.FlatComment), args.Error(1)
}

func (m *CommentUsecase) Delete(ctx context.Context, postID, commentID int64) error {
	return m.Called(ctx, postID, commentID).Error(0)
}

type LikeStatusWorker struct {
	mock.Mock
}

func (m *LikeStatusWorker) Start(ctx context.Context) {
	m.Called(ctx)
}

func (m *LikeStatusWorker) Send(store domain.LikeStatusFetcher, postID int64) bool {
	return m.Called(store, postID).Bool(0)
}
