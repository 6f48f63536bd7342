package rest_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/go-community-client/domain"
	"github.com/Guyuepp/go-community-client/internal/rest"
	"github.com/Guyuepp/go-community-client/internal/rest/middleware"
	"github.com/Guyuepp/go-community-client/internal/session"
	"github.com/Guyuepp/go-community-client/internal/usecase/interaction"
	"github.com/Guyuepp/go-community-client/internal/usecase/mocks"
)

type harness struct {
	router   *gin.Engine
	feed     *mocks.FeedUsecase
	posts    *mocks.PostUsecase
	comments *mocks.CommentUsecase
	users    *mocks.UserUsecase
	likes    *mocks.LikeAPI
	store    *interaction.Store
}

func newHarness() *harness {
	gin.SetMode(gin.TestMode)
	h := &harness{
		feed:     new(mocks.FeedUsecase),
		posts:    new(mocks.PostUsecase),
		comments: new(mocks.CommentUsecase),
		users:    new(mocks.UserUsecase),
		likes:    new(mocks.LikeAPI),
	}
	observer := new(mocks.MutationObserver)
	observer.On("AfterMutation", mock.Anything, mock.Anything).Return()
	h.store = interaction.NewStore(h.likes, observer, nil)

	registry := session.NewRegistry(time.Minute, func(id, token string) *session.Session {
		return &session.Session{
			ID:           id,
			Feed:         h.feed,
			Posts:        h.posts,
			Comments:     h.comments,
			Interactions: h.store,
			Users:        h.users,
		}
	})

	h.router = gin.New()
	rest.RegisterRoutes(h.router, middleware.SessionMiddleware(registry))
	return h
}

func (h *harness) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var res map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res
}

func TestMissingTokenRedirectsToLogin(t *testing.T) {
	h := newHarness()
	req := httptest.NewRequest(http.MethodGet, "/feed", nil)
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "/login", decode(t, rec)["redirect"])
}

func TestLoadFeed(t *testing.T) {
	h := newHarness()
	bundle := domain.FeedBundle{
		AllPosts:      []domain.PostSummary{{ID: 1, Title: "hello"}},
		SimilarPosts:  []domain.PostSummary{},
		AllPagination: domain.NewPagination(2, 5, 20),
		ActiveTab:     domain.TabSimilar,
	}
	h.feed.On("LoadFeed", mock.Anything, 2, 5, domain.TabSimilar).Return(bundle, nil)

	rec := h.do(http.MethodGet, "/feed?page=2&per_page=5&tab=similar", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	res := decode(t, rec)
	assert.Equal(t, "similar", res["active_tab"])
	assert.Len(t, res["all_posts"], 1)
	pagination := res["all_posts_pagination"].(map[string]any)
	assert.Equal(t, true, pagination["has_prev"])
}

func TestLoadFeed_UnauthenticatedUpstream(t *testing.T) {
	h := newHarness()
	h.feed.On("LoadFeed", mock.Anything, 1, 10, domain.TabAll).Return(domain.FeedBundle{}, domain.ErrUnauthenticated)

	rec := h.do(http.MethodGet, "/feed", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "/login", decode(t, rec)["redirect"])
}

func TestGetPost_NotFoundRedirectsToFeed(t *testing.T) {
	h := newHarness()
	h.posts.On("GetDetail", mock.Anything, int64(9)).Return(domain.PostView{}, &domain.APIError{Status: 404, Message: "post not found"})

	rec := h.do(http.MethodGet, "/posts/9", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	res := decode(t, rec)
	assert.Equal(t, "/feed", res["redirect"])
	assert.Equal(t, "post not found", res["message"])
}

func TestGetPost_BadID(t *testing.T) {
	h := newHarness()
	rec := h.do(http.MethodGet, "/posts/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestToggleLike_FailureCarriesPrevious(t *testing.T) {
	h := newHarness()
	h.store.Mount(3, 7)
	h.likes.On("Like", mock.Anything, int64(3)).Return(&domain.APIError{Status: 500, Message: "try later"})

	rec := h.do(http.MethodPost, "/posts/3/like/toggle", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	res := decode(t, rec)
	assert.Equal(t, "try later", res["message"])
	assert.Equal(t, float64(8), res["interaction"].(map[string]any)["like_count"])
	assert.Equal(t, float64(7), res["previous"].(map[string]any)["like_count"])
}

func TestToggleLike_Success(t *testing.T) {
	h := newHarness()
	h.store.Mount(3, 7)
	h.store.SetCommentCount(3, 2)
	h.likes.On("Like", mock.Anything, int64(3)).Return(nil)

	rec := h.do(http.MethodPost, "/posts/3/like/toggle", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode(t, rec)
	assert.Equal(t, true, res["is_liked"])
	assert.Equal(t, float64(2), res["comment_count"])
}

func TestSetInteraction_Restores(t *testing.T) {
	h := newHarness()
	rec := h.do(http.MethodPut, "/posts/3/interaction", map[string]any{"is_liked": false, "like_count": 7})
	require.Equal(t, http.StatusOK, rec.Code)

	state, ok := h.store.State(3)
	require.True(t, ok)
	assert.Equal(t, 7, state.LikeCount)
}

func TestCreateComment(t *testing.T) {
	h := newHarness()
	h.comments.On("Create", mock.Anything, domain.NewComment{PostID: 3, Body: "nice"}).
		Return(domain.FlatComment{ID: 1, PostID: 3, Body: "nice"}, nil)

	rec := h.do(http.MethodPost, "/posts/3/comments", map[string]any{"body": "nice"})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, decode(t, rec), "comment_count", "unknown counts are not reported as 0")
	h.comments.AssertExpectations(t)
}

func TestCreateComment_MissingBody(t *testing.T) {
	h := newHarness()
	rec := h.do(http.MethodPost, "/posts/3/comments", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	h.comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDeleteComment_Forbidden(t *testing.T) {
	h := newHarness()
	h.comments.On("Delete", mock.Anything, int64(3), int64(4)).Return(domain.ErrForbidden)

	rec := h.do(http.MethodDelete, "/posts/3/comments/4", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateTags(t *testing.T) {
	h := newHarness()
	h.users.On("UpdateTags", mock.Anything, []string{"go"}).
		Return(domain.Profile{UserSummary: domain.UserSummary{ID: 1, Tags: []string{"go"}}}, nil)

	rec := h.do(http.MethodPut, "/me/tags", map[string]any{"tags": []string{"go"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"go"}, decode(t, rec)["tags"])
}

func TestLoadFeed_DegradedBundleIsNotAnError(t *testing.T) {
	h := newHarness()
	h.feed.On("LoadFeed", mock.Anything, 1, 10, domain.TabAll).Return(domain.FeedBundle{
		AllPosts:          []domain.PostSummary{},
		SimilarPosts:      []domain.PostSummary{},
		AllPagination:     domain.EmptyPagination(1, 10),
		SimilarPagination: domain.EmptyPagination(1, 10),
		Stats:             domain.FeedStats{TotalPosts: 9},
		ActiveTab:         domain.TabAll,
		Message:           domain.SimilarFeedFallbackMessage,
		Degraded:          true,
	}, nil)

	rec := h.do(http.MethodGet, "/feed", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	res := decode(t, rec)
	assert.Equal(t, true, res["degraded"])
	assert.Empty(t, res["all_posts"])
	assert.Equal(t, domain.SimilarFeedFallbackMessage, res["message"])
	assert.Equal(t, float64(9), res["stats"].(map[string]any)["total_posts"])
}

func TestLoadFeed_BadQueryParameter(t *testing.T) {
	tests := []string{"/feed?page=abc", "/feed?per_page=ten"}
	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			h := newHarness()
			rec := h.do(http.MethodGet, path, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			h.feed.AssertNotCalled(t, "LoadFeed", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCreateComment_ReportsKnownCount(t *testing.T) {
	h := newHarness()
	h.store.SetCommentCount(3, 4)
	h.comments.On("Create", mock.Anything, domain.NewComment{PostID: 3, Body: "nice"}).
		Run(func(mock.Arguments) { h.store.AdjustCommentCount(3, 1) }).
		Return(domain.FlatComment{ID: 1, PostID: 3, Body: "nice"}, nil)

	rec := h.do(http.MethodPost, "/posts/3/comments", map[string]any{"body": "nice"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, float64(5), decode(t, rec)["comment_count"])
}
