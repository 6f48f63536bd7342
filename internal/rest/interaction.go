package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Guyuepp/go-community-client/domain"
	"github.com/Guyuepp/go-community-client/internal/rest/request"
	"github.com/Guyuepp/go-community-client/internal/rest/response"
)

type InteractionHandler struct{}

func NewInteractionHandler() *InteractionHandler {
	return &InteractionHandler{}
}

// Get answers the shared state of a post, asking the server when the post was never seen.
func (h *InteractionHandler) Get(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	postID, ok := int64Param(c, "id")
	if !ok {
		return
	}

	state, known := s.Interactions.State(postID)
	if !known {
		var err error
		state, err = s.Interactions.FetchLikeStatus(c.Request.Context(), postID)
		if err != nil {
			abortWithError(c, err, "")
			return
		}
	}
	c.JSON(http.StatusOK, withCommentCount(s.Interactions, postID, state))
}

// Toggle flips the like. On failure the body carries the previous state so the client
// can decide whether to restore it.
func (h *InteractionHandler) Toggle(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	postID, ok := int64Param(c, "id")
	if !ok {
		return
	}

	state, err := s.Interactions.ToggleLike(c.Request.Context(), postID)
	var mutErr *domain.LikeMutationError
	if errors.As(err, &mutErr) {
		c.JSON(getStatusCode(mutErr.Err), gin.H{
			"message":     message(mutErr.Err),
			"interaction": response.NewInteraction(postID, state),
			"previous":    response.NewInteraction(postID, mutErr.Previous),
		})
		return
	}
	if err != nil {
		abortWithError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, withCommentCount(s.Interactions, postID, state))
}

// Set overwrites the like state, clients use it to restore after a failed toggle.
func (h *InteractionHandler) Set(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	postID, ok := int64Param(c, "id")
	if !ok {
		return
	}
	var req request.LikeState
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	state := s.Interactions.SetLikeState(postID, req.IsLiked, req.LikeCount)
	c.JSON(http.StatusOK, withCommentCount(s.Interactions, postID, state))
}

func withCommentCount(store domain.InteractionUsecase, postID int64, state domain.InteractionState) response.Interaction {
	res := response.NewInteraction(postID, state)
	if count, ok := store.CommentCount(postID); ok {
		res.CommentCount = &count
	}
	return res
}
