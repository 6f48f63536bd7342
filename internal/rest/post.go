package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Guyuepp/go-community-client/internal/rest/response"
)

type PostHandler struct{}

func NewPostHandler() *PostHandler {
	return &PostHandler{}
}

// GetByID answers the detail view, failures send the user back to the feed.
func (h *PostHandler) GetByID(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}

	view, err := s.Posts.GetDetail(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err, FeedRedirect)
		return
	}
	c.JSON(http.StatusOK, response.NewPostDetailFromDomain(&view))
}
