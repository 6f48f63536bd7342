package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Guyuepp/go-community-client/domain"
	"github.com/Guyuepp/go-community-client/internal/rest/response"
)

type FeedHandler struct{}

func NewFeedHandler() *FeedHandler {
	return &FeedHandler{}
}

// LoadFeed answers both collections of one page, ?tab only selects the active one.
func (h *FeedHandler) LoadFeed(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid page"})
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(domain.DefaultPageSize)))
	if err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid per_page"})
		return
	}
	tab := domain.ParseTab(c.Query("tab"))

	bundle, err := s.Feed.LoadFeed(c.Request.Context(), page, pageSize, tab)
	if err != nil {
		abortWithError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, response.NewFeedFromDomain(&bundle))
}
