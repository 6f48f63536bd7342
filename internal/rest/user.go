package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Guyuepp/go-community-client/internal/rest/request"
	"github.com/Guyuepp/go-community-client/internal/rest/response"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}

	profile, err := s.Users.GetProfile(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, response.NewProfileFromDomain(profile))
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	var req request.Profile
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	profile, err := s.Users.UpdateProfile(c.Request.Context(), req.ToDomain())
	if err != nil {
		abortWithError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, response.NewProfileFromDomain(profile))
}

func (h *UserHandler) UpdateTags(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	var req request.Tags
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	profile, err := s.Users.UpdateTags(c.Request.Context(), req.Tags)
	if err != nil {
		abortWithError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, response.NewProfileFromDomain(profile))
}
