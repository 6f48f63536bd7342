package rest

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Guyuepp/go-community-client/domain"
	"github.com/Guyuepp/go-community-client/internal/rest/middleware"
	"github.com/Guyuepp/go-community-client/internal/session"
)

func currentSession(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(middleware.SessionKey)
	if !ok {
		abortWithError(c, domain.ErrUnauthenticated, "")
		return nil, false
	}
	return v.(*session.Session), true
}

func int64Param(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		abortWithError(c, domain.ErrBadParamInput, "")
		return 0, false
	}
	return id, true
}
