package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/go-community-client/domain"
)

const (
	LoginRedirect = "/login"
	FeedRedirect  = "/feed"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}

func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var apiErr *domain.APIError
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrBadParamInput):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &apiErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// message prefers the upstream text, it is what the user should read.
func message(err error) string {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// abortWithError answers err, fallback is the redirect hint for errors without a better one.
func abortWithError(c *gin.Context, err error, fallback string) {
	status := getStatusCode(err)
	if status >= http.StatusInternalServerError {
		logrus.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	}

	res := ResponseError{Message: message(err)}
	switch {
	case status == http.StatusUnauthorized:
		res.Redirect = LoginRedirect
	case fallback != "":
		res.Redirect = fallback
	}
	c.AbortWithStatusJSON(status, res)
}
