package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Guyuepp/go-community-client/internal/session"
)

const (
	SessionKey  = "session"
	TokenCookie = "token"
)

// SessionSource resolves the data layer of a bearer token.
type SessionSource interface {
	Get(ctx context.Context, token string) (*session.Session, error)
}

// SessionMiddleware attaches the caller's session to the gin context. Requests without a
// token are answered with a login redirect.
func SessionMiddleware(sessions SessionSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "user not authenticated", "redirect": "/login"})
			return
		}

		s, err := sessions.Get(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": err.Error(), "redirect": "/login"})
			return
		}
		c.Set(SessionKey, s)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	if token, err := c.Cookie(TokenCookie); err == nil {
		return token
	}
	return ""
}
