package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/classroom-hub/classroom-backend/internal/model"
	"github.com/classroom-hub/classroom-backend/internal/response"
	"github.com/classroom-hub/classroom-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	// ContextKeyPrincipal is the Gin context key for the signed-in principal.
	ContextKeyPrincipal = "principal"
	// SessionCookie carries the session token for browser clients.
	SessionCookie = "session_token"
)

// Authenticator resolves a session token to a principal.
// *service.AuthService satisfies it.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.Principal, error)
}

// LoadSession attaches the principal behind a valid token, if any. Requests
// without a token, or whose token is invalid or expired, continue
// anonymously. Any other lookup failure aborts with 500 rather than
// silently downgrading a signed-in caller.
func LoadSession(auth Authenticator, log zerolog.Logger) gin.HandlerFunc {
	log = log.With().Str("component", "session").Logger()
	return func(c *gin.Context) {
		token := SessionToken(c)
		if token == "" {
			c.Next()
			return
		}

		p, err := auth.Authenticate(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set(ContextKeyPrincipal, p)
		case errors.Is(err, service.ErrInvalidSession):
		default:
			log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Session lookup failed")
			response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}
		c.Next()
	}
}

// RequireSession rejects requests that LoadSession left anonymous.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetPrincipal(c) == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrUnauthorized)
			return
		}
		c.Next()
	}
}

// GetPrincipal retrieves the principal from the Gin context.
func GetPrincipal(c *gin.Context) *model.Principal {
	val, exists := c.Get(ContextKeyPrincipal)
	if !exists {
		return nil
	}
	p, ok := val.(*model.Principal)
	if !ok {
		return nil
	}
	return p
}

// SessionToken reads a bearer token from the Authorization header, falling
// back to the session cookie.
func SessionToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}
