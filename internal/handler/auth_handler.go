package handler

import (
	"net/http"
	"time"

	"github.com/classroom-hub/classroom-backend/internal/middleware"
	"github.com/classroom-hub/classroom-backend/internal/model"
	"github.com/classroom-hub/classroom-backend/internal/response"
	"github.com/classroom-hub/classroom-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuthHandler exposes the email/password session endpoints.
type AuthHandler struct {
	authService  *service.AuthService
	secureCookie bool
	log          zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler. secureCookie marks the session
// cookie Secure and should be set outside local development.
func NewAuthHandler(authService *service.AuthService, secureCookie bool, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		secureCookie: secureCookie,
		log:          log.With().Str("component", "auth_handler").Logger(),
	}
}

// SignUp godoc
// POST /api/auth/sign-up/email
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req model.SignUpRequest
	if !bind(c, &req) {
		return
	}

	user, err := h.authService.SignUp(c.Request.Context(), &req)
	if err != nil {
		failStore(c, h.log, "User", opWrite, err)
		return
	}
	response.Success(c, http.StatusCreated, user)
}

// SignIn godoc
// POST /api/auth/sign-in/email
// The token is returned in the body and also set as an HTTP-only cookie.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req model.SignInRequest
	if !bind(c, &req) {
		return
	}

	sess, err := h.authService.SignIn(c.Request.Context(), &req, service.SignInMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		failStore(c, h.log, "User", opRead, err)
		return
	}

	maxAge := int(time.Until(sess.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, sess.Token, maxAge, "/", "", h.secureCookie, true)
	response.Success(c, http.StatusOK, sess)
}

// SignOut godoc
// POST /api/auth/sign-out
func (h *AuthHandler) SignOut(c *gin.Context) {
	token := middleware.SessionToken(c)
	if token == "" {
		response.Fail(c, http.StatusUnauthorized, response.ErrUnauthorized)
		return
	}

	if err := h.authService.SignOut(c.Request.Context(), token); err != nil {
		failStore(c, h.log, "Session", opDelete, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.secureCookie, true)
	response.Success(c, http.StatusOK, gin.H{"success": true})
}

// GetSession godoc
// GET /api/auth/get-session
// Returns null data when the request carries no live session.
func (h *AuthHandler) GetSession(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		response.Success(c, http.StatusOK, nil)
		return
	}

	user, err := h.authService.CurrentUser(c.Request.Context(), principal)
	if err != nil {
		failStore(c, h.log, "User", opRead, err)
		return
	}
	response.Success(c, http.StatusOK, model.SessionResponse{ExpiresAt: principal.ExpiresAt, User: *user})
}
