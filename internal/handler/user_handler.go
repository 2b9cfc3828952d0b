package handler

import (
	"net/http"

	"github.com/classroom-hub/classroom-backend/internal/response"
	"github.com/classroom-hub/classroom-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// UserHandler handles user listing and detail requests.
type UserHandler struct {
	userService *service.UserService
	log         zerolog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *service.UserService, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		log:         log.With().Str("component", "user_handler").Logger(),
	}
}

// List godoc
// GET /api/users?search=&role=&page=&limit=
func (h *UserHandler) List(c *gin.Context) {
	page, err := h.userService.List(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		failStore(c, h.log, "User", opRead, err)
		return
	}
	response.List(c, http.StatusOK, page)
}

// GetByID godoc
// GET /api/users/:id
// User ids are opaque strings, so there is no malformed-id case.
func (h *UserHandler) GetByID(c *gin.Context) {
	user, err := h.userService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		failStore(c, h.log, "User", opRead, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}
