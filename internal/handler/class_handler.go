package handler

import (
	"net/http"

	"github.com/classroom-hub/classroom-backend/internal/model"
	"github.com/classroom-hub/classroom-backend/internal/response"
	"github.com/classroom-hub/classroom-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ClassHandler handles class listing, detail, creation and deletion.
type ClassHandler struct {
	classService *service.ClassService
	log          zerolog.Logger
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(classService *service.ClassService, log zerolog.Logger) *ClassHandler {
	return &ClassHandler{
		classService: classService,
		log:          log.With().Str("component", "class_handler").Logger(),
	}
}

// List godoc
// GET /api/classes?search=&subject=&teacher=&status=&page=&limit=
func (h *ClassHandler) List(c *gin.Context) {
	page, err := h.classService.List(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		failStore(c, h.log, "Class", opRead, err)
		return
	}
	response.List(c, http.StatusOK, page)
}

// GetByID godoc
// GET /api/classes/:id
func (h *ClassHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	class, err := h.classService.GetByID(c.Request.Context(), id)
	if err != nil {
		failStore(c, h.log, "Class", opRead, err)
		return
	}
	response.Success(c, http.StatusOK, class)
}

// Create godoc
// POST /api/classes
func (h *ClassHandler) Create(c *gin.Context) {
	var req model.CreateClassRequest
	if !bind(c, &req) {
		return
	}

	id, err := h.classService.Create(c.Request.Context(), &req)
	if err != nil {
		failStore(c, h.log, "Class", opWrite, err)
		return
	}
	response.Success(c, http.StatusCreated, response.Created{ID: id})
}

// Delete godoc
// DELETE /api/classes/:id
func (h *ClassHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.classService.Delete(c.Request.Context(), id); err != nil {
		failStore(c, h.log, "Class", opDelete, err)
		return
	}
	c.Status(http.StatusNoContent)
}
