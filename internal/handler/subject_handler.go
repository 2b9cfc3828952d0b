package handler

import (
	"net/http"

	"github.com/classroom-hub/classroom-backend/internal/model"
	"github.com/classroom-hub/classroom-backend/internal/response"
	"github.com/classroom-hub/classroom-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SubjectHandler handles subject listing, detail, creation and deletion.
type SubjectHandler struct {
	subjectService *service.SubjectService
	log            zerolog.Logger
}

// NewSubjectHandler creates a new SubjectHandler.
func NewSubjectHandler(subjectService *service.SubjectService, log zerolog.Logger) *SubjectHandler {
	return &SubjectHandler{
		subjectService: subjectService,
		log:            log.With().Str("component", "subject_handler").Logger(),
	}
}

// List godoc
// GET /api/subjects?search=&department=&page=&limit=
func (h *SubjectHandler) List(c *gin.Context) {
	page, err := h.subjectService.List(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		failStore(c, h.log, "Subject", opRead, err)
		return
	}
	response.List(c, http.StatusOK, page)
}

// GetByID godoc
// GET /api/subjects/:id
func (h *SubjectHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	subject, err := h.subjectService.GetByID(c.Request.Context(), id)
	if err != nil {
		failStore(c, h.log, "Subject", opRead, err)
		return
	}
	response.Success(c, http.StatusOK, subject)
}

// Create godoc
// POST /api/subjects
func (h *SubjectHandler) Create(c *gin.Context) {
	var req model.CreateSubjectRequest
	if !bind(c, &req) {
		return
	}

	id, err := h.subjectService.Create(c.Request.Context(), &req)
	if err != nil {
		failStore(c, h.log, "Subject", opWrite, err)
		return
	}
	response.Success(c, http.StatusCreated, response.Created{ID: id})
}

// Delete godoc
// DELETE /api/subjects/:id
func (h *SubjectHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.subjectService.Delete(c.Request.Context(), id); err != nil {
		failStore(c, h.log, "Subject", opDelete, err)
		return
	}
	c.Status(http.StatusNoContent)
}
