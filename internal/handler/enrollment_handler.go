package handler

import (
	"errors"
	"net/http"

	"github.com/classroom-hub/classroom-backend/internal/middleware"
	"github.com/classroom-hub/classroom-backend/internal/model"
	"github.com/classroom-hub/classroom-backend/internal/response"
	"github.com/classroom-hub/classroom-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// EnrollmentHandler handles enrollment listing and creation.
type EnrollmentHandler struct {
	enrollmentService *service.EnrollmentService
	log               zerolog.Logger
}

// NewEnrollmentHandler creates a new EnrollmentHandler.
func NewEnrollmentHandler(enrollmentService *service.EnrollmentService, log zerolog.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		enrollmentService: enrollmentService,
		log:               log.With().Str("component", "enrollment_handler").Logger(),
	}
}

// List godoc
// GET /api/enrollments?search=&class=&page=&limit=
// Students see only their own enrollments.
func (h *EnrollmentHandler) List(c *gin.Context) {
	page, err := h.enrollmentService.List(c.Request.Context(), middleware.GetPrincipal(c), c.Request.URL.Query())
	if err != nil {
		failStore(c, h.log, "Enrollment", opRead, err)
		return
	}
	response.List(c, http.StatusOK, page)
}

// Create godoc
// POST /api/enrollments
func (h *EnrollmentHandler) Create(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrUnauthorized)
		return
	}

	var req model.CreateEnrollmentRequest
	if !bind(c, &req) {
		return
	}

	id, err := h.enrollmentService.Create(c.Request.Context(), principal, &req)
	if errors.Is(err, service.ErrStudentRequired) {
		response.FailMessage(c, http.StatusBadRequest, "Validation failed: studentId is a required field.")
		return
	}
	if err != nil {
		failStore(c, h.log, "Enrollment", opWrite, err)
		return
	}
	response.Success(c, http.StatusCreated, response.Created{ID: id})
}
