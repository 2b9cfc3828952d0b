package handler

import (
	"net/http"

	"github.com/classroom-hub/classroom-backend/internal/model"
	"github.com/classroom-hub/classroom-backend/internal/response"
	"github.com/classroom-hub/classroom-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// DepartmentHandler handles department listing, detail, creation and deletion.
type DepartmentHandler struct {
	departmentService *service.DepartmentService
	log               zerolog.Logger
}

// NewDepartmentHandler creates a new DepartmentHandler.
func NewDepartmentHandler(departmentService *service.DepartmentService, log zerolog.Logger) *DepartmentHandler {
	return &DepartmentHandler{
		departmentService: departmentService,
		log:               log.With().Str("component", "department_handler").Logger(),
	}
}

// List godoc
// GET /api/departments?search=&page=&limit=
func (h *DepartmentHandler) List(c *gin.Context) {
	page, err := h.departmentService.List(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		failStore(c, h.log, "Department", opRead, err)
		return
	}
	response.List(c, http.StatusOK, page)
}

// GetByID godoc
// GET /api/departments/:id
func (h *DepartmentHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	dept, err := h.departmentService.GetByID(c.Request.Context(), id)
	if err != nil {
		failStore(c, h.log, "Department", opRead, err)
		return
	}
	response.Success(c, http.StatusOK, dept)
}

// Create godoc
// POST /api/departments
func (h *DepartmentHandler) Create(c *gin.Context) {
	var req model.CreateDepartmentRequest
	if !bind(c, &req) {
		return
	}

	id, err := h.departmentService.Create(c.Request.Context(), &req)
	if err != nil {
		failStore(c, h.log, "Department", opWrite, err)
		return
	}
	response.Success(c, http.StatusCreated, response.Created{ID: id})
}

// Delete godoc
// DELETE /api/departments/:id
func (h *DepartmentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.departmentService.Delete(c.Request.Context(), id); err != nil {
		failStore(c, h.log, "Department", opDelete, err)
		return
	}
	c.Status(http.StatusNoContent)
}
