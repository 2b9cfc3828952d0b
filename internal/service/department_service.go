package service

import (
	"context"
	"net/url"

	"github.com/classroom-hub/classroom-backend/internal/listing"
	"github.com/classroom-hub/classroom-backend/internal/model"
	"github.com/classroom-hub/classroom-backend/internal/repository"
	"github.com/rs/zerolog"
)

// DepartmentService handles department business logic.
type DepartmentService struct {
	departmentRepo *repository.DepartmentRepository
	log            zerolog.Logger
}

// NewDepartmentService creates a new DepartmentService.
func NewDepartmentService(departmentRepo *repository.DepartmentRepository, log zerolog.Logger) *DepartmentService {
	return &DepartmentService{
		departmentRepo: departmentRepo,
		log:            log.With().Str("component", "department_service").Logger(),
	}
}

// List validates the query and returns one page of departments.
func (s *DepartmentService) List(ctx context.Context, query url.Values) (*listing.Page[model.DepartmentListItem], error) {
	params, err := s.departmentRepo.ParseListParams(query)
	if err != nil {
		return nil, err
	}
	return s.departmentRepo.List(ctx, params)
}

// GetByID retrieves a department by its ID.
func (s *DepartmentService) GetByID(ctx context.Context, id int) (*model.DepartmentListItem, error) {
	return s.departmentRepo.GetByID(ctx, id)
}

// Create creates a new department.
func (s *DepartmentService) Create(ctx context.Context, req *model.CreateDepartmentRequest) (int, error) {
	id, err := s.departmentRepo.Create(ctx, req)
	if err != nil {
		return 0, err
	}
	s.log.Info().Int("department_id", id).Str("code", req.Code).Msg("Department created")
	return id, nil
}

// Delete removes a department with no subjects.
func (s *DepartmentService) Delete(ctx context.Context, id int) error {
	return s.departmentRepo.Delete(ctx, id)
}
