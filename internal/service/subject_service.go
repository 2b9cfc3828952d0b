package service

import (
	"context"
	"net/url"

	"github.com/classroom-hub/classroom-backend/internal/listing"
	"github.com/classroom-hub/classroom-backend/internal/model"
	"github.com/classroom-hub/classroom-backend/internal/repository"
	"github.com/rs/zerolog"
)

// SubjectService handles subject business logic.
type SubjectService struct {
	subjectRepo *repository.SubjectRepository
	log         zerolog.Logger
}

// NewSubjectService creates a new SubjectService.
func NewSubjectService(subjectRepo *repository.SubjectRepository, log zerolog.Logger) *SubjectService {
	return &SubjectService{
		subjectRepo: subjectRepo,
		log:         log.With().Str("component", "subject_service").Logger(),
	}
}

// List validates the query and returns one page of subjects.
func (s *SubjectService) List(ctx context.Context, query url.Values) (*listing.Page[model.SubjectListItem], error) {
	params, err := s.subjectRepo.ParseListParams(query)
	if err != nil {
		return nil, err
	}
	return s.subjectRepo.List(ctx, params)
}

// GetByID retrieves a subject by its ID.
func (s *SubjectService) GetByID(ctx context.Context, id int) (*model.SubjectListItem, error) {
	return s.subjectRepo.GetByID(ctx, id)
}

// Create creates a new subject under an existing department.
func (s *SubjectService) Create(ctx context.Context, req *model.CreateSubjectRequest) (int, error) {
	id, err := s.subjectRepo.Create(ctx, req)
	if err != nil {
		return 0, err
	}
	s.log.Info().Int("subject_id", id).Str("code", req.Code).Msg("Subject created")
	return id, nil
}

// Delete removes a subject. Its classes go with it.
func (s *SubjectService) Delete(ctx context.Context, id int) error {
	if err := s.subjectRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int("subject_id", id).Msg("Subject deleted")
	return nil
}
