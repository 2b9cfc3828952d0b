package service

import (
	"context"
	"errors"
	"net/url"

	"github.com/classroom-hub/classroom-backend/internal/listing"
	"github.com/classroom-hub/classroom-backend/internal/model"
	"github.com/classroom-hub/classroom-backend/internal/repository"
	"github.com/rs/zerolog"
)

// ErrStudentRequired is returned when a teacher or admin enrolls without
// naming the student.
var ErrStudentRequired = errors.New("studentId is required")

// EnrollmentService handles enrollment business logic.
type EnrollmentService struct {
	enrollmentRepo *repository.EnrollmentRepository
	log            zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService.
func NewEnrollmentService(enrollmentRepo *repository.EnrollmentRepository, log zerolog.Logger) *EnrollmentService {
	return &EnrollmentService{
		enrollmentRepo: enrollmentRepo,
		log:            log.With().Str("component", "enrollment_service").Logger(),
	}
}

// List returns one page of enrollments. Students only ever see their own.
func (s *EnrollmentService) List(ctx context.Context, principal *model.Principal, query url.Values) (*listing.Page[model.EnrollmentListItem], error) {
	params, err := s.enrollmentRepo.ParseListParams(query)
	if err != nil {
		return nil, err
	}
	var studentID string
	if principal != nil && principal.Role == model.RoleStudent {
		studentID = principal.UserID
	}
	return s.enrollmentRepo.List(ctx, params, studentID)
}

// Create enrolls a student in a class. Student principals always enroll
// themselves; teachers and admins must name the student.
func (s *EnrollmentService) Create(ctx context.Context, principal *model.Principal, req *model.CreateEnrollmentRequest) (int, error) {
	studentID := req.StudentID
	if principal.Role == model.RoleStudent {
		studentID = principal.UserID
	}
	if studentID == "" {
		return 0, ErrStudentRequired
	}

	id, err := s.enrollmentRepo.Create(ctx, studentID, req.ClassID)
	if err != nil {
		return 0, err
	}
	s.log.Info().Int("enrollment_id", id).Str("student_id", studentID).Int("class_id", req.ClassID).Msg("Student enrolled")
	return id, nil
}
