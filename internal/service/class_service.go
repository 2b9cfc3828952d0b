package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/url"

	"github.com/classroom-hub/classroom-backend/internal/listing"
	"github.com/classroom-hub/classroom-backend/internal/model"
	"github.com/classroom-hub/classroom-backend/internal/repository"
	"github.com/rs/zerolog"
)

const (
	inviteCodeAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	inviteCodeLength   = 7
	maxInviteAttempts  = 5
)

// ErrInviteCodeExhausted means every generated invite code collided.
var ErrInviteCodeExhausted = errors.New("could not generate a unique invite code")

// ClassService handles class business logic.
type ClassService struct {
	classRepo *repository.ClassRepository
	log       zerolog.Logger
	newCode   func() (string, error)
}

// NewClassService creates a new ClassService.
func NewClassService(classRepo *repository.ClassRepository, log zerolog.Logger) *ClassService {
	return &ClassService{
		classRepo: classRepo,
		log:       log.With().Str("component", "class_service").Logger(),
		newCode:   NewInviteCode,
	}
}

// NewInviteCode returns a random lowercase base36 code.
func NewInviteCode() (string, error) {
	b := make([]byte, inviteCodeLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	for i := range b {
		b[i] = inviteCodeAlphabet[int(b[i])%len(inviteCodeAlphabet)]
	}
	return string(b), nil
}

// List validates the query and returns one page of classes.
func (s *ClassService) List(ctx context.Context, query url.Values) (*listing.Page[model.ClassListItem], error) {
	params, err := s.classRepo.ParseListParams(query)
	if err != nil {
		return nil, err
	}
	return s.classRepo.List(ctx, params)
}

// GetByID retrieves a class with its subject, department and teacher.
func (s *ClassService) GetByID(ctx context.Context, id int) (*model.ClassDetail, error) {
	return s.classRepo.GetByID(ctx, id)
}

// Create inserts a class with a fresh invite code and an empty schedule,
// regenerating the code if it collides with an existing one.
func (s *ClassService) Create(ctx context.Context, req *model.CreateClassRequest) (int, error) {
	c := &model.Class{
		SubjectID:      req.SubjectID,
		TeacherID:      req.TeacherID,
		Name:           req.Name,
		BannerCldPubID: req.BannerCldPubID,
		BannerURL:      req.BannerURL,
		Description:    req.Description,
		Capacity:       model.DefaultClassCapacity,
		Status:         model.ClassStatusActive,
	}
	if req.Capacity != nil {
		c.Capacity = *req.Capacity
	}
	if req.Status != "" {
		c.Status = req.Status
	}

	for attempt := 1; attempt <= maxInviteAttempts; attempt++ {
		code, err := s.newCode()
		if err != nil {
			return 0, err
		}
		c.InviteCode = code

		id, err := s.classRepo.Create(ctx, c)
		if errors.Is(err, repository.ErrInviteCodeTaken) {
			s.log.Warn().Int("attempt", attempt).Msg("Invite code collision, regenerating")
			continue
		}
		if err != nil {
			return 0, err
		}

		s.log.Info().Int("class_id", id).Str("invite_code", code).Msg("Class created")
		return id, nil
	}
	return 0, ErrInviteCodeExhausted
}

// Delete removes a class and its enrollments.
func (s *ClassService) Delete(ctx context.Context, id int) error {
	if err := s.classRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int("class_id", id).Msg("Class deleted")
	return nil
}
