package service

import (
	"context"
	"net/url"

	"github.com/classroom-hub/classroom-backend/internal/listing"
	"github.com/classroom-hub/classroom-backend/internal/model"
	"github.com/classroom-hub/classroom-backend/internal/repository"
)

// UserService handles user reads.
type UserService struct {
	userRepo *repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// List validates the query and returns one page of users.
func (s *UserService) List(ctx context.Context, query url.Values) (*listing.Page[model.User], error) {
	params, err := s.userRepo.ParseListParams(query)
	if err != nil {
		return nil, err
	}
	return s.userRepo.List(ctx, params)
}

// GetByID retrieves a user by its ID.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
