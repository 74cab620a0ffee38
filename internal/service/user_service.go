package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// userService implements UserService.
type userService struct {
	userRepo repository.UserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new admin user service.
func NewUserService(userRepo repository.UserRepository, logger zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

// List returns every account without credentials.
func (s *userService) List(ctx context.Context) ([]model.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	resp := make([]model.UserResponse, len(users))
	for i := range users {
		resp[i] = model.NewUserResponse(&users[i])
	}
	return resp, nil
}

// Update edits name, email and admin flag. Nil fields are kept.
func (s *userService) Update(ctx context.Context, id uuid.UUID, req *model.AdminUpdateUserRequest) (*model.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		user.Email = normalizeEmail(*req.Email)
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, wrapUnexpected("update user", err)
	}

	s.logger.Info().
		Str("user_id", user.ID.String()).
		Bool("is_admin", user.IsAdmin).
		Msg("user updated by admin")

	resp := model.NewUserResponse(user)
	return &resp, nil
}

// Delete removes an account.
func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if !deleted {
		return model.ErrUserNotFound
	}

	s.logger.Info().Str("user_id", id.String()).Msg("user deleted by admin")

	return nil
}
