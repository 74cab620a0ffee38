package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront/internal/auth"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// authService implements AuthService.
type authService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	tokens    TokenIssuer
	logger    zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.TokenRepository,
	tokens TokenIssuer,
	logger zerolog.Logger,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		tokens:    tokens,
		logger:    logger.With().Str("service", "auth").Logger(),
	}
}

// Register creates an account and returns a token for it.
func (s *authService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	email := normalizeEmail(req.Email)

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	if existing != nil {
		s.logger.Debug().Str("email", email).Msg("email already registered")
		return nil, model.ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, wrapUnexpected("register user", err)
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      req.IsAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, wrapUnexpected("register user", err)
	}

	token, err := s.tokens.Issue(user.ID, user.IsAdmin)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to issue token")
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info().
		Str("user_id", user.ID.String()).
		Bool("is_admin", user.IsAdmin).
		Msg("user registered")

	return &model.AuthResponse{
		Message: "User registered successfully!",
		User:    model.NewUserResponse(user),
		Token:   token,
	}, nil
}

// Login checks credentials and returns a fresh token.
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, fmt.Errorf("failed to log in: %w", err)
	}
	if user == nil {
		return nil, model.ErrUnknownEmail
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Warn().Str("user_id", user.ID.String()).Msg("login with wrong password")
		return nil, model.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.IsAdmin)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to issue token")
		return nil, fmt.Errorf("failed to log in: %w", err)
	}

	s.logger.Debug().Str("user_id", user.ID.String()).Msg("user logged in")

	return &model.AuthResponse{
		Message: "Login successful!",
		User:    model.NewUserResponse(user),
		Token:   token,
	}, nil
}

// Profile returns the caller's own profile.
func (s *authService) Profile(ctx context.Context, userID uuid.UUID) (*model.ProfileResponse, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &model.ProfileResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, nil
}

// UpdateProfile changes name and/or email. Empty fields keep the stored value.
func (s *authService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) (*model.UpdateProfileResponse, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = name
	}
	if email := normalizeEmail(req.Email); email != "" && email != user.Email {
		holder, err := s.userRepo.GetByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
		if holder != nil {
			return nil, model.ErrEmailTaken
		}
		user.Email = email
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, wrapUnexpected("update profile", err)
	}

	return &model.UpdateProfileResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Message: "Profile updated successfully!",
	}, nil
}

// ChangePassword replaces the password after checking the old one.
func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, req *model.ChangePasswordRequest) error {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.PasswordHash, req.OldPassword) {
		return model.ErrIncorrectPassword
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return wrapUnexpected("change password", err)
	}
	user.PasswordHash = hash
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("password changed")

	return nil
}

// Logout revokes the token for the rest of its lifetime.
func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.tokenRepo.Revoke(ctx, token, time.Now().Add(s.tokens.TTL())); err != nil {
		return fmt.Errorf("failed to log out: %w", err)
	}
	return nil
}

// Authenticate resolves a bearer token to a principal.
func (s *authService) Authenticate(ctx context.Context, token string) (auth.Principal, error) {
	if token == "" {
		return auth.Principal{}, model.ErrUnauthenticated
	}

	revoked, err := s.tokenRepo.IsRevoked(ctx, token)
	if err != nil {
		return auth.Principal{}, fmt.Errorf("failed to check token: %w", err)
	}
	if revoked {
		return auth.Principal{}, model.ErrTokenRevoked
	}

	return s.tokens.Verify(token)
}

// Authorize fails with model.ErrAdminOnly unless the user exists and is an admin.
func (s *authService) Authorize(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to authorize user: %w", err)
	}
	if user == nil || !user.IsAdmin {
		s.logger.Warn().Str("user_id", userID.String()).Msg("admin access denied")
		return model.ErrAdminOnly
	}
	return nil
}

func (s *authService) loadUser(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}
