package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alijimale/institute-backend/internal/app/models"
	"github.com/alijimale/institute-backend/internal/app/models/dto"
	"github.com/alijimale/institute-backend/internal/app/repositories"
	"github.com/alijimale/institute-backend/internal/pkg/apperrors"
	"github.com/alijimale/institute-backend/internal/pkg/auth"
	"github.com/alijimale/institute-backend/internal/pkg/logger"
	"github.com/alijimale/institute-backend/internal/pkg/validation"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req dto.LoginRequest) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	userRepo         *repositories.UserRepository
	privilegedEmails map[string]struct{}
}

// NewAuthService creates a new auth service instance. Accounts registered
// with one of privilegedEmails are promoted to ADMIN regardless of the
// requested role.
func NewAuthService(userRepo *repositories.UserRepository, privilegedEmails []string) AuthService {
	privileged := make(map[string]struct{}, len(privilegedEmails))
	for _, email := range privilegedEmails {
		privileged[strings.ToLower(strings.TrimSpace(email))] = struct{}{}
	}
	return &authServiceImpl{
		userRepo:         userRepo,
		privilegedEmails: privileged,
	}
}

const minPasswordLength = 6

// Register creates a new account and returns the stored user.
func (s *authServiceImpl) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)

	if email == "" || name == "" || req.Password == "" {
		return nil, apperrors.NewValidationError("Email, name and password are required")
	}
	if !validation.IsValidEmail(email) {
		return nil, apperrors.NewValidationError("Invalid email address")
	}
	if len(req.Password) < minPasswordLength {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}

	role := models.Role(strings.ToUpper(strings.TrimSpace(req.Role)))
	if role == "" {
		role = models.RoleTeacher
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("Invalid role")
	}
	if _, ok := s.privilegedEmails[email]; ok {
		role = models.RoleAdmin
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: hash,
	}
	if _, err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.NewConflictError("An account with this email already exists")
		}
		return nil, err
	}

	logger.Info().Int64("userID", user.ID).Str("role", string(user.Role)).Msg("User registered")
	return user, nil
}

// Login verifies credentials and, when the request names a role, that the
// stored account actually has it.
func (s *authServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, apperrors.NewValidationError("Email and password are required")
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if req.Role != "" {
		requested := models.Role(strings.ToUpper(strings.TrimSpace(req.Role)))
		if requested != user.Role {
			return nil, apperrors.ErrRoleMismatch
		}
	}

	return user, nil
}

// GetUserByID returns the stored user for session refresh.
func (s *authServiceImpl) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}
