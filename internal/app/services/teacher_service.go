package services

import (
	"context"
	"strings"

	"github.com/alijimale/institute-backend/internal/app/auth"
	"github.com/alijimale/institute-backend/internal/app/models"
	"github.com/alijimale/institute-backend/internal/app/models/dto"
	"github.com/alijimale/institute-backend/internal/app/repositories"
	"github.com/alijimale/institute-backend/internal/pkg/apperrors"
	"github.com/alijimale/institute-backend/internal/pkg/validation"
)

// TeacherService defines the interface for teacher account operations
type TeacherService interface {
	GetAllTeachers(ctx context.Context, p auth.Principal) ([]*models.User, error)
	UpdateTeacher(ctx context.Context, p auth.Principal, req dto.UpdateTeacherRequest) (*models.User, error)
	DeleteTeacher(ctx context.Context, p auth.Principal, id int64) error
}

// teacherServiceImpl implements the TeacherService interface
type teacherServiceImpl struct {
	userRepo *repositories.UserRepository
}

// NewTeacherService creates a new teacher service instance
func NewTeacherService(userRepo *repositories.UserRepository) TeacherService {
	return &teacherServiceImpl{userRepo: userRepo}
}

// GetAllTeachers lists accounts with the TEACHER role.
func (s *teacherServiceImpl) GetAllTeachers(ctx context.Context, p auth.Principal) ([]*models.User, error) {
	if p.UserID <= 0 {
		return nil, apperrors.ErrUnauthorized
	}
	return s.userRepo.GetUsersByRole(ctx, models.RoleTeacher)
}

// UpdateTeacher changes a teacher's name or email.
func (s *teacherServiceImpl) UpdateTeacher(ctx context.Context, p auth.Principal, req dto.UpdateTeacherRequest) (*models.User, error) {
	if err := auth.Authorize(p, auth.ActionManageTeachers, auth.Resource{}); err != nil {
		return nil, err
	}
	if req.ID <= 0 {
		return nil, apperrors.NewValidationError("Teacher ID is required")
	}

	user, err := s.userRepo.GetUserByID(ctx, req.ID)
	if err != nil {
		return nil, apperrors.ErrTeacherNotFound
	}
	if user.Role != models.RoleTeacher {
		return nil, apperrors.ErrTeacherNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("Name cannot be empty")
		}
		user.Name = name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !validation.IsValidEmail(email) {
			return nil, apperrors.NewValidationError("Invalid email address")
		}
		user.Email = email
	}

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteTeacher removes a teacher account.
func (s *teacherServiceImpl) DeleteTeacher(ctx context.Context, p auth.Principal, id int64) error {
	if err := auth.Authorize(p, auth.ActionManageTeachers, auth.Resource{}); err != nil {
		return err
	}
	if id <= 0 {
		return apperrors.NewValidationError("Teacher ID is required")
	}

	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return apperrors.ErrTeacherNotFound
	}
	if user.Role != models.RoleTeacher {
		return apperrors.ErrTeacherNotFound
	}
	return s.userRepo.DeleteUser(ctx, id)
}
