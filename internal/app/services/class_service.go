package services

import (
	"context"
	"strings"

	"github.com/alijimale/institute-backend/internal/app/auth"
	"github.com/alijimale/institute-backend/internal/app/models"
	"github.com/alijimale/institute-backend/internal/app/models/dto"
	"github.com/alijimale/institute-backend/internal/app/repositories"
	"github.com/alijimale/institute-backend/internal/pkg/apperrors"
)

// ClassService defines the interface for class operations
type ClassService interface {
	CreateClass(ctx context.Context, p auth.Principal, req dto.CreateClassRequest) (*models.Class, error)
	GetAllClasses(ctx context.Context, p auth.Principal) ([]*models.Class, error)
	UpdateClass(ctx context.Context, p auth.Principal, req dto.UpdateClassRequest) (*models.Class, error)
	DeleteClass(ctx context.Context, p auth.Principal, id int64) error
}

// classServiceImpl implements the ClassService interface
type classServiceImpl struct {
	classRepo *repositories.ClassRepository
	userRepo  *repositories.UserRepository
}

// NewClassService creates a new class service instance
func NewClassService(classRepo *repositories.ClassRepository, userRepo *repositories.UserRepository) ClassService {
	return &classServiceImpl{classRepo: classRepo, userRepo: userRepo}
}

// validateTeacher ensures the assigned user exists and holds the TEACHER role.
func (s *classServiceImpl) validateTeacher(ctx context.Context, teacherID int64) error {
	user, err := s.userRepo.GetUserByID(ctx, teacherID)
	if err != nil {
		return apperrors.ErrTeacherNotFound
	}
	if user.Role != models.RoleTeacher {
		return apperrors.NewValidationError("Assigned user is not a teacher")
	}
	return nil
}

// CreateClass validates and stores a new class.
func (s *classServiceImpl) CreateClass(ctx context.Context, p auth.Principal, req dto.CreateClassRequest) (*models.Class, error) {
	if err := auth.Authorize(p, auth.ActionManageClasses, auth.Resource{}); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	subject := strings.TrimSpace(req.Subject)
	if name == "" || subject == "" {
		return nil, apperrors.NewValidationError("Name and subject are required")
	}
	if req.TeacherID != nil {
		if err := s.validateTeacher(ctx, *req.TeacherID); err != nil {
			return nil, err
		}
	}

	class := &models.Class{
		Name:         name,
		Subject:      subject,
		TeacherID:    req.TeacherID,
		AcademicYear: strings.TrimSpace(req.AcademicYear),
	}
	if err := s.classRepo.CreateClass(ctx, class); err != nil {
		return nil, err
	}
	return s.classRepo.GetClassByID(ctx, class.ID)
}

// GetAllClasses lists every class with its assigned teacher.
func (s *classServiceImpl) GetAllClasses(ctx context.Context, p auth.Principal) ([]*models.Class, error) {
	if p.UserID <= 0 {
		return nil, apperrors.ErrUnauthorized
	}
	return s.classRepo.GetAllClasses(ctx)
}

// UpdateClass applies the non-nil fields and returns the updated class.
func (s *classServiceImpl) UpdateClass(ctx context.Context, p auth.Principal, req dto.UpdateClassRequest) (*models.Class, error) {
	if err := auth.Authorize(p, auth.ActionManageClasses, auth.Resource{}); err != nil {
		return nil, err
	}
	if req.ID <= 0 {
		return nil, apperrors.NewValidationError("Class ID is required")
	}

	changes := map[string]interface{}{}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, apperrors.NewValidationError("Name cannot be empty")
		}
		changes["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Subject != nil {
		if strings.TrimSpace(*req.Subject) == "" {
			return nil, apperrors.NewValidationError("Subject cannot be empty")
		}
		changes["subject"] = strings.TrimSpace(*req.Subject)
	}
	if req.TeacherID != nil {
		if *req.TeacherID > 0 {
			if err := s.validateTeacher(ctx, *req.TeacherID); err != nil {
				return nil, err
			}
			changes["teacher_id"] = *req.TeacherID
		} else {
			// Zero or negative unassigns the teacher.
			changes["teacher_id"] = nil
		}
	}
	if req.AcademicYear != nil {
		changes["academic_year"] = strings.TrimSpace(*req.AcademicYear)
	}

	if len(changes) > 0 {
		if err := s.classRepo.UpdateClass(ctx, req.ID, changes); err != nil {
			return nil, err
		}
	}
	return s.classRepo.GetClassByID(ctx, req.ID)
}

// DeleteClass removes a class and, via cascade, its attendance records.
func (s *classServiceImpl) DeleteClass(ctx context.Context, p auth.Principal, id int64) error {
	if err := auth.Authorize(p, auth.ActionManageClasses, auth.Resource{}); err != nil {
		return err
	}
	if id <= 0 {
		return apperrors.NewValidationError("Class ID is required")
	}
	return s.classRepo.DeleteClass(ctx, id)
}
