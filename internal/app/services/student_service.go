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

// StudentService defines the interface for student operations
type StudentService interface {
	CreateStudent(ctx context.Context, p auth.Principal, req dto.CreateStudentRequest) (*models.Student, error)
	GetAllStudents(ctx context.Context, p auth.Principal) ([]*models.Student, error)
	UpdateStudent(ctx context.Context, p auth.Principal, req dto.UpdateStudentRequest) (*models.Student, error)
	DeleteStudent(ctx context.Context, p auth.Principal, id int64) error
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	studentRepo *repositories.StudentRepository
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo *repositories.StudentRepository) StudentService {
	return &studentServiceImpl{studentRepo: studentRepo}
}

// CreateStudent validates and stores a new student record.
func (s *studentServiceImpl) CreateStudent(ctx context.Context, p auth.Principal, req dto.CreateStudentRequest) (*models.Student, error) {
	if err := auth.Authorize(p, auth.ActionManageStudents, auth.Resource{}); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	code := strings.TrimSpace(req.StudentCode)
	if name == "" || code == "" {
		return nil, apperrors.NewValidationError("Name and student ID are required")
	}
	if !validation.IsValidStudentCode(code) {
		return nil, apperrors.NewValidationError("Invalid student ID format")
	}
	if req.Age != nil && (*req.Age < 3 || *req.Age > 100) {
		return nil, apperrors.NewValidationError("Age is out of range")
	}

	student := &models.Student{
		Name:          name,
		StudentCode:   code,
		Gender:        strings.TrimSpace(req.Gender),
		GradeLevel:    strings.TrimSpace(req.GradeLevel),
		Age:           req.Age,
		ParentContact: strings.TrimSpace(req.ParentContact),
		Address:       strings.TrimSpace(req.Address),
		Status:        models.StudentActive,
	}
	if err := s.studentRepo.CreateStudent(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// GetAllStudents lists every student. Any authenticated staff role may read.
func (s *studentServiceImpl) GetAllStudents(ctx context.Context, p auth.Principal) ([]*models.Student, error) {
	if p.UserID <= 0 {
		return nil, apperrors.ErrUnauthorized
	}
	return s.studentRepo.GetAllStudents(ctx)
}

// UpdateStudent applies the non-nil fields and returns the updated record.
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, p auth.Principal, req dto.UpdateStudentRequest) (*models.Student, error) {
	if err := auth.Authorize(p, auth.ActionManageStudents, auth.Resource{}); err != nil {
		return nil, err
	}
	if req.ID <= 0 {
		return nil, apperrors.NewValidationError("Student ID is required")
	}

	changes := map[string]interface{}{}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, apperrors.NewValidationError("Name cannot be empty")
		}
		changes["name"] = strings.TrimSpace(*req.Name)
	}
	if req.StudentCode != nil {
		if !validation.IsValidStudentCode(*req.StudentCode) {
			return nil, apperrors.NewValidationError("Invalid student ID format")
		}
		changes["student_code"] = strings.TrimSpace(*req.StudentCode)
	}
	if req.Gender != nil {
		changes["gender"] = strings.TrimSpace(*req.Gender)
	}
	if req.GradeLevel != nil {
		changes["grade_level"] = strings.TrimSpace(*req.GradeLevel)
	}
	if req.Age != nil {
		if *req.Age < 3 || *req.Age > 100 {
			return nil, apperrors.NewValidationError("Age is out of range")
		}
		changes["age"] = *req.Age
	}
	if req.ParentContact != nil {
		changes["parent_contact"] = strings.TrimSpace(*req.ParentContact)
	}
	if req.Address != nil {
		changes["address"] = strings.TrimSpace(*req.Address)
	}
	if req.Status != nil {
		status := models.StudentStatus(*req.Status)
		if !status.Valid() {
			return nil, apperrors.NewValidationError("Invalid student status")
		}
		changes["status"] = status
	}

	if len(changes) > 0 {
		if err := s.studentRepo.UpdateStudent(ctx, req.ID, changes); err != nil {
			return nil, err
		}
	}
	return s.studentRepo.GetStudentByID(ctx, req.ID)
}

// DeleteStudent removes a student record.
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, p auth.Principal, id int64) error {
	if err := auth.Authorize(p, auth.ActionManageStudents, auth.Resource{}); err != nil {
		return err
	}
	if id <= 0 {
		return apperrors.NewValidationError("Student ID is required")
	}
	return s.studentRepo.DeleteStudent(ctx, id)
}
