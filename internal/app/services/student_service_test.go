package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alijimale/institute-backend/internal/app/auth"
	"github.com/alijimale/institute-backend/internal/app/models"
	"github.com/alijimale/institute-backend/internal/app/models/dto"
	"github.com/alijimale/institute-backend/internal/pkg/apperrors"
)

func TestCreateStudentValidation(t *testing.T) {
	svc := NewStudentService(nil)
	admin := auth.Principal{UserID: 1, Role: models.RoleAdmin}
	badAge := 150

	t.Run("teacher is forbidden", func(t *testing.T) {
		teacher := auth.Principal{UserID: 3, Role: models.RoleTeacher}
		_, err := svc.CreateStudent(context.Background(), teacher, dto.CreateStudentRequest{})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := svc.CreateStudent(context.Background(), admin, dto.CreateStudentRequest{StudentCode: "STU-1"})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("missing student code", func(t *testing.T) {
		_, err := svc.CreateStudent(context.Background(), admin, dto.CreateStudentRequest{Name: "Amina"})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("invalid student code", func(t *testing.T) {
		req := dto.CreateStudentRequest{Name: "Amina", StudentCode: "has spaces!"}
		_, err := svc.CreateStudent(context.Background(), admin, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("age out of range", func(t *testing.T) {
		req := dto.CreateStudentRequest{Name: "Amina", StudentCode: "STU-1", Age: &badAge}
		_, err := svc.CreateStudent(context.Background(), admin, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestUpdateStudentValidation(t *testing.T) {
	svc := NewStudentService(nil)
	admin := auth.Principal{UserID: 1, Role: models.RoleAdmin}
	empty := "  "
	badStatus := "Expelled"

	t.Run("missing id", func(t *testing.T) {
		_, err := svc.UpdateStudent(context.Background(), admin, dto.UpdateStudentRequest{})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := svc.UpdateStudent(context.Background(), admin, dto.UpdateStudentRequest{ID: 1, Name: &empty})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := svc.UpdateStudent(context.Background(), admin, dto.UpdateStudentRequest{ID: 1, Status: &badStatus})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestDeleteStudentValidation(t *testing.T) {
	svc := NewStudentService(nil)
	admin := auth.Principal{UserID: 1, Role: models.RoleAdmin}

	assert.ErrorIs(t, svc.DeleteStudent(context.Background(), admin, 0), apperrors.ErrValidationFailed)

	teacher := auth.Principal{UserID: 3, Role: models.RoleTeacher}
	assert.ErrorIs(t, svc.DeleteStudent(context.Background(), teacher, 1), apperrors.ErrForbidden)
}
