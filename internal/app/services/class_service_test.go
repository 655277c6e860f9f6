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

func TestCreateClassValidation(t *testing.T) {
	svc := NewClassService(nil, nil)
	admin := auth.Principal{UserID: 1, Role: models.RoleAdmin}

	t.Run("teacher is forbidden", func(t *testing.T) {
		teacher := auth.Principal{UserID: 3, Role: models.RoleTeacher}
		_, err := svc.CreateClass(context.Background(), teacher, dto.CreateClassRequest{})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := svc.CreateClass(context.Background(), admin, dto.CreateClassRequest{Subject: "Math"})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("missing subject", func(t *testing.T) {
		_, err := svc.CreateClass(context.Background(), admin, dto.CreateClassRequest{Name: "5A"})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestUpdateClassValidation(t *testing.T) {
	svc := NewClassService(nil, nil)
	admin := auth.Principal{UserID: 1, Role: models.RoleAdmin}
	empty := ""

	t.Run("missing id", func(t *testing.T) {
		_, err := svc.UpdateClass(context.Background(), admin, dto.UpdateClassRequest{})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("empty subject", func(t *testing.T) {
		_, err := svc.UpdateClass(context.Background(), admin, dto.UpdateClassRequest{ID: 1, Subject: &empty})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestDeleteClassValidation(t *testing.T) {
	svc := NewClassService(nil, nil)
	admin := auth.Principal{UserID: 1, Role: models.RoleAdmin}

	assert.ErrorIs(t, svc.DeleteClass(context.Background(), admin, 0), apperrors.ErrValidationFailed)
}
