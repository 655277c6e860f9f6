package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alijimale/institute-backend/internal/app/models/dto"
	"github.com/alijimale/institute-backend/internal/pkg/apperrors"
)

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(nil, nil)

	tests := []struct {
		name string
		req  dto.RegisterRequest
	}{
		{name: "missing email", req: dto.RegisterRequest{Name: "Jane", Password: "secret1"}},
		{name: "missing name", req: dto.RegisterRequest{Email: "jane@school.test", Password: "secret1"}},
		{name: "missing password", req: dto.RegisterRequest{Email: "jane@school.test", Name: "Jane"}},
		{name: "invalid email", req: dto.RegisterRequest{Email: "not-an-email", Name: "Jane", Password: "secret1"}},
		{name: "short password", req: dto.RegisterRequest{Email: "jane@school.test", Name: "Jane", Password: "abc"}},
		{name: "invalid role", req: dto.RegisterRequest{Email: "jane@school.test", Name: "Jane", Password: "secret1", Role: "WIZARD"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.req)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}
}

func TestLoginValidation(t *testing.T) {
	svc := NewAuthService(nil, nil)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "", Password: ""})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "jane@school.test"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
