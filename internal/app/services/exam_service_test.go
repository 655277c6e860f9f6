package services

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alijimale/institute-backend/internal/app/auth"
	"github.com/alijimale/institute-backend/internal/app/models"
	"github.com/alijimale/institute-backend/internal/pkg/apperrors"
)

// fakeExamStore captures the scope the service applies to listings.
type fakeExamStore struct {
	listScope *int64
	scopeSet  bool
	exams     []*models.Exam
}

func (f *fakeExamStore) CreateExamTx(context.Context, pgx.Tx, *models.Exam) error { return nil }

func (f *fakeExamStore) GetExamByID(context.Context, int64) (*models.Exam, error) {
	return nil, apperrors.ErrExamNotFound
}

func (f *fakeExamStore) ListExams(_ context.Context, uploadedBy *int64) ([]*models.Exam, error) {
	f.listScope = uploadedBy
	f.scopeSet = true
	return f.exams, nil
}

func (f *fakeExamStore) UpdateExamStatus(context.Context, int64, models.ExamStatus) error {
	return nil
}

func (f *fakeExamStore) DeleteExam(context.Context, int64) error { return nil }

func TestUploadExamValidation(t *testing.T) {
	svc := NewExamService(nil, nil, nil)
	teacher := auth.Principal{UserID: 3, Role: models.RoleTeacher}

	t.Run("unauthenticated", func(t *testing.T) {
		_, err := svc.UploadExam(context.Background(), auth.Principal{}, "Midterm", "", nil)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("admin cannot upload", func(t *testing.T) {
		admin := auth.Principal{UserID: 1, Role: models.RoleAdmin}
		_, err := svc.UploadExam(context.Background(), admin, "Midterm", "", &multipart.FileHeader{})
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("manager cannot upload", func(t *testing.T) {
		manager := auth.Principal{UserID: 2, Role: models.RoleManager}
		_, err := svc.UploadExam(context.Background(), manager, "Midterm", "", &multipart.FileHeader{})
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("missing title", func(t *testing.T) {
		_, err := svc.UploadExam(context.Background(), teacher, "  ", "", &multipart.FileHeader{})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := svc.UploadExam(context.Background(), teacher, "Midterm", "", nil)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("oversized file", func(t *testing.T) {
		header := &multipart.FileHeader{Size: MaxExamFileSize + 1}
		_, err := svc.UploadExam(context.Background(), teacher, "Midterm", "", header)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestListExamsScopedByRole(t *testing.T) {
	blobID := uuid.New()
	stored := []*models.Exam{{ID: 1, Title: "Midterm", BlobID: &blobID, UploadedBy: 3}}

	t.Run("teacher sees only own uploads", func(t *testing.T) {
		store := &fakeExamStore{exams: stored}
		svc := NewExamService(nil, store, nil)

		exams, err := svc.ListExams(context.Background(), auth.Principal{UserID: 3, Role: models.RoleTeacher})
		require.NoError(t, err)
		require.NotNil(t, store.listScope)
		assert.Equal(t, int64(3), *store.listScope)
		assert.Equal(t, "/api/exams/download/"+blobID.String(), exams[0].FileURL)
	})

	t.Run("admin sees everything", func(t *testing.T) {
		store := &fakeExamStore{exams: stored}
		svc := NewExamService(nil, store, nil)

		_, err := svc.ListExams(context.Background(), auth.Principal{UserID: 1, Role: models.RoleAdmin})
		require.NoError(t, err)
		assert.True(t, store.scopeSet)
		assert.Nil(t, store.listScope)
	})

	t.Run("manager sees everything", func(t *testing.T) {
		store := &fakeExamStore{exams: stored}
		svc := NewExamService(nil, store, nil)

		_, err := svc.ListExams(context.Background(), auth.Principal{UserID: 2, Role: models.RoleManager})
		require.NoError(t, err)
		assert.Nil(t, store.listScope)
	})
}

func TestStatExamFileValidation(t *testing.T) {
	svc := NewExamService(nil, nil, nil)

	_, err := svc.StatExamFile(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, apperrors.ErrInvalidID)
}

func TestStreamExamFileInvalidID(t *testing.T) {
	svc := NewExamService(nil, nil, nil)

	err := svc.StreamExamFile(context.Background(), "not-a-uuid", nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidID)
}

func TestUpdateExamStatusValidation(t *testing.T) {
	svc := NewExamService(nil, nil, nil)
	manager := auth.Principal{UserID: 2, Role: models.RoleManager}

	t.Run("teacher cannot review", func(t *testing.T) {
		teacher := auth.Principal{UserID: 3, Role: models.RoleTeacher}
		_, err := svc.UpdateExamStatus(context.Background(), teacher, 1, string(models.ExamApproved))
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := svc.UpdateExamStatus(context.Background(), manager, 0, string(models.ExamApproved))
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := svc.UpdateExamStatus(context.Background(), manager, 1, "Lost")
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestDeleteExamValidation(t *testing.T) {
	svc := NewExamService(nil, nil, nil)
	manager := auth.Principal{UserID: 2, Role: models.RoleManager}

	_, err := svc.DeleteExam(context.Background(), manager, 0)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
