package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alijimale/institute-backend/internal/app/auth"
	"github.com/alijimale/institute-backend/internal/app/models"
	"github.com/alijimale/institute-backend/internal/app/models/dto"
	"github.com/alijimale/institute-backend/internal/app/repositories"
	"github.com/alijimale/institute-backend/internal/pkg/apperrors"
)

// fakeAttendanceStore records the arguments the service hands to the
// repository layer.
type fakeAttendanceStore struct {
	created    bool
	marked     *models.Attendance
	listFilter repositories.AttendanceFilter
	records    []*models.Attendance
}

func (f *fakeAttendanceStore) MarkAttendance(_ context.Context, a *models.Attendance) (bool, error) {
	a.ID = 42
	f.marked = a
	return f.created, nil
}

func (f *fakeAttendanceStore) GetAttendanceByID(_ context.Context, id int64) (*models.Attendance, error) {
	if f.marked != nil && f.marked.ID == id {
		return f.marked, nil
	}
	return nil, apperrors.ErrAttendanceNotFound
}

func (f *fakeAttendanceStore) ListAttendance(_ context.Context, filter repositories.AttendanceFilter) ([]*models.Attendance, error) {
	f.listFilter = filter
	return f.records, nil
}

func (f *fakeAttendanceStore) UpdateAttendance(context.Context, int64, map[string]interface{}) error {
	return nil
}

func (f *fakeAttendanceStore) DeleteAttendance(context.Context, int64) error { return nil }

func TestMarkAttendanceValidation(t *testing.T) {
	svc := NewAttendanceService(nil)
	teacher := auth.Principal{UserID: 3, Role: models.RoleTeacher}

	t.Run("unauthenticated", func(t *testing.T) {
		_, _, err := svc.MarkAttendance(context.Background(), auth.Principal{}, dto.MarkAttendanceRequest{})
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, _, err := svc.MarkAttendance(context.Background(), teacher, dto.MarkAttendanceRequest{ClassID: 1})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("invalid status", func(t *testing.T) {
		req := dto.MarkAttendanceRequest{ClassID: 1, StudentID: 2, Status: "AWOL"}
		_, _, err := svc.MarkAttendance(context.Background(), teacher, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("invalid date", func(t *testing.T) {
		req := dto.MarkAttendanceRequest{ClassID: 1, StudentID: 2, Status: "present", Date: "14/03/2025"}
		_, _, err := svc.MarkAttendance(context.Background(), teacher, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestMarkAttendanceReportsCreated(t *testing.T) {
	teacher := auth.Principal{UserID: 3, Role: models.RoleTeacher}
	req := dto.MarkAttendanceRequest{ClassID: 1, StudentID: 2, Status: "PRESENT", Date: "2025-03-14"}

	t.Run("first mark of the day creates", func(t *testing.T) {
		store := &fakeAttendanceStore{created: true}
		svc := NewAttendanceService(store)

		record, created, err := svc.MarkAttendance(context.Background(), teacher, req)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, int64(42), record.ID)
		assert.Equal(t, int64(3), store.marked.MarkedBy)
	})

	t.Run("second mark of the day overwrites", func(t *testing.T) {
		store := &fakeAttendanceStore{created: false}
		svc := NewAttendanceService(store)

		_, created, err := svc.MarkAttendance(context.Background(), teacher, req)
		require.NoError(t, err)
		assert.False(t, created)
	})
}

func TestMarkAttendanceBucketsByDay(t *testing.T) {
	teacher := auth.Principal{UserID: 3, Role: models.RoleTeacher}
	store := &fakeAttendanceStore{created: true}
	svc := NewAttendanceService(store)

	// A full timestamp late in the day resolves to the day's start.
	req := dto.MarkAttendanceRequest{ClassID: 1, StudentID: 2, Status: "LATE", Date: "2025-03-14T23:45:00Z"}
	_, _, err := svc.MarkAttendance(context.Background(), teacher, req)
	require.NoError(t, err)

	midnight := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)
	assert.True(t, store.marked.Date.Equal(midnight), "marked at %v", store.marked.Date)

	// Listing with any timestamp from the same day hits the same bucket.
	_, err = svc.ListAttendance(context.Background(), teacher, ListAttendanceQuery{Date: "2025-03-14T08:00:00Z"})
	require.NoError(t, err)
	require.NotNil(t, store.listFilter.Day)
	assert.True(t, store.listFilter.Day.Equal(store.marked.Date))
}

func TestListAttendanceValidation(t *testing.T) {
	svc := NewAttendanceService(nil)
	teacher := auth.Principal{UserID: 3, Role: models.RoleTeacher}

	t.Run("unauthenticated", func(t *testing.T) {
		_, err := svc.ListAttendance(context.Background(), auth.Principal{}, ListAttendanceQuery{})
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("invalid date filter", func(t *testing.T) {
		_, err := svc.ListAttendance(context.Background(), teacher, ListAttendanceQuery{Date: "yesterday"})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		_, err := svc.ListAttendance(context.Background(), teacher, ListAttendanceQuery{Status: "AWOL"})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestUpdateAttendanceValidation(t *testing.T) {
	svc := NewAttendanceService(nil)
	teacher := auth.Principal{UserID: 3, Role: models.RoleTeacher}
	bad := "AWOL"

	t.Run("missing id", func(t *testing.T) {
		_, err := svc.UpdateAttendance(context.Background(), teacher, dto.UpdateAttendanceRequest{})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := svc.UpdateAttendance(context.Background(), teacher, dto.UpdateAttendanceRequest{ID: 1, Status: &bad})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestDeleteAttendanceValidation(t *testing.T) {
	svc := NewAttendanceService(nil)
	teacher := auth.Principal{UserID: 3, Role: models.RoleTeacher}

	assert.ErrorIs(t, svc.DeleteAttendance(context.Background(), teacher, 0), apperrors.ErrValidationFailed)
	assert.ErrorIs(t, svc.DeleteAttendance(context.Background(), auth.Principal{}, 1), apperrors.ErrUnauthorized)
}
