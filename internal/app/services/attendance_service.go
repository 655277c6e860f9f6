package services

import (
	"context"
	"strings"
	"time"

	"github.com/alijimale/institute-backend/internal/app/auth"
	"github.com/alijimale/institute-backend/internal/app/models"
	"github.com/alijimale/institute-backend/internal/app/models/dto"
	"github.com/alijimale/institute-backend/internal/app/repositories"
	"github.com/alijimale/institute-backend/internal/pkg/apperrors"
	"github.com/alijimale/institute-backend/internal/pkg/helpers"
	"github.com/alijimale/institute-backend/internal/pkg/logger"
)

// AttendanceService defines the interface for attendance operations
type AttendanceService interface {
	// MarkAttendance upserts the record for (class, student, day). The
	// returned flag is true when a new record was created rather than an
	// existing one overwritten.
	MarkAttendance(ctx context.Context, p auth.Principal, req dto.MarkAttendanceRequest) (*models.Attendance, bool, error)
	ListAttendance(ctx context.Context, p auth.Principal, q ListAttendanceQuery) ([]*models.Attendance, error)
	UpdateAttendance(ctx context.Context, p auth.Principal, req dto.UpdateAttendanceRequest) (*models.Attendance, error)
	DeleteAttendance(ctx context.Context, p auth.Principal, id int64) error
}

// ListAttendanceQuery narrows the attendance listing. Zero values are
// ignored; Date accepts "2006-01-02" or RFC 3339.
type ListAttendanceQuery struct {
	ClassID   int64
	StudentID int64
	Date      string
	Status    string
}

// attendanceStore is the repository surface the service depends on,
// satisfied by repositories.AttendanceRepository.
type attendanceStore interface {
	MarkAttendance(ctx context.Context, a *models.Attendance) (bool, error)
	GetAttendanceByID(ctx context.Context, id int64) (*models.Attendance, error)
	ListAttendance(ctx context.Context, filter repositories.AttendanceFilter) ([]*models.Attendance, error)
	UpdateAttendance(ctx context.Context, id int64, changes map[string]interface{}) error
	DeleteAttendance(ctx context.Context, id int64) error
}

// attendanceServiceImpl implements the AttendanceService interface
type attendanceServiceImpl struct {
	attendanceRepo attendanceStore
}

// NewAttendanceService creates a new attendance service instance
func NewAttendanceService(attendanceRepo attendanceStore) AttendanceService {
	return &attendanceServiceImpl{attendanceRepo: attendanceRepo}
}

// MarkAttendance records a student's attendance for a class day.
func (s *attendanceServiceImpl) MarkAttendance(ctx context.Context, p auth.Principal, req dto.MarkAttendanceRequest) (*models.Attendance, bool, error) {
	if err := auth.Authorize(p, auth.ActionMarkAttendance, auth.Resource{}); err != nil {
		return nil, false, err
	}

	if req.ClassID <= 0 || req.StudentID <= 0 || req.Status == "" {
		return nil, false, apperrors.NewValidationError("Class ID, Student ID, and status are required")
	}

	status := models.AttendanceStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if !status.Valid() {
		return nil, false, apperrors.NewValidationError("Invalid attendance status")
	}

	day := time.Now()
	if req.Date != "" {
		parsed, err := helpers.ParseDay(req.Date)
		if err != nil {
			return nil, false, apperrors.NewValidationError("Invalid date format")
		}
		day = parsed
	}
	dayStart, _ := helpers.DayBounds(day)

	record := &models.Attendance{
		ClassID:   req.ClassID,
		StudentID: req.StudentID,
		Date:      dayStart,
		Status:    status,
		Notes:     strings.TrimSpace(req.Notes),
		MarkedBy:  p.UserID,
	}
	created, err := s.attendanceRepo.MarkAttendance(ctx, record)
	if err != nil {
		return nil, false, err
	}

	logger.Info().
		Int64("classID", req.ClassID).
		Int64("studentID", req.StudentID).
		Bool("created", created).
		Msg("Attendance marked")

	// Re-read to pick up the joined display fields.
	full, err := s.attendanceRepo.GetAttendanceByID(ctx, record.ID)
	if err != nil {
		return nil, false, err
	}
	return full, created, nil
}

// ListAttendance returns records matching the query.
func (s *attendanceServiceImpl) ListAttendance(ctx context.Context, p auth.Principal, q ListAttendanceQuery) ([]*models.Attendance, error) {
	if p.UserID <= 0 {
		return nil, apperrors.ErrUnauthorized
	}

	filter := repositories.AttendanceFilter{}
	if q.ClassID > 0 {
		filter.ClassID = &q.ClassID
	}
	if q.StudentID > 0 {
		filter.StudentID = &q.StudentID
	}
	if q.Date != "" {
		parsed, err := helpers.ParseDay(q.Date)
		if err != nil {
			return nil, apperrors.NewValidationError("Invalid date format")
		}
		dayStart, _ := helpers.DayBounds(parsed)
		filter.Day = &dayStart
	}
	if q.Status != "" {
		status := models.AttendanceStatus(strings.ToUpper(strings.TrimSpace(q.Status)))
		if !status.Valid() {
			return nil, apperrors.NewValidationError("Invalid attendance status")
		}
		filter.Status = &status
	}

	return s.attendanceRepo.ListAttendance(ctx, filter)
}

// UpdateAttendance changes status or notes of an existing record.
func (s *attendanceServiceImpl) UpdateAttendance(ctx context.Context, p auth.Principal, req dto.UpdateAttendanceRequest) (*models.Attendance, error) {
	if err := auth.Authorize(p, auth.ActionManageAttendance, auth.Resource{}); err != nil {
		return nil, err
	}
	if req.ID <= 0 {
		return nil, apperrors.NewValidationError("Attendance ID is required")
	}

	changes := map[string]interface{}{}
	if req.Status != nil {
		status := models.AttendanceStatus(strings.ToUpper(strings.TrimSpace(*req.Status)))
		if !status.Valid() {
			return nil, apperrors.NewValidationError("Invalid attendance status")
		}
		changes["status"] = status
	}
	if req.Notes != nil {
		changes["notes"] = strings.TrimSpace(*req.Notes)
	}
	changes["marked_by"] = p.UserID

	if err := s.attendanceRepo.UpdateAttendance(ctx, req.ID, changes); err != nil {
		return nil, err
	}
	return s.attendanceRepo.GetAttendanceByID(ctx, req.ID)
}

// DeleteAttendance removes an attendance record.
func (s *attendanceServiceImpl) DeleteAttendance(ctx context.Context, p auth.Principal, id int64) error {
	if err := auth.Authorize(p, auth.ActionManageAttendance, auth.Resource{}); err != nil {
		return err
	}
	if id <= 0 {
		return apperrors.NewValidationError("Attendance ID is required")
	}
	return s.attendanceRepo.DeleteAttendance(ctx, id)
}
