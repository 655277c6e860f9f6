package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/alijimale/institute-backend/internal/app/auth"
	"github.com/alijimale/institute-backend/internal/app/models"
	"github.com/alijimale/institute-backend/internal/app/models/dto"
	"github.com/alijimale/institute-backend/internal/app/services"
)

// stubAttendanceService drives the controller without a database.
type stubAttendanceService struct {
	record  *models.Attendance
	created bool
	list    []*models.Attendance
	err     error
}

func (s *stubAttendanceService) MarkAttendance(ctx context.Context, p auth.Principal, req dto.MarkAttendanceRequest) (*models.Attendance, bool, error) {
	return s.record, s.created, s.err
}

func (s *stubAttendanceService) ListAttendance(ctx context.Context, p auth.Principal, q services.ListAttendanceQuery) ([]*models.Attendance, error) {
	return s.list, s.err
}

func (s *stubAttendanceService) UpdateAttendance(ctx context.Context, p auth.Principal, req dto.UpdateAttendanceRequest) (*models.Attendance, error) {
	return s.record, s.err
}

func (s *stubAttendanceService) DeleteAttendance(ctx context.Context, p auth.Principal, id int64) error {
	return s.err
}

func attendanceRouter(svc services.AttendanceService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	ctrl := NewAttendanceController(svc)
	router.GET("/attendance", ctrl.GetAttendance)
	router.POST("/attendance", ctrl.MarkAttendance)
	router.DELETE("/attendance", ctrl.DeleteAttendance)
	return router
}

func sampleAttendance() *models.Attendance {
	return &models.Attendance{
		ID:        12,
		ClassID:   1,
		StudentID: 2,
		Date:      time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		Status:    models.AttendancePresent,
	}
}

func TestMarkAttendanceCreated(t *testing.T) {
	router := attendanceRouter(&stubAttendanceService{record: sampleAttendance(), created: true})

	body := `{"classId":1,"studentId":2,"status":"PRESENT","date":"2025-03-14"}`
	req := httptest.NewRequest(http.MethodPost, "/attendance", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"message":"Attendance recorded"`)
}

func TestMarkAttendanceOverwritten(t *testing.T) {
	router := attendanceRouter(&stubAttendanceService{record: sampleAttendance(), created: false})

	body := `{"classId":1,"studentId":2,"status":"ABSENT"}`
	req := httptest.NewRequest(http.MethodPost, "/attendance", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"message":"Attendance updated"`)
}

func TestMarkAttendanceBadJSON(t *testing.T) {
	router := attendanceRouter(&stubAttendanceService{})

	req := httptest.NewRequest(http.MethodPost, "/attendance", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAttendanceCount(t *testing.T) {
	list := []*models.Attendance{sampleAttendance(), sampleAttendance()}
	router := attendanceRouter(&stubAttendanceService{list: list})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/attendance?classId=1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":2`)
}

func TestGetAttendanceRejectsBadClassID(t *testing.T) {
	router := attendanceRouter(&stubAttendanceService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/attendance?classId=abc", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteAttendanceRequiresID(t *testing.T) {
	router := attendanceRouter(&stubAttendanceService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/attendance", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Attendance ID is required")
}
