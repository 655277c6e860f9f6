package controllers

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/alijimale/institute-backend/internal/app/auth"
	"github.com/alijimale/institute-backend/internal/app/models"
	"github.com/alijimale/institute-backend/internal/app/services"
	"github.com/alijimale/institute-backend/internal/pkg/apperrors"
	"github.com/alijimale/institute-backend/internal/pkg/blobstore"
)

type stubExamService struct {
	exam   *models.Exam
	exams  []*models.Exam
	info   *blobstore.FileInfo
	result *services.ExamDeleteResult
	err    error
}

func (s *stubExamService) UploadExam(ctx context.Context, p auth.Principal, title, description string, fh *multipart.FileHeader) (*models.Exam, error) {
	return s.exam, s.err
}

func (s *stubExamService) ListExams(ctx context.Context, p auth.Principal) ([]*models.Exam, error) {
	return s.exams, s.err
}

func (s *stubExamService) StatExamFile(ctx context.Context, fileID string) (*blobstore.FileInfo, error) {
	return s.info, s.err
}

func (s *stubExamService) StreamExamFile(ctx context.Context, fileID string, w io.Writer) error {
	if s.err != nil {
		return s.err
	}
	_, err := w.Write([]byte("exam-bytes"))
	return err
}

func (s *stubExamService) UpdateExamStatus(ctx context.Context, p auth.Principal, id int64, status string) (*models.Exam, error) {
	return s.exam, s.err
}

func (s *stubExamService) DeleteExam(ctx context.Context, p auth.Principal, id int64) (*services.ExamDeleteResult, error) {
	return s.result, s.err
}

func examRouter(svc services.ExamService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	ctrl := NewExamController(svc)
	router.GET("/exams", ctrl.GetExams)
	router.POST("/exams", ctrl.UploadExam)
	router.GET("/exams/download/:fileId", ctrl.DownloadExam)
	router.DELETE("/exams", ctrl.DeleteExam)
	return router
}

func TestUploadExamRequiresFile(t *testing.T) {
	router := examRouter(&stubExamService{})

	req := httptest.NewRequest(http.MethodPost, "/exams", nil)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Exam file is required")
}

func TestDownloadExamSetsHeaders(t *testing.T) {
	info := &blobstore.FileInfo{Filename: "midterm.pdf", ContentType: "application/pdf", Length: 10}
	router := examRouter(&stubExamService{info: info})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/exams/download/any", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="midterm.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "exam-bytes", w.Body.String())
}

func TestDownloadExamNotFound(t *testing.T) {
	router := examRouter(&stubExamService{err: apperrors.ErrBlobNotFound})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/exams/download/any", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteExamReportsBlobCleanup(t *testing.T) {
	router := examRouter(&stubExamService{result: &services.ExamDeleteResult{BlobDeleted: true}})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/exams?id=5", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"blobDeleted":true`)
}

func TestDeleteExamForbidden(t *testing.T) {
	router := examRouter(&stubExamService{err: apperrors.ErrForbidden})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/exams?id=5", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Permission denied")
}

func TestDeleteExamRequiresID(t *testing.T) {
	router := examRouter(&stubExamService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/exams", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
