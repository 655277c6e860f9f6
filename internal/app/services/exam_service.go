package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alijimale/institute-backend/internal/app/auth"
	"github.com/alijimale/institute-backend/internal/app/models"
	"github.com/alijimale/institute-backend/internal/db"
	"github.com/alijimale/institute-backend/internal/pkg/apperrors"
	"github.com/alijimale/institute-backend/internal/pkg/blobstore"
	"github.com/alijimale/institute-backend/internal/pkg/logger"
)

// MaxExamFileSize is the upload limit for exam documents.
const MaxExamFileSize = 10 << 20 // 10 MiB

// ExamDeleteResult reports the outcome of a deletion. BlobDeleted is false
// when the metadata was removed but the blob cleanup failed.
type ExamDeleteResult struct {
	BlobDeleted bool
}

// ExamService defines the interface for exam document operations
type ExamService interface {
	UploadExam(ctx context.Context, p auth.Principal, title, description string, fileHeader *multipart.FileHeader) (*models.Exam, error)
	ListExams(ctx context.Context, p auth.Principal) ([]*models.Exam, error)
	// StatExamFile resolves download metadata so callers can set response
	// headers before StreamExamFile writes the body. Downloads carry no
	// session check; the file id is the capability.
	StatExamFile(ctx context.Context, fileID string) (*blobstore.FileInfo, error)
	StreamExamFile(ctx context.Context, fileID string, w io.Writer) error
	UpdateExamStatus(ctx context.Context, p auth.Principal, id int64, status string) (*models.Exam, error)
	DeleteExam(ctx context.Context, p auth.Principal, id int64) (*ExamDeleteResult, error)
}

// examStore is the repository surface the service depends on, satisfied
// by repositories.ExamRepository.
type examStore interface {
	CreateExamTx(ctx context.Context, tx pgx.Tx, exam *models.Exam) error
	GetExamByID(ctx context.Context, id int64) (*models.Exam, error)
	ListExams(ctx context.Context, uploadedBy *int64) ([]*models.Exam, error)
	UpdateExamStatus(ctx context.Context, id int64, status models.ExamStatus) error
	DeleteExam(ctx context.Context, id int64) error
}

// examServiceImpl implements the ExamService interface
type examServiceImpl struct {
	pool     *pgxpool.Pool
	examRepo examStore
	blobs    *blobstore.Store
}

// NewExamService creates a new exam service instance
func NewExamService(pool *pgxpool.Pool, examRepo examStore, blobs *blobstore.Store) ExamService {
	return &examServiceImpl{pool: pool, examRepo: examRepo, blobs: blobs}
}

// UploadExam stores the file and its metadata in a single transaction so a
// failed upload leaves no orphaned record or blob behind.
func (s *examServiceImpl) UploadExam(ctx context.Context, p auth.Principal, title, description string, fileHeader *multipart.FileHeader) (*models.Exam, error) {
	if err := auth.Authorize(p, auth.ActionUploadExam, auth.Resource{}); err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.NewValidationError("Title is required")
	}
	if fileHeader == nil {
		return nil, apperrors.NewValidationError("Exam file is required")
	}
	if fileHeader.Size > MaxExamFileSize {
		return nil, apperrors.NewValidationError("File exceeds the 10 MB limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpload, err)
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	exam := &models.Exam{
		Title:       title,
		Description: strings.TrimSpace(description),
		FileName:    fileHeader.Filename,
		FileType:    contentType,
		UploadedBy:  p.UserID,
		Status:      models.ExamPending,
	}

	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		info, err := s.blobs.UploadTx(ctx, tx, fileHeader.Filename, contentType, file)
		if err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrUpload, err)
		}
		exam.BlobID = &info.ID
		exam.FileSize = info.Length
		return s.examRepo.CreateExamTx(ctx, tx, exam)
	})
	if err != nil {
		return nil, err
	}

	exam.FileURL = examFileURL(exam.BlobID)
	logger.Info().Int64("examID", exam.ID).Int64("size", exam.FileSize).Msg("Exam uploaded")
	return exam, nil
}

func examFileURL(blobID *uuid.UUID) string {
	if blobID == nil {
		return ""
	}
	return "/api/exams/download/" + blobID.String()
}

// ListExams returns exams. Admins and managers see every upload; teachers
// only their own.
func (s *examServiceImpl) ListExams(ctx context.Context, p auth.Principal) ([]*models.Exam, error) {
	if p.UserID <= 0 {
		return nil, apperrors.ErrUnauthorized
	}

	var uploadedBy *int64
	if err := auth.Authorize(p, auth.ActionViewAllExams, auth.Resource{}); err != nil {
		uploadedBy = &p.UserID
	}

	exams, err := s.examRepo.ListExams(ctx, uploadedBy)
	if err != nil {
		return nil, err
	}
	for _, exam := range exams {
		exam.FileURL = examFileURL(exam.BlobID)
	}
	return exams, nil
}

// StatExamFile resolves the blob metadata for a download.
func (s *examServiceImpl) StatExamFile(ctx context.Context, fileID string) (*blobstore.FileInfo, error) {
	id, err := uuid.Parse(fileID)
	if err != nil {
		return nil, apperrors.ErrInvalidID
	}
	return s.blobs.Stat(ctx, id)
}

// StreamExamFile writes the blob's chunks to w in order.
func (s *examServiceImpl) StreamExamFile(ctx context.Context, fileID string, w io.Writer) error {
	id, err := uuid.Parse(fileID)
	if err != nil {
		return apperrors.ErrInvalidID
	}
	return s.blobs.Open(ctx, id, w)
}

// UpdateExamStatus moves an exam through review.
func (s *examServiceImpl) UpdateExamStatus(ctx context.Context, p auth.Principal, id int64, status string) (*models.Exam, error) {
	if err := auth.Authorize(p, auth.ActionReviewExam, auth.Resource{}); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, apperrors.NewValidationError("Exam ID is required")
	}

	examStatus := models.ExamStatus(strings.TrimSpace(status))
	if !examStatus.Valid() {
		return nil, apperrors.NewValidationError("Invalid exam status")
	}

	if err := s.examRepo.UpdateExamStatus(ctx, id, examStatus); err != nil {
		return nil, err
	}
	exam, err := s.examRepo.GetExamByID(ctx, id)
	if err != nil {
		return nil, err
	}
	exam.FileURL = examFileURL(exam.BlobID)
	return exam, nil
}

// DeleteExam removes the metadata record, then cleans up the blob. Blob
// cleanup is best effort: a failure there is reported, not fatal.
func (s *examServiceImpl) DeleteExam(ctx context.Context, p auth.Principal, id int64) (*ExamDeleteResult, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("Exam ID is required")
	}

	exam, err := s.examRepo.GetExamByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(p, auth.ActionDeleteExam, auth.Resource{OwnerID: exam.UploadedBy}); err != nil {
		return nil, err
	}

	if err := s.examRepo.DeleteExam(ctx, id); err != nil {
		return nil, err
	}

	result := &ExamDeleteResult{}
	if exam.BlobID != nil {
		if err := s.blobs.Delete(ctx, *exam.BlobID); err != nil {
			logger.Warn().Err(err).Int64("examID", id).Str("blobId", exam.BlobID.String()).
				Msg("Exam blob cleanup failed")
		} else {
			result.BlobDeleted = true
		}
	}
	return result, nil
}
