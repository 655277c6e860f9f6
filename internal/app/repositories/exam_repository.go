package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alijimale/institute-backend/internal/app/models"
	"github.com/alijimale/institute-backend/internal/pkg/apperrors"
	"github.com/alijimale/institute-backend/internal/pkg/logger"
)

// ExamRepository handles exam metadata database operations
type ExamRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewExamRepository creates a new ExamRepository
func NewExamRepository(db *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateExamTx inserts exam metadata within an existing transaction so the
// record commits together with its blob.
func (r *ExamRepository) CreateExamTx(ctx context.Context, tx pgx.Tx, exam *models.Exam) error {
	sql, args, err := r.sb.Insert("exams").
		Columns("title", "description", "file_name", "file_type", "file_size", "blob_id", "uploaded_by", "status").
		Values(exam.Title, exam.Description, exam.FileName, exam.FileType, exam.FileSize,
			exam.BlobID, exam.UploadedBy, exam.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create exam SQL")
		return fmt.Errorf("failed to build create exam query: %w", err)
	}

	err = tx.QueryRow(ctx, sql, args...).Scan(&exam.ID, &exam.CreatedAt, &exam.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Str("title", exam.Title).Msg("Error executing create exam query")
		return fmt.Errorf("error creating exam: %w", err)
	}
	return nil
}

// examSelect joins the uploader for display.
func (r *ExamRepository) examSelect() squirrel.SelectBuilder {
	return r.sb.Select(
		"e.id", "e.title", "e.description", "e.file_name", "e.file_type", "e.file_size",
		"e.blob_id", "e.uploaded_by", "e.status", "e.created_at", "e.updated_at",
		"u.name",
	).
		From("exams e").
		LeftJoin("users u ON u.id = e.uploaded_by")
}

func scanExam(row pgx.Row) (*models.Exam, error) {
	e := &models.Exam{}
	var uploaderName *string
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.FileName, &e.FileType, &e.FileSize,
		&e.BlobID, &e.UploadedBy, &e.Status, &e.CreatedAt, &e.UpdatedAt, &uploaderName)
	if err != nil {
		return nil, err
	}
	if uploaderName != nil {
		e.UploaderName = *uploaderName
	}
	return e, nil
}

// GetExamByID retrieves exam metadata by ID.
func (r *ExamRepository) GetExamByID(ctx context.Context, id int64) (*models.Exam, error) {
	sql, args, err := r.examSelect().
		Where(squirrel.Eq{"e.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get exam query: %w", err)
	}

	exam, err := scanExam(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrExamNotFound
		}
		logger.Error().Err(err).Int64("examID", id).Msg("Error scanning exam row")
		return nil, fmt.Errorf("error getting exam by ID: %w", err)
	}
	return exam, nil
}

// ListExams returns exams, newest first. When uploadedBy is non-nil the
// listing is restricted to that uploader.
func (r *ExamRepository) ListExams(ctx context.Context, uploadedBy *int64) ([]*models.Exam, error) {
	builder := r.examSelect().
		OrderBy("e.created_at DESC", "e.id DESC")
	if uploadedBy != nil {
		builder = builder.Where(squirrel.Eq{"e.uploaded_by": *uploadedBy})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list exams query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list exams query")
		return nil, fmt.Errorf("error querying exams: %w", err)
	}
	defer rows.Close()

	exams := []*models.Exam{}
	for rows.Next() {
		exam, err := scanExam(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning exam row: %w", err)
		}
		exams = append(exams, exam)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exam rows: %w", err)
	}
	return exams, nil
}

// UpdateExamStatus changes an exam's review status.
func (r *ExamRepository) UpdateExamStatus(ctx context.Context, id int64, status models.ExamStatus) error {
	sql, args, err := r.sb.Update("exams").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update exam status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("examID", id).Msg("Error executing update exam status query")
		return fmt.Errorf("error updating exam status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrExamNotFound
	}
	return nil
}

// DeleteExam removes exam metadata by ID.
func (r *ExamRepository) DeleteExam(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("exams").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete exam query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("examID", id).Msg("Error executing delete exam query")
		return fmt.Errorf("error deleting exam: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrExamNotFound
	}
	return nil
}
