package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alijimale/institute-backend/internal/app/models"
	"github.com/alijimale/institute-backend/internal/pkg/apperrors"
	"github.com/alijimale/institute-backend/internal/pkg/logger"
)

// AttendanceRepository handles attendance database operations
type AttendanceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// AttendanceFilter narrows attendance queries. Nil fields are ignored.
type AttendanceFilter struct {
	ClassID   *int64
	StudentID *int64
	Day       *time.Time
	Status    *models.AttendanceStatus
}

// MarkAttendance records attendance for a student in a class on a given day.
// The UNIQUE (class_id, student_id, day) constraint makes this a single
// atomic upsert; the returned flag reports whether a new row was inserted
// rather than an existing one updated.
func (r *AttendanceRepository) MarkAttendance(ctx context.Context, a *models.Attendance) (bool, error) {
	sql, args, err := r.sb.Insert("attendance").
		Columns("class_id", "student_id", "day", "status", "notes", "marked_by").
		Values(a.ClassID, a.StudentID, a.Date, a.Status, a.Notes, a.MarkedBy).
		Suffix(`ON CONFLICT (class_id, student_id, day) DO UPDATE SET
			status = EXCLUDED.status,
			notes = EXCLUDED.notes,
			marked_by = EXCLUDED.marked_by,
			updated_at = NOW()
		RETURNING id, created_at, updated_at, (xmax = 0) AS inserted`).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building mark attendance SQL")
		return false, fmt.Errorf("failed to build mark attendance query: %w", err)
	}

	var inserted bool
	err = r.db.QueryRow(ctx, sql, args...).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt, &inserted)
	if err != nil {
		if isForeignKeyError(err) {
			return false, apperrors.NewNotFoundError("class or student not found")
		}
		logger.Error().Err(err).
			Int64("classID", a.ClassID).
			Int64("studentID", a.StudentID).
			Msg("Error executing mark attendance query")
		return false, fmt.Errorf("error marking attendance: %w", err)
	}
	return inserted, nil
}

// attendanceSelect joins class, student and marker so records carry their
// display fields.
func (r *AttendanceRepository) attendanceSelect() squirrel.SelectBuilder {
	return r.sb.Select(
		"a.id", "a.class_id", "a.student_id", "a.day", "a.status", "a.notes", "a.marked_by",
		"a.created_at", "a.updated_at",
		"c.name", "c.subject",
		"s.name", "s.student_code",
		"u.name", "u.email",
	).
		From("attendance a").
		Join("classes c ON c.id = a.class_id").
		Join("students s ON s.id = a.student_id").
		LeftJoin("users u ON u.id = a.marked_by")
}

func scanAttendance(row pgx.Row) (*models.Attendance, error) {
	a := &models.Attendance{}
	var markerName, markerEmail *string
	err := row.Scan(&a.ID, &a.ClassID, &a.StudentID, &a.Date, &a.Status, &a.Notes, &a.MarkedBy,
		&a.CreatedAt, &a.UpdatedAt,
		&a.ClassName, &a.ClassSubject,
		&a.StudentName, &a.StudentCode,
		&markerName, &markerEmail)
	if err != nil {
		return nil, err
	}
	if markerName != nil {
		a.MarkerName = *markerName
	}
	if markerEmail != nil {
		a.MarkerEmail = *markerEmail
	}
	return a, nil
}

// GetAttendanceByID retrieves a single attendance record with display fields.
func (r *AttendanceRepository) GetAttendanceByID(ctx context.Context, id int64) (*models.Attendance, error) {
	sql, args, err := r.attendanceSelect().
		Where(squirrel.Eq{"a.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get attendance query: %w", err)
	}

	record, err := scanAttendance(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAttendanceNotFound
		}
		logger.Error().Err(err).Int64("attendanceID", id).Msg("Error scanning attendance row")
		return nil, fmt.Errorf("error getting attendance by ID: %w", err)
	}
	return record, nil
}

// ListAttendance returns records matching the filter, most recent day first.
func (r *AttendanceRepository) ListAttendance(ctx context.Context, filter AttendanceFilter) ([]*models.Attendance, error) {
	builder := r.attendanceSelect().
		OrderBy("a.day DESC", "a.id DESC")

	if filter.ClassID != nil {
		builder = builder.Where(squirrel.Eq{"a.class_id": *filter.ClassID})
	}
	if filter.StudentID != nil {
		builder = builder.Where(squirrel.Eq{"a.student_id": *filter.StudentID})
	}
	if filter.Day != nil {
		builder = builder.Where(squirrel.Eq{"a.day": *filter.Day})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"a.status": *filter.Status})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list attendance query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list attendance query")
		return nil, fmt.Errorf("error querying attendance: %w", err)
	}
	defer rows.Close()

	records := []*models.Attendance{}
	for rows.Next() {
		record, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning attendance row: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendance rows: %w", err)
	}
	return records, nil
}

// UpdateAttendance applies the given column changes to an attendance record.
func (r *AttendanceRepository) UpdateAttendance(ctx context.Context, id int64, changes map[string]interface{}) error {
	if len(changes) == 0 {
		return nil
	}
	changes["updated_at"] = squirrel.Expr("NOW()")

	sql, args, err := r.sb.Update("attendance").
		SetMap(changes).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update attendance query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("attendanceID", id).Msg("Error executing update attendance query")
		return fmt.Errorf("error updating attendance: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAttendanceNotFound
	}
	return nil
}

// DeleteAttendance removes an attendance record by ID.
func (r *AttendanceRepository) DeleteAttendance(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("attendance").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete attendance query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("attendanceID", id).Msg("Error executing delete attendance query")
		return fmt.Errorf("error deleting attendance: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAttendanceNotFound
	}
	return nil
}
