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

// ClassRepository handles class database operations
type ClassRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewClassRepository creates a new ClassRepository
func NewClassRepository(db *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// classSelect joins the assigned teacher so listings carry the teacher's
// name and email without a second query.
func (r *ClassRepository) classSelect() squirrel.SelectBuilder {
	return r.sb.Select(
		"c.id", "c.name", "c.subject", "c.teacher_id", "c.academic_year",
		"c.created_at", "c.updated_at",
		"u.id", "u.name", "u.email",
	).
		From("classes c").
		LeftJoin("users u ON u.id = c.teacher_id")
}

func scanClass(row pgx.Row) (*models.Class, error) {
	c := &models.Class{}
	var teacherID *int64
	var teacherName, teacherEmail *string
	err := row.Scan(&c.ID, &c.Name, &c.Subject, &c.TeacherID, &c.AcademicYear,
		&c.CreatedAt, &c.UpdatedAt, &teacherID, &teacherName, &teacherEmail)
	if err != nil {
		return nil, err
	}
	if teacherID != nil {
		c.Teacher = &models.User{
			ID:    *teacherID,
			Name:  *teacherName,
			Email: *teacherEmail,
			Role:  models.RoleTeacher,
		}
	}
	return c, nil
}

// CreateClass inserts a new class and fills in generated fields.
func (r *ClassRepository) CreateClass(ctx context.Context, class *models.Class) error {
	sql, args, err := r.sb.Insert("classes").
		Columns("name", "subject", "teacher_id", "academic_year").
		Values(class.Name, class.Subject, class.TeacherID, class.AcademicYear).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create class SQL")
		return fmt.Errorf("failed to build create class query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&class.ID, &class.CreatedAt, &class.UpdatedAt)
	if err != nil {
		if isForeignKeyError(err) {
			return apperrors.ErrTeacherNotFound
		}
		logger.Error().Err(err).Str("name", class.Name).Msg("Error executing create class query")
		return fmt.Errorf("error creating class: %w", err)
	}
	return nil
}

// GetClassByID retrieves a class with its assigned teacher.
func (r *ClassRepository) GetClassByID(ctx context.Context, id int64) (*models.Class, error) {
	sql, args, err := r.classSelect().
		Where(squirrel.Eq{"c.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get class query: %w", err)
	}

	class, err := scanClass(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassNotFound
		}
		logger.Error().Err(err).Int64("classID", id).Msg("Error scanning class row")
		return nil, fmt.Errorf("error getting class by ID: %w", err)
	}
	return class, nil
}

// GetAllClasses lists classes with their teachers, newest first.
func (r *ClassRepository) GetAllClasses(ctx context.Context) ([]*models.Class, error) {
	sql, args, err := r.classSelect().
		OrderBy("c.created_at DESC", "c.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all classes query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all classes query")
		return nil, fmt.Errorf("error querying classes: %w", err)
	}
	defer rows.Close()

	classes := []*models.Class{}
	for rows.Next() {
		class, err := scanClass(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning class row: %w", err)
		}
		classes = append(classes, class)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating class rows: %w", err)
	}
	return classes, nil
}

// UpdateClass applies the given column changes to a class.
func (r *ClassRepository) UpdateClass(ctx context.Context, id int64, changes map[string]interface{}) error {
	if len(changes) == 0 {
		return nil
	}
	changes["updated_at"] = squirrel.Expr("NOW()")

	sql, args, err := r.sb.Update("classes").
		SetMap(changes).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update class query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if isForeignKeyError(err) {
			return apperrors.ErrTeacherNotFound
		}
		logger.Error().Err(err).Int64("classID", id).Msg("Error executing update class query")
		return fmt.Errorf("error updating class: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}
	return nil
}

// DeleteClass removes a class by ID. Attendance rows referencing the class
// are removed by the ON DELETE CASCADE on the foreign key.
func (r *ClassRepository) DeleteClass(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("classes").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete class query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("classID", id).Msg("Error executing delete class query")
		return fmt.Errorf("error deleting class: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}
	return nil
}
