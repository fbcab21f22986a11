package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/hakif/knowforum/internal/app/models"
	"github.com/hakif/knowforum/internal/app/models/dto"
	"github.com/hakif/knowforum/internal/pkg/apperrors"
	"github.com/hakif/knowforum/internal/pkg/dberrors"
	"github.com/hakif/knowforum/internal/pkg/helpers"
	"github.com/hakif/knowforum/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GetAllCoursesParams holds filters and pagination for course listings.
type GetAllCoursesParams struct {
	Status    *models.CourseStatus
	CreatedBy *int64
	MemberID  *int64
	Page      int
	Size      int
}

// CourseRepository handles database operations for courses.
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *CourseRepository) selectCourseQuery() squirrel.SelectBuilder {
	return r.sb.Select(
		"c.id", "c.name", "c.description", "c.access_code", "c.created_by",
		"c.status", "c.max_members", "c.semester_start", "c.semester_end",
		"c.created_at", "c.updated_at",
	).From("courses c")
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var c models.Course
	err := row.Scan(
		&c.ID, &c.Name, &c.Description, &c.AccessCode, &c.CreatedBy,
		&c.Status, &c.MaxMembers, &c.SemesterStart, &c.SemesterEnd,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Msg("Error scanning course row")
		return nil, err
	}
	return &c, nil
}

// CreateCourse inserts a new course and returns its ID. A taken access code
// maps to apperrors.ErrAccessCodeExists.
func (r *CourseRepository) CreateCourse(ctx context.Context, course *models.Course) (int64, error) {
	sql, args, err := r.sb.Insert("courses").
		Columns("name", "description", "access_code", "created_by", "status", "max_members", "semester_start", "semester_end").
		Values(course.Name, course.Description, course.AccessCode, course.CreatedBy, course.Status, course.MaxMembers, course.SemesterStart, course.SemesterEnd).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create course SQL")
		return 0, fmt.Errorf("failed to build create course query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "courses_access_code_key") {
			return 0, apperrors.ErrAccessCodeExists
		}
		logger.Error().Err(err).Str("name", course.Name).Msg("Error executing create course query")
		return 0, fmt.Errorf("error creating course: %w", err)
	}

	return id, nil
}

// GetCourseByID retrieves a course by ID. Soft-deleted courses are treated as
// absent.
func (r *CourseRepository) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.selectCourseQuery().
		Where(squirrel.Eq{"c.id": id}).
		Where(squirrel.NotEq{"c.status": models.CourseDeleted}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get course by ID SQL")
		return nil, err
	}
	return scanCourse(r.db.QueryRow(ctx, sql, args...))
}

// GetCourseByAccessCode retrieves a non-deleted course by its access code.
func (r *CourseRepository) GetCourseByAccessCode(ctx context.Context, accessCode string) (*models.Course, error) {
	sql, args, err := r.selectCourseQuery().
		Where(squirrel.Eq{"c.access_code": accessCode}).
		Where(squirrel.NotEq{"c.status": models.CourseDeleted}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get course by access code SQL")
		return nil, err
	}

	course, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			// The caller only knows the code was wrong, not whether a course exists.
			return nil, apperrors.ErrInvalidAccessCode
		}
		return nil, err
	}
	return course, nil
}

// GetAllCourses retrieves a paginated, filtered list of courses.
// Soft-deleted courses are always excluded.
func (r *CourseRepository) GetAllCourses(ctx context.Context, params GetAllCoursesParams) ([]*models.Course, dto.PaginationInfo, error) {
	sqlBuilder := r.selectCourseQuery().Where(squirrel.NotEq{"c.status": models.CourseDeleted})
	countBuilder := r.sb.Select("count(*)").From("courses c").Where(squirrel.NotEq{"c.status": models.CourseDeleted})

	if params.Status != nil {
		sqlBuilder = sqlBuilder.Where(squirrel.Eq{"c.status": *params.Status})
		countBuilder = countBuilder.Where(squirrel.Eq{"c.status": *params.Status})
	}
	if params.CreatedBy != nil {
		sqlBuilder = sqlBuilder.Where(squirrel.Eq{"c.created_by": *params.CreatedBy})
		countBuilder = countBuilder.Where(squirrel.Eq{"c.created_by": *params.CreatedBy})
	}
	if params.MemberID != nil {
		memberJoin := "course_members cm ON cm.course_id = c.id"
		sqlBuilder = sqlBuilder.Join(memberJoin).Where(squirrel.Eq{"cm.user_id": *params.MemberID})
		countBuilder = countBuilder.Join(memberJoin).Where(squirrel.Eq{"cm.user_id": *params.MemberID})
	}

	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count courses SQL")
		return nil, dto.PaginationInfo{}, err
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error executing count courses query")
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, params.Page, params.Size)
	if totalItems == 0 {
		return []*models.Course{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(params.Page, params.Size)
	sqlStr, args, err := sqlBuilder.
		OrderBy("c.created_at DESC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all courses SQL")
		return nil, dto.PaginationInfo{}, err
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all courses query")
		return nil, dto.PaginationInfo{}, err
	}
	defer rows.Close()

	courses := make([]*models.Course, 0)
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, dto.PaginationInfo{}, err
		}
		courses = append(courses, course)
	}
	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating course rows")
		return nil, dto.PaginationInfo{}, err
	}

	return courses, pagination, nil
}

// UpdateCourse updates the mutable fields of a course.
func (r *CourseRepository) UpdateCourse(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Update("courses").
		Set("name", course.Name).
		Set("description", course.Description).
		Set("status", course.Status).
		Set("max_members", course.MaxMembers).
		Set("semester_start", course.SemesterStart).
		Set("semester_end", course.SemesterEnd).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": course.ID}).
		Where(squirrel.NotEq{"status": models.CourseDeleted}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update course SQL")
		return err
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", course.ID).Msg("Error executing update course query")
		return fmt.Errorf("error updating course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// SoftDeleteCourse marks a course as deleted. The row and its notes are kept.
func (r *CourseRepository) SoftDeleteCourse(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Update("courses").
		Set("status", models.CourseDeleted).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": models.CourseDeleted}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete course SQL")
		return err
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", id).Msg("Error executing delete course query")
		return fmt.Errorf("error deleting course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// CountNotes returns the number of notes in a course.
func (r *CourseRepository) CountNotes(ctx context.Context, courseID int64) (int64, error) {
	sql, args, err := r.sb.Select("count(*)").From("notes").Where(squirrel.Eq{"course_id": courseID}).ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error counting course notes")
		return 0, err
	}
	return count, nil
}
