package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/hakif/knowforum/internal/app/models"
	"github.com/hakif/knowforum/internal/pkg/apperrors"
	"github.com/hakif/knowforum/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ScaffoldRepository handles database operations for scaffolds.
type ScaffoldRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewScaffoldRepository creates a new ScaffoldRepository.
func NewScaffoldRepository(db *pgxpool.Pool) *ScaffoldRepository {
	return &ScaffoldRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateScaffold inserts a new scaffold and returns its ID.
func (r *ScaffoldRepository) CreateScaffold(ctx context.Context, scaffold *models.Scaffold) (int64, error) {
	sql, args, err := r.sb.Insert("scaffolds").
		Columns("text", "category", "course_id").
		Values(scaffold.Text, scaffold.Category, scaffold.CourseID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create scaffold SQL")
		return 0, fmt.Errorf("failed to build create scaffold query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create scaffold query")
		return 0, fmt.Errorf("error creating scaffold: %w", err)
	}

	return id, nil
}

// GetScaffoldByID retrieves a scaffold by its ID.
func (r *ScaffoldRepository) GetScaffoldByID(ctx context.Context, id int64) (*models.Scaffold, error) {
	sql, args, err := r.sb.Select("id", "text", "category", "course_id", "created_at").
		From("scaffolds").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get scaffold by ID SQL")
		return nil, err
	}

	var s models.Scaffold
	err = r.db.QueryRow(ctx, sql, args...).Scan(&s.ID, &s.Text, &s.Category, &s.CourseID, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		logger.Error().Err(err).Msg("Error scanning scaffold row")
		return nil, err
	}
	return &s, nil
}

// GetScaffolds lists scaffolds visible in a course: global scaffolds
// (course_id NULL) plus course-specific ones. With courseID nil only global
// scaffolds are returned.
func (r *ScaffoldRepository) GetScaffolds(ctx context.Context, courseID *int64) ([]*models.Scaffold, error) {
	sqlBuilder := r.sb.Select("id", "text", "category", "course_id", "created_at").From("scaffolds")
	if courseID != nil {
		sqlBuilder = sqlBuilder.Where(squirrel.Or{
			squirrel.Eq{"course_id": nil},
			squirrel.Eq{"course_id": *courseID},
		})
	} else {
		sqlBuilder = sqlBuilder.Where(squirrel.Eq{"course_id": nil})
	}

	sql, args, err := sqlBuilder.OrderBy("category ASC", "id ASC").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get scaffolds SQL")
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get scaffolds query")
		return nil, err
	}
	defer rows.Close()

	scaffolds := make([]*models.Scaffold, 0)
	for rows.Next() {
		var s models.Scaffold
		err := rows.Scan(&s.ID, &s.Text, &s.Category, &s.CourseID, &s.CreatedAt)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning scaffold row")
			return nil, err
		}
		scaffolds = append(scaffolds, &s)
	}
	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating scaffold rows")
		return nil, err
	}

	return scaffolds, nil
}
