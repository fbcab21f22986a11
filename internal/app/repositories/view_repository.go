package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/hakif/knowforum/internal/app/models"
	"github.com/hakif/knowforum/internal/pkg/apperrors"
	"github.com/hakif/knowforum/internal/pkg/dberrors"
	"github.com/hakif/knowforum/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ViewRepository handles database operations for views.
type ViewRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewViewRepository creates a new ViewRepository.
func NewViewRepository(db *pgxpool.Pool) *ViewRepository {
	return &ViewRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateView inserts a new view and returns its ID. The partial unique index
// on (course_id) WHERE is_main_view enforces at most one main view per
// course; a violation maps to apperrors.ErrMainViewExists.
func (r *ViewRepository) CreateView(ctx context.Context, view *models.View) (int64, error) {
	sql, args, err := r.sb.Insert("views").
		Columns("course_id", "name", "description", "created_by", "is_main_view").
		Values(view.CourseID, view.Name, view.Description, view.CreatedBy, view.IsMainView).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create view SQL")
		return 0, fmt.Errorf("failed to build create view query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_views_main_per_course") {
			return 0, apperrors.ErrMainViewExists
		}
		logger.Error().Err(err).Int64("courseID", view.CourseID).Msg("Error executing create view query")
		return 0, fmt.Errorf("error creating view: %w", err)
	}

	return id, nil
}

// GetViewByID retrieves a view with its note count.
func (r *ViewRepository) GetViewByID(ctx context.Context, id int64) (*models.View, error) {
	sql, args, err := r.sb.Select(
		"v.id", "v.course_id", "v.name", "v.description", "v.created_by",
		"v.is_main_view", "v.created_at", "v.updated_at",
		"(SELECT count(*) FROM notes n WHERE n.view_id = v.id) AS note_count",
	).
		From("views v").
		Where(squirrel.Eq{"v.id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get view by ID SQL")
		return nil, err
	}

	var v models.View
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&v.ID, &v.CourseID, &v.Name, &v.Description, &v.CreatedBy,
		&v.IsMainView, &v.CreatedAt, &v.UpdatedAt, &v.NoteCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrViewNotFound
		}
		logger.Error().Err(err).Msg("Error scanning view row")
		return nil, err
	}
	return &v, nil
}

// GetViewsByCourse lists the views of a course with note counts, main view
// first.
func (r *ViewRepository) GetViewsByCourse(ctx context.Context, courseID int64) ([]*models.View, error) {
	sql, args, err := r.sb.Select(
		"v.id", "v.course_id", "v.name", "v.description", "v.created_by",
		"v.is_main_view", "v.created_at", "v.updated_at",
		"(SELECT count(*) FROM notes n WHERE n.view_id = v.id) AS note_count",
	).
		From("views v").
		Where(squirrel.Eq{"v.course_id": courseID}).
		OrderBy("v.is_main_view DESC", "v.created_at ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get views by course SQL")
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error executing get views by course query")
		return nil, err
	}
	defer rows.Close()

	views := make([]*models.View, 0)
	for rows.Next() {
		var v models.View
		err := rows.Scan(
			&v.ID, &v.CourseID, &v.Name, &v.Description, &v.CreatedBy,
			&v.IsMainView, &v.CreatedAt, &v.UpdatedAt, &v.NoteCount,
		)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning view row")
			return nil, err
		}
		views = append(views, &v)
	}
	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating view rows")
		return nil, err
	}

	return views, nil
}

// UpdateView updates a view's name and description. The main-view flag is
// immutable after creation.
func (r *ViewRepository) UpdateView(ctx context.Context, view *models.View) error {
	sql, args, err := r.sb.Update("views").
		Set("name", view.Name).
		Set("description", view.Description).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": view.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update view SQL")
		return err
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("viewID", view.ID).Msg("Error executing update view query")
		return fmt.Errorf("error updating view: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrViewNotFound
	}
	return nil
}

// DeleteView removes a view. Notes in the view survive with view_id set NULL
// by the FK.
func (r *ViewRepository) DeleteView(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("views").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete view SQL")
		return err
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("viewID", id).Msg("Error executing delete view query")
		return fmt.Errorf("error deleting view: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrViewNotFound
	}
	return nil
}
