package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/hakif/knowforum/internal/app/models"
	"github.com/hakif/knowforum/internal/app/models/dto"
	"github.com/hakif/knowforum/internal/pkg/apperrors"
	"github.com/hakif/knowforum/internal/pkg/helpers"
	"github.com/hakif/knowforum/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TeacherApplicationRepository handles database operations for teacher
// applications.
type TeacherApplicationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTeacherApplicationRepository creates a new TeacherApplicationRepository.
func NewTeacherApplicationRepository(db *pgxpool.Pool) *TeacherApplicationRepository {
	return &TeacherApplicationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *TeacherApplicationRepository) selectApplicationQuery() squirrel.SelectBuilder {
	return r.sb.Select(
		"ta.id", "ta.applicant_id", "ta.application_info", "ta.status",
		"ta.reviewed_by", "ta.review_comment", "ta.applied_at", "ta.reviewed_at",
		"p.id", "p.email", "p.display_name", "p.school", "p.major", "p.role", "p.avatar_url", "p.created_at", "p.updated_at",
	).From("teacher_applications ta").
		Join("profiles p ON ta.applicant_id = p.id")
}

func scanApplication(row pgx.Row) (*models.TeacherApplication, error) {
	var a models.TeacherApplication
	var p models.Profile
	err := row.Scan(
		&a.ID, &a.ApplicantID, &a.ApplicationInfo, &a.Status,
		&a.ReviewedBy, &a.ReviewComment, &a.AppliedAt, &a.ReviewedAt,
		&p.ID, &p.Email, &p.DisplayName, &p.School, &p.Major, &p.Role, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		logger.Error().Err(err).Msg("Error scanning teacher application row")
		return nil, err
	}
	a.Applicant = &p
	return &a, nil
}

// CreateApplication inserts a pending application and returns its ID.
func (r *TeacherApplicationRepository) CreateApplication(ctx context.Context, applicantID int64, applicationInfo string) (int64, error) {
	sql, args, err := r.sb.Insert("teacher_applications").
		Columns("applicant_id", "application_info", "status").
		Values(applicantID, applicationInfo, models.ApplicationPending).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create teacher application SQL")
		return 0, fmt.Errorf("failed to build create teacher application query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Int64("applicantID", applicantID).Msg("Error executing create teacher application query")
		return 0, fmt.Errorf("error creating teacher application: %w", err)
	}

	return id, nil
}

// GetApplicationByID retrieves an application with the applicant profile.
func (r *TeacherApplicationRepository) GetApplicationByID(ctx context.Context, id int64) (*models.TeacherApplication, error) {
	sql, args, err := r.selectApplicationQuery().Where(squirrel.Eq{"ta.id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get teacher application by ID SQL")
		return nil, err
	}
	return scanApplication(r.db.QueryRow(ctx, sql, args...))
}

// HasPendingApplication reports whether the applicant already has an
// unreviewed application.
func (r *TeacherApplicationRepository) HasPendingApplication(ctx context.Context, applicantID int64) (bool, error) {
	sql, args, err := r.sb.Select("count(*)").
		From("teacher_applications").
		Where(squirrel.Eq{"applicant_id": applicantID, "status": models.ApplicationPending}).
		ToSql()
	if err != nil {
		return false, err
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Int64("applicantID", applicantID).Msg("Error counting pending applications")
		return false, err
	}
	return count > 0, nil
}

// GetAllApplications lists applications, optionally filtered by status,
// oldest first so reviewers work the queue in order.
func (r *TeacherApplicationRepository) GetAllApplications(ctx context.Context, status *models.ApplicationStatus, page, size int) ([]*models.TeacherApplication, dto.PaginationInfo, error) {
	sqlBuilder := r.selectApplicationQuery()
	countBuilder := r.sb.Select("count(*)").From("teacher_applications ta")

	if status != nil {
		sqlBuilder = sqlBuilder.Where(squirrel.Eq{"ta.status": *status})
		countBuilder = countBuilder.Where(squirrel.Eq{"ta.status": *status})
	}

	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count teacher applications SQL")
		return nil, dto.PaginationInfo{}, err
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error executing count teacher applications query")
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, page, size)
	if totalItems == 0 {
		return []*models.TeacherApplication{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	sql, args, err := sqlBuilder.
		OrderBy("ta.applied_at ASC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all teacher applications SQL")
		return nil, dto.PaginationInfo{}, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all teacher applications query")
		return nil, dto.PaginationInfo{}, err
	}
	defer rows.Close()

	applications := make([]*models.TeacherApplication, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, dto.PaginationInfo{}, err
		}
		applications = append(applications, app)
	}
	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating teacher application rows")
		return nil, dto.PaginationInfo{}, err
	}

	return applications, pagination, nil
}

// ReviewApplication records a review decision on a still-pending application.
// The status guard in the WHERE clause makes a second review of the same
// application report apperrors.ErrApplicationReviewed.
func (r *TeacherApplicationRepository) ReviewApplication(ctx context.Context, id int64, status models.ApplicationStatus, reviewerID int64, comment *string) error {
	sql, args, err := r.sb.Update("teacher_applications").
		Set("status", status).
		Set("reviewed_by", reviewerID).
		Set("review_comment", comment).
		Set("reviewed_at", time.Now()).
		Where(squirrel.Eq{"id": id, "status": models.ApplicationPending}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building review teacher application SQL")
		return err
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("applicationID", id).Msg("Error executing review teacher application query")
		return fmt.Errorf("error reviewing teacher application: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Distinguish missing from already-reviewed.
		if _, getErr := r.GetApplicationByID(ctx, id); getErr != nil {
			return getErr
		}
		return apperrors.ErrApplicationReviewed
	}
	return nil
}
