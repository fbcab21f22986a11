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

// ProfileRepository handles database operations for profiles.
type ProfileRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *ProfileRepository) selectProfileQuery() squirrel.SelectBuilder {
	return r.sb.Select(
		"id", "email", "password_hash", "display_name", "school", "major",
		"role", "avatar_url", "created_at", "updated_at",
	).From("profiles")
}

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(
		&p.ID, &p.Email, &p.PasswordHash, &p.DisplayName, &p.School, &p.Major,
		&p.Role, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		logger.Error().Err(err).Msg("Error scanning profile row")
		return nil, err
	}
	return &p, nil
}

// CreateProfile inserts a new profile and returns its ID. Duplicate emails
// map to apperrors.ErrEmailAlreadyExists.
func (r *ProfileRepository) CreateProfile(ctx context.Context, profile *models.Profile) (int64, error) {
	sql, args, err := r.sb.Insert("profiles").
		Columns("email", "password_hash", "display_name", "school", "major", "role", "avatar_url").
		Values(profile.Email, profile.PasswordHash, profile.DisplayName, profile.School, profile.Major, profile.Role, profile.AvatarURL).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create profile SQL")
		return 0, fmt.Errorf("failed to build create profile query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "profiles_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", profile.Email).Msg("Error executing create profile query")
		return 0, fmt.Errorf("error creating profile: %w", err)
	}

	return id, nil
}

// GetProfileByID retrieves a profile by its ID.
func (r *ProfileRepository) GetProfileByID(ctx context.Context, id int64) (*models.Profile, error) {
	sql, args, err := r.selectProfileQuery().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get profile by ID SQL")
		return nil, err
	}
	return scanProfile(r.db.QueryRow(ctx, sql, args...))
}

// GetProfileByEmail retrieves a profile by email.
func (r *ProfileRepository) GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	sql, args, err := r.selectProfileQuery().Where(squirrel.Eq{"email": email}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get profile by email SQL")
		return nil, err
	}
	return scanProfile(r.db.QueryRow(ctx, sql, args...))
}

// UpdateProfile updates the mutable fields of a profile.
func (r *ProfileRepository) UpdateProfile(ctx context.Context, profile *models.Profile) error {
	sql, args, err := r.sb.Update("profiles").
		Set("display_name", profile.DisplayName).
		Set("school", profile.School).
		Set("major", profile.Major).
		Set("avatar_url", profile.AvatarURL).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": profile.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update profile SQL")
		return err
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("profileID", profile.ID).Msg("Error executing update profile query")
		return fmt.Errorf("error updating profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProfileNotFound
	}
	return nil
}

// UpdateProfileRole changes a profile's role. Used when a teacher application
// is approved.
func (r *ProfileRepository) UpdateProfileRole(ctx context.Context, id int64, role models.Role) error {
	sql, args, err := r.sb.Update("profiles").
		Set("role", role).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update profile role SQL")
		return err
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("profileID", id).Msg("Error executing update profile role query")
		return fmt.Errorf("error updating profile role: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProfileNotFound
	}
	return nil
}

// GetAllProfiles returns a paginated list of profiles, newest first.
func (r *ProfileRepository) GetAllProfiles(ctx context.Context, page, size int) ([]*models.Profile, dto.PaginationInfo, error) {
	countSql, countArgs, err := r.sb.Select("count(*)").From("profiles").ToSql()
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error counting profiles")
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, page, size)
	if totalItems == 0 {
		return []*models.Profile{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	sql, args, err := r.selectProfileQuery().
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all profiles SQL")
		return nil, dto.PaginationInfo{}, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all profiles query")
		return nil, dto.PaginationInfo{}, err
	}
	defer rows.Close()

	profiles := make([]*models.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, dto.PaginationInfo{}, err
		}
		profiles = append(profiles, p)
	}
	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating profile rows")
		return nil, dto.PaginationInfo{}, err
	}

	return profiles, pagination, nil
}
