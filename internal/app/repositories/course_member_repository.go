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

// CourseMemberRepository handles database operations for course memberships.
type CourseMemberRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseMemberRepository creates a new CourseMemberRepository.
func NewCourseMemberRepository(db *pgxpool.Pool) *CourseMemberRepository {
	return &CourseMemberRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// AddMember inserts a membership row. The unique (course_id, user_id)
// constraint is the only guard against concurrent duplicate joins; a
// violation maps to apperrors.ErrAlreadyMember.
func (r *CourseMemberRepository) AddMember(ctx context.Context, member *models.CourseMember) (int64, error) {
	sql, args, err := r.sb.Insert("course_members").
		Columns("course_id", "user_id", "role").
		Values(member.CourseID, member.UserID, member.Role).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building add course member SQL")
		return 0, fmt.Errorf("failed to build add course member query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_course_user") {
			return 0, apperrors.ErrAlreadyMember
		}
		logger.Error().Err(err).Int64("courseID", member.CourseID).Int64("userID", member.UserID).Msg("Error executing add course member query")
		return 0, fmt.Errorf("error adding course member: %w", err)
	}

	return id, nil
}

// GetMember fetches the membership of a user in a course, or
// apperrors.ErrNotCourseMember when there is none.
func (r *CourseMemberRepository) GetMember(ctx context.Context, courseID, userID int64) (*models.CourseMember, error) {
	sql, args, err := r.sb.Select("id", "course_id", "user_id", "role", "joined_at").
		From("course_members").
		Where(squirrel.Eq{"course_id": courseID, "user_id": userID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get course member SQL")
		return nil, err
	}

	var m models.CourseMember
	err = r.db.QueryRow(ctx, sql, args...).Scan(&m.ID, &m.CourseID, &m.UserID, &m.Role, &m.JoinedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotCourseMember
		}
		logger.Error().Err(err).Msg("Error scanning course member row")
		return nil, err
	}
	return &m, nil
}

// IsMember reports whether a user belongs to a course.
func (r *CourseMemberRepository) IsMember(ctx context.Context, courseID, userID int64) (bool, error) {
	_, err := r.GetMember(ctx, courseID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotCourseMember) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// CountMembers returns the number of members in a course.
func (r *CourseMemberRepository) CountMembers(ctx context.Context, courseID int64) (int64, error) {
	sql, args, err := r.sb.Select("count(*)").From("course_members").Where(squirrel.Eq{"course_id": courseID}).ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error counting course members")
		return 0, err
	}
	return count, nil
}

// GetMembers retrieves a paginated list of course members with their
// profiles, earliest joiners first.
func (r *CourseMemberRepository) GetMembers(ctx context.Context, courseID int64, page, size int) ([]*models.CourseMember, dto.PaginationInfo, error) {
	totalItems, err := r.CountMembers(ctx, courseID)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, page, size)
	if totalItems == 0 {
		return []*models.CourseMember{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	sql, args, err := r.sb.Select(
		"cm.id", "cm.course_id", "cm.user_id", "cm.role", "cm.joined_at",
		"p.id", "p.email", "p.display_name", "p.school", "p.major", "p.role", "p.avatar_url", "p.created_at", "p.updated_at",
	).
		From("course_members cm").
		Join("profiles p ON cm.user_id = p.id").
		Where(squirrel.Eq{"cm.course_id": courseID}).
		OrderBy("cm.joined_at ASC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get course members SQL")
		return nil, dto.PaginationInfo{}, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error executing get course members query")
		return nil, dto.PaginationInfo{}, err
	}
	defer rows.Close()

	members := make([]*models.CourseMember, 0)
	for rows.Next() {
		var m models.CourseMember
		var p models.Profile
		err := rows.Scan(
			&m.ID, &m.CourseID, &m.UserID, &m.Role, &m.JoinedAt,
			&p.ID, &p.Email, &p.DisplayName, &p.School, &p.Major, &p.Role, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning course member with profile")
			return nil, dto.PaginationInfo{}, err
		}
		m.User = &p
		members = append(members, &m)
	}
	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating course member rows")
		return nil, dto.PaginationInfo{}, err
	}

	return members, pagination, nil
}

// RemoveMember deletes a membership row.
func (r *CourseMemberRepository) RemoveMember(ctx context.Context, courseID, userID int64) error {
	sql, args, err := r.sb.Delete("course_members").
		Where(squirrel.Eq{"course_id": courseID, "user_id": userID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building remove course member SQL")
		return err
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing remove course member query")
		return fmt.Errorf("error removing course member: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotCourseMember
	}
	return nil
}
