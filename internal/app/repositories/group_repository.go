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

// GroupRepository handles database operations for groups and group members.
type GroupRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewGroupRepository creates a new GroupRepository.
func NewGroupRepository(db *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateGroup inserts a new group and returns its ID.
func (r *GroupRepository) CreateGroup(ctx context.Context, group *models.Group) (int64, error) {
	sql, args, err := r.sb.Insert("groups").
		Columns("course_id", "name", "description", "created_by", "group_type", "max_members").
		Values(group.CourseID, group.Name, group.Description, group.CreatedBy, group.GroupType, group.MaxMembers).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create group SQL")
		return 0, fmt.Errorf("failed to build create group query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", group.CourseID).Msg("Error executing create group query")
		return 0, fmt.Errorf("error creating group: %w", err)
	}

	return id, nil
}

// GetGroupByID retrieves a group by its ID.
func (r *GroupRepository) GetGroupByID(ctx context.Context, id int64) (*models.Group, error) {
	sql, args, err := r.sb.Select("id", "course_id", "name", "description", "created_by", "group_type", "max_members", "created_at").
		From("groups").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get group by ID SQL")
		return nil, err
	}

	var g models.Group
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&g.ID, &g.CourseID, &g.Name, &g.Description, &g.CreatedBy, &g.GroupType, &g.MaxMembers, &g.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGroupNotFound
		}
		logger.Error().Err(err).Msg("Error scanning group row")
		return nil, err
	}
	return &g, nil
}

// GetGroupsByCourse lists the groups of a course.
func (r *GroupRepository) GetGroupsByCourse(ctx context.Context, courseID int64) ([]*models.Group, error) {
	sql, args, err := r.sb.Select("id", "course_id", "name", "description", "created_by", "group_type", "max_members", "created_at").
		From("groups").
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get groups by course SQL")
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error executing get groups by course query")
		return nil, err
	}
	defer rows.Close()

	groups := make([]*models.Group, 0)
	for rows.Next() {
		var g models.Group
		err := rows.Scan(&g.ID, &g.CourseID, &g.Name, &g.Description, &g.CreatedBy, &g.GroupType, &g.MaxMembers, &g.CreatedAt)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning group row")
			return nil, err
		}
		groups = append(groups, &g)
	}
	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating group rows")
		return nil, err
	}

	return groups, nil
}

// AddMember inserts a group membership. The unique (group_id, profile_id)
// constraint maps to apperrors.ErrAlreadyGroupMember on violation.
func (r *GroupRepository) AddMember(ctx context.Context, member *models.GroupMember) (int64, error) {
	sql, args, err := r.sb.Insert("group_members").
		Columns("group_id", "profile_id", "role").
		Values(member.GroupID, member.ProfileID, member.Role).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building add group member SQL")
		return 0, fmt.Errorf("failed to build add group member query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_group_profile") {
			return 0, apperrors.ErrAlreadyGroupMember
		}
		logger.Error().Err(err).Int64("groupID", member.GroupID).Int64("profileID", member.ProfileID).Msg("Error executing add group member query")
		return 0, fmt.Errorf("error adding group member: %w", err)
	}

	return id, nil
}

// CountMembers returns the number of members in a group.
func (r *GroupRepository) CountMembers(ctx context.Context, groupID int64) (int64, error) {
	sql, args, err := r.sb.Select("count(*)").From("group_members").Where(squirrel.Eq{"group_id": groupID}).ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Int64("groupID", groupID).Msg("Error counting group members")
		return 0, err
	}
	return count, nil
}

// GetMembers lists the members of a group with their profiles.
func (r *GroupRepository) GetMembers(ctx context.Context, groupID int64) ([]*models.GroupMember, error) {
	sql, args, err := r.sb.Select(
		"gm.id", "gm.group_id", "gm.profile_id", "gm.role", "gm.joined_at",
		"p.id", "p.email", "p.display_name", "p.school", "p.major", "p.role", "p.avatar_url", "p.created_at", "p.updated_at",
	).
		From("group_members gm").
		Join("profiles p ON gm.profile_id = p.id").
		Where(squirrel.Eq{"gm.group_id": groupID}).
		OrderBy("gm.joined_at ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get group members SQL")
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("groupID", groupID).Msg("Error executing get group members query")
		return nil, err
	}
	defer rows.Close()

	members := make([]*models.GroupMember, 0)
	for rows.Next() {
		var m models.GroupMember
		var p models.Profile
		err := rows.Scan(
			&m.ID, &m.GroupID, &m.ProfileID, &m.Role, &m.JoinedAt,
			&p.ID, &p.Email, &p.DisplayName, &p.School, &p.Major, &p.Role, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning group member with profile")
			return nil, err
		}
		m.User = &p
		members = append(members, &m)
	}
	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating group member rows")
		return nil, err
	}

	return members, nil
}
