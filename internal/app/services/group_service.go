package services

import (
	"context"
	"strings"

	"github.com/hakif/knowforum/internal/app/auth"
	"github.com/hakif/knowforum/internal/app/models"
	"github.com/hakif/knowforum/internal/app/models/dto"
	"github.com/hakif/knowforum/internal/app/repositories"
	"github.com/hakif/knowforum/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// GroupService handles collaboration groups within courses.
type GroupService struct {
	groupRepo   *repositories.GroupRepository
	courseRepo  *repositories.CourseRepository
	memberRepo  *repositories.CourseMemberRepository
	authService *auth.AuthorizationService
	logger      zerolog.Logger
}

// NewGroupService creates a new GroupService.
func NewGroupService(
	groupRepo *repositories.GroupRepository,
	courseRepo *repositories.CourseRepository,
	memberRepo *repositories.CourseMemberRepository,
	authService *auth.AuthorizationService,
	logger zerolog.Logger,
) *GroupService {
	return &GroupService{
		groupRepo:   groupRepo,
		courseRepo:  courseRepo,
		memberRepo:  memberRepo,
		authService: authService,
		logger:      logger,
	}
}

// CreateGroup adds a group to a course. Course members only; the creator
// becomes the group leader.
func (s *GroupService) CreateGroup(ctx context.Context, actorID, courseID int64, req *dto.CreateGroupRequest) (*dto.GroupResponse, error) {
	actor, err := s.authService.LoadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	course, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	isMember, err := s.memberRepo.IsMember(ctx, courseID, actorID)
	if err != nil {
		return nil, err
	}
	if err := auth.CanCreateGroup(actor, course, isMember); err != nil {
		return nil, err
	}

	group := &models.Group{
		CourseID:   courseID,
		Name:       strings.TrimSpace(req.Name),
		CreatedBy:  actorID,
		GroupType:  models.GroupType(req.GroupType),
		MaxMembers: req.MaxMembers,
	}
	if req.Description != "" {
		group.Description = &req.Description
	}

	groupID, err := s.groupRepo.CreateGroup(ctx, group)
	if err != nil {
		return nil, err
	}
	group.ID = groupID

	leader := &models.GroupMember{
		GroupID:   groupID,
		ProfileID: actorID,
		Role:      models.GroupRoleLeader,
	}
	if _, err := s.groupRepo.AddMember(ctx, leader); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("groupID", groupID).Int64("courseID", courseID).Msg("Group created")

	resp := dto.FromGroup(group, 1)
	return &resp, nil
}

// GetGroups lists the groups of a course with member counts.
func (s *GroupService) GetGroups(ctx context.Context, actorID, courseID int64) ([]dto.GroupResponse, error) {
	if _, _, err := s.authService.AuthorizeCourseContent(ctx, actorID, courseID); err != nil {
		return nil, err
	}

	groups, err := s.groupRepo.GetGroupsByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.GroupResponse, 0, len(groups))
	for _, g := range groups {
		memberCount, err := s.groupRepo.CountMembers(ctx, g.ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, dto.FromGroup(g, memberCount))
	}
	return responses, nil
}

// JoinGroup self-joins the actor into an open group. Closed and assigned
// groups reject self-joins; members are added by the leader or course
// creator through AddMember.
func (s *GroupService) JoinGroup(ctx context.Context, actorID, groupID int64) (*dto.GroupResponse, error) {
	actor, group, err := s.loadGroupForMembership(ctx, actorID, groupID)
	if err != nil {
		return nil, err
	}

	memberCount, err := s.groupRepo.CountMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := auth.CanJoinGroup(actor, group, false, memberCount, false); err != nil {
		return nil, err
	}

	member := &models.GroupMember{
		GroupID:   groupID,
		ProfileID: actorID,
		Role:      models.GroupRoleMember,
	}
	if _, err := s.groupRepo.AddMember(ctx, member); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("groupID", groupID).Int64("profileID", actorID).Msg("Profile joined group")

	resp := dto.FromGroup(group, memberCount+1)
	return &resp, nil
}

// AddMember places a course member into a group. Group leader or course
// creator only; this is how closed and assigned groups are populated.
func (s *GroupService) AddMember(ctx context.Context, actorID, groupID int64, req *dto.AddGroupMemberRequest) error {
	actor, group, err := s.loadGroupForMembership(ctx, actorID, groupID)
	if err != nil {
		return err
	}

	course, err := s.courseRepo.GetCourseByID(ctx, group.CourseID)
	if err != nil {
		return err
	}

	staff := actor.Role == models.RoleAdmin || actor.ID == course.CreatedBy || actor.ID == group.CreatedBy
	if !staff {
		return apperrors.ErrPermissionDenied
	}

	// The added profile must already belong to the course.
	targetIsMember, err := s.memberRepo.IsMember(ctx, group.CourseID, req.ProfileID)
	if err != nil {
		return err
	}
	if !targetIsMember && req.ProfileID != course.CreatedBy {
		return apperrors.ErrNotCourseMember
	}

	memberCount, err := s.groupRepo.CountMembers(ctx, groupID)
	if err != nil {
		return err
	}
	if group.MaxMembers > 0 && memberCount >= int64(group.MaxMembers) {
		return apperrors.ErrGroupFull
	}

	role := models.GroupRoleMember
	if req.Role != "" {
		role = models.GroupRole(req.Role)
	}
	member := &models.GroupMember{
		GroupID:   groupID,
		ProfileID: req.ProfileID,
		Role:      role,
	}
	if _, err := s.groupRepo.AddMember(ctx, member); err != nil {
		return err
	}

	s.logger.Info().Int64("groupID", groupID).Int64("profileID", req.ProfileID).Msg("Profile added to group")
	return nil
}

// GetMembers lists the members of a group with their profiles.
func (s *GroupService) GetMembers(ctx context.Context, actorID, groupID int64) ([]dto.GroupMemberResponse, error) {
	if _, _, err := s.loadGroupForMembership(ctx, actorID, groupID); err != nil {
		return nil, err
	}

	members, err := s.groupRepo.GetMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.GroupMemberResponse, 0, len(members))
	for _, m := range members {
		responses = append(responses, dto.GroupMemberResponse{
			ID:        m.ID,
			GroupID:   m.GroupID,
			ProfileID: m.ProfileID,
			Role:      string(m.Role),
			JoinedAt:  m.JoinedAt,
		})
	}
	return responses, nil
}

// loadGroupForMembership resolves a group and checks the actor can see the
// owning course's content.
func (s *GroupService) loadGroupForMembership(ctx context.Context, actorID, groupID int64) (*models.Profile, *models.Group, error) {
	group, err := s.groupRepo.GetGroupByID(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	actor, _, err := s.authService.AuthorizeCourseContent(ctx, actorID, group.CourseID)
	if err != nil {
		return nil, nil, err
	}
	return actor, group, nil
}
