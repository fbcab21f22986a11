package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/hakif/knowforum/internal/app/auth"
	"github.com/hakif/knowforum/internal/app/models"
	"github.com/hakif/knowforum/internal/app/models/dto"
	"github.com/hakif/knowforum/internal/app/repositories"
	"github.com/hakif/knowforum/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// CourseService handles course lifecycle and membership.
type CourseService struct {
	courseRepo  *repositories.CourseRepository
	memberRepo  *repositories.CourseMemberRepository
	authService *auth.AuthorizationService
	logger      zerolog.Logger
}

// NewCourseService creates a new CourseService.
func NewCourseService(
	courseRepo *repositories.CourseRepository,
	memberRepo *repositories.CourseMemberRepository,
	authService *auth.AuthorizationService,
	logger zerolog.Logger,
) *CourseService {
	return &CourseService{
		courseRepo:  courseRepo,
		memberRepo:  memberRepo,
		authService: authService,
		logger:      logger,
	}
}

// generateAccessCode produces a short join code. Uniqueness is enforced by
// the DB; collisions surface as ErrAccessCodeExists and are retried once at
// creation.
func generateAccessCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:8])
}

// CreateCourse creates a course owned by the actor. Teachers only.
func (s *CourseService) CreateCourse(ctx context.Context, actorID int64, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	actor, err := s.authService.LoadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := auth.CanCreateCourse(actor); err != nil {
		return nil, err
	}

	course := &models.Course{
		Name:          strings.TrimSpace(req.Name),
		AccessCode:    req.AccessCode,
		CreatedBy:     actorID,
		Status:        models.CourseActive,
		MaxMembers:    req.MaxMembers,
		SemesterStart: req.SemesterStart,
		SemesterEnd:   req.SemesterEnd,
	}
	if req.Description != "" {
		course.Description = &req.Description
	}

	generated := course.AccessCode == ""
	if generated {
		course.AccessCode = generateAccessCode()
	}

	courseID, err := s.courseRepo.CreateCourse(ctx, course)
	if err != nil && generated && errors.Is(err, apperrors.ErrAccessCodeExists) {
		// A generated code collided, try one more.
		course.AccessCode = generateAccessCode()
		courseID, err = s.courseRepo.CreateCourse(ctx, course)
	}
	if err != nil {
		return nil, err
	}

	created, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("courseID", courseID).Int64("creatorID", actorID).Msg("Course created")

	resp := dto.FromCourse(created, 0, 0, true)
	return &resp, nil
}

// GetCourses lists courses visible to the actor: students browse the active
// catalogue, teachers see the courses they created, admins see all. With
// joinedOnly set the listing narrows to the actor's memberships instead.
func (s *CourseService) GetCourses(ctx context.Context, actorID int64, joinedOnly bool, page, size int) (*dto.CourseListResponse, error) {
	actor, err := s.authService.LoadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	params := repositories.GetAllCoursesParams{Page: page, Size: size}
	switch {
	case joinedOnly:
		params.MemberID = &actorID
	case actor.Role == models.RoleStudent:
		// students browse the catalogue of active courses
		active := models.CourseActive
		params.Status = &active
	case actor.Role == models.RoleTeacher:
		params.CreatedBy = &actorID
	}

	courses, pagination, err := s.courseRepo.GetAllCourses(ctx, params)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		memberCount, err := s.memberRepo.CountMembers(ctx, course.ID)
		if err != nil {
			return nil, err
		}
		noteCount, err := s.courseRepo.CountNotes(ctx, course.ID)
		if err != nil {
			return nil, err
		}
		includeCode := course.CreatedBy == actorID || actor.Role == models.RoleAdmin
		responses = append(responses, dto.FromCourse(course, memberCount, noteCount, includeCode))
	}

	return &dto.CourseListResponse{Courses: responses, Pagination: pagination}, nil
}

// GetCourse returns one course with counts.
func (s *CourseService) GetCourse(ctx context.Context, actorID, courseID int64) (*dto.CourseResponse, error) {
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
	if err := auth.CanViewCourse(actor, course, isMember); err != nil {
		return nil, err
	}

	memberCount, err := s.memberRepo.CountMembers(ctx, courseID)
	if err != nil {
		return nil, err
	}
	noteCount, err := s.courseRepo.CountNotes(ctx, courseID)
	if err != nil {
		return nil, err
	}

	includeCode := course.CreatedBy == actorID || actor.Role == models.RoleAdmin
	resp := dto.FromCourse(course, memberCount, noteCount, includeCode)
	return &resp, nil
}

// UpdateCourse applies a partial update. Creator only.
func (s *CourseService) UpdateCourse(ctx context.Context, actorID, courseID int64, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	actor, course, err := s.authService.AuthorizeCourseManage(ctx, actorID, courseID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		course.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		course.Description = req.Description
	}
	if req.Status != nil {
		course.Status = models.CourseStatus(*req.Status)
	}
	if req.MaxMembers != nil {
		course.MaxMembers = *req.MaxMembers
	}

	if err := s.courseRepo.UpdateCourse(ctx, course); err != nil {
		return nil, err
	}

	memberCount, err := s.memberRepo.CountMembers(ctx, courseID)
	if err != nil {
		return nil, err
	}
	noteCount, err := s.courseRepo.CountNotes(ctx, courseID)
	if err != nil {
		return nil, err
	}

	includeCode := course.CreatedBy == actorID || actor.Role == models.RoleAdmin
	resp := dto.FromCourse(course, memberCount, noteCount, includeCode)
	return &resp, nil
}

// DeleteCourse soft-deletes a course. Creator only. Notes and memberships
// are kept but become unreachable.
func (s *CourseService) DeleteCourse(ctx context.Context, actorID, courseID int64) error {
	if _, _, err := s.authService.AuthorizeCourseManage(ctx, actorID, courseID); err != nil {
		return err
	}
	if err := s.courseRepo.SoftDeleteCourse(ctx, courseID); err != nil {
		return err
	}
	s.logger.Info().Int64("courseID", courseID).Int64("actorID", actorID).Msg("Course deleted")
	return nil
}

// JoinCourse adds the actor to a course identified by its access code. The
// unique membership constraint resolves concurrent double joins.
func (s *CourseService) JoinCourse(ctx context.Context, actorID, courseID int64, req *dto.JoinCourseRequest) (*dto.CourseResponse, error) {
	actor, err := s.authService.LoadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	course, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.AccessCode != req.AccessCode {
		return nil, apperrors.ErrInvalidAccessCode
	}

	return s.join(ctx, actor, course)
}

// JoinCourseByCode joins the actor into whichever course the access code
// belongs to. Unknown codes are indistinguishable from wrong ones.
func (s *CourseService) JoinCourseByCode(ctx context.Context, actorID int64, req *dto.JoinCourseRequest) (*dto.CourseResponse, error) {
	actor, err := s.authService.LoadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	course, err := s.courseRepo.GetCourseByAccessCode(ctx, req.AccessCode)
	if err != nil {
		return nil, err
	}

	return s.join(ctx, actor, course)
}

func (s *CourseService) join(ctx context.Context, actor *models.Profile, course *models.Course) (*dto.CourseResponse, error) {
	isMember, err := s.memberRepo.IsMember(ctx, course.ID, actor.ID)
	if err != nil {
		return nil, err
	}
	memberCount, err := s.memberRepo.CountMembers(ctx, course.ID)
	if err != nil {
		return nil, err
	}
	if err := auth.CanJoinCourse(actor, course, isMember, memberCount); err != nil {
		return nil, err
	}

	member := &models.CourseMember{
		CourseID: course.ID,
		UserID:   actor.ID,
		Role:     models.MemberRoleMember,
	}
	if _, err := s.memberRepo.AddMember(ctx, member); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("courseID", course.ID).Int64("profileID", actor.ID).Msg("Profile joined course")

	resp := dto.FromCourse(course, memberCount+1, 0, false)
	return &resp, nil
}

// LeaveCourse removes the actor's own membership. The course creator is not
// a member row and cannot leave their own course.
func (s *CourseService) LeaveCourse(ctx context.Context, actorID, courseID int64) error {
	if _, err := s.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return err
	}
	if _, err := s.memberRepo.GetMember(ctx, courseID, actorID); err != nil {
		return err
	}
	if err := s.memberRepo.RemoveMember(ctx, courseID, actorID); err != nil {
		return err
	}

	s.logger.Info().Int64("courseID", courseID).Int64("profileID", actorID).Msg("Profile left course")
	return nil
}

// GetMembers lists the members of a course. Content-level access required.
func (s *CourseService) GetMembers(ctx context.Context, actorID, courseID int64, page, size int) ([]dto.CourseMemberResponse, dto.PaginationInfo, error) {
	if _, _, err := s.authService.AuthorizeCourseContent(ctx, actorID, courseID); err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	members, pagination, err := s.memberRepo.GetMembers(ctx, courseID, page, size)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	responses := make([]dto.CourseMemberResponse, 0, len(members))
	for _, m := range members {
		resp := dto.CourseMemberResponse{
			ID:       m.ID,
			CourseID: m.CourseID,
			Role:     string(m.Role),
			JoinedAt: m.JoinedAt,
		}
		if m.User != nil {
			resp.User = dto.FromProfile(m.User)
		}
		responses = append(responses, resp)
	}

	return responses, pagination, nil
}
