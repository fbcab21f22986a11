package services

import (
	"context"
	"strings"

	"github.com/hakif/knowforum/internal/app/auth"
	"github.com/hakif/knowforum/internal/app/models"
	"github.com/hakif/knowforum/internal/app/models/dto"
	"github.com/hakif/knowforum/internal/app/repositories"
	"github.com/rs/zerolog"
)

// ScaffoldService handles scaffold prompt templates.
type ScaffoldService struct {
	scaffoldRepo *repositories.ScaffoldRepository
	courseRepo   *repositories.CourseRepository
	memberRepo   *repositories.CourseMemberRepository
	authService  *auth.AuthorizationService
	logger       zerolog.Logger
}

// NewScaffoldService creates a new ScaffoldService.
func NewScaffoldService(
	scaffoldRepo *repositories.ScaffoldRepository,
	courseRepo *repositories.CourseRepository,
	memberRepo *repositories.CourseMemberRepository,
	authService *auth.AuthorizationService,
	logger zerolog.Logger,
) *ScaffoldService {
	return &ScaffoldService{
		scaffoldRepo: scaffoldRepo,
		courseRepo:   courseRepo,
		memberRepo:   memberRepo,
		authService:  authService,
		logger:       logger,
	}
}

// CreateScaffold creates a prompt template. Global scaffolds need a teacher
// or admin; course scaffolds need course membership.
func (s *ScaffoldService) CreateScaffold(ctx context.Context, actorID int64, req *dto.CreateScaffoldRequest) (*dto.ScaffoldResponse, error) {
	actor, err := s.authService.LoadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	var course *models.Course
	isMember := false
	if req.CourseID != nil {
		course, err = s.courseRepo.GetCourseByID(ctx, *req.CourseID)
		if err != nil {
			return nil, err
		}
		isMember, err = s.memberRepo.IsMember(ctx, *req.CourseID, actorID)
		if err != nil {
			return nil, err
		}
	}
	if err := auth.CanCreateScaffold(actor, course, isMember); err != nil {
		return nil, err
	}

	scaffold := &models.Scaffold{
		Text:     strings.TrimSpace(req.Text),
		Category: req.Category,
		CourseID: req.CourseID,
	}

	scaffoldID, err := s.scaffoldRepo.CreateScaffold(ctx, scaffold)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("scaffoldID", scaffoldID).Str("category", req.Category).Msg("Scaffold created")

	created, err := s.scaffoldRepo.GetScaffoldByID(ctx, scaffoldID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromScaffold(created)
	return &resp, nil
}

// GetScaffolds lists scaffolds. With courseID set it returns global plus
// course-specific templates after a content access check; otherwise global
// only.
func (s *ScaffoldService) GetScaffolds(ctx context.Context, actorID int64, courseID *int64) ([]dto.ScaffoldResponse, error) {
	if courseID != nil {
		if _, _, err := s.authService.AuthorizeCourseContent(ctx, actorID, *courseID); err != nil {
			return nil, err
		}
	}

	scaffolds, err := s.scaffoldRepo.GetScaffolds(ctx, courseID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ScaffoldResponse, 0, len(scaffolds))
	for _, sc := range scaffolds {
		responses = append(responses, dto.FromScaffold(sc))
	}
	return responses, nil
}
