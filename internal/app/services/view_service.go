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

// ViewService handles views within courses.
type ViewService struct {
	viewRepo    *repositories.ViewRepository
	courseRepo  *repositories.CourseRepository
	memberRepo  *repositories.CourseMemberRepository
	authService *auth.AuthorizationService
	logger      zerolog.Logger
}

// NewViewService creates a new ViewService.
func NewViewService(
	viewRepo *repositories.ViewRepository,
	courseRepo *repositories.CourseRepository,
	memberRepo *repositories.CourseMemberRepository,
	authService *auth.AuthorizationService,
	logger zerolog.Logger,
) *ViewService {
	return &ViewService{
		viewRepo:    viewRepo,
		courseRepo:  courseRepo,
		memberRepo:  memberRepo,
		authService: authService,
		logger:      logger,
	}
}

// CreateView adds a view to a course. Course members only; at most one main
// view per course, enforced by the partial unique index.
func (s *ViewService) CreateView(ctx context.Context, actorID, courseID int64, req *dto.CreateViewRequest) (*dto.ViewResponse, error) {
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
	if err := auth.CanCreateView(actor, course, isMember); err != nil {
		return nil, err
	}

	view := &models.View{
		CourseID:   courseID,
		Name:       strings.TrimSpace(req.Name),
		CreatedBy:  actorID,
		IsMainView: req.IsMainView,
	}
	if req.Description != "" {
		view.Description = &req.Description
	}

	viewID, err := s.viewRepo.CreateView(ctx, view)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("viewID", viewID).Int64("courseID", courseID).Msg("View created")

	created, err := s.viewRepo.GetViewByID(ctx, viewID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromView(created)
	return &resp, nil
}

// GetViews lists the views of a course, main view first.
func (s *ViewService) GetViews(ctx context.Context, actorID, courseID int64) ([]dto.ViewResponse, error) {
	if _, _, err := s.authService.AuthorizeCourseContent(ctx, actorID, courseID); err != nil {
		return nil, err
	}

	views, err := s.viewRepo.GetViewsByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ViewResponse, 0, len(views))
	for _, v := range views {
		responses = append(responses, dto.FromView(v))
	}
	return responses, nil
}

// UpdateView renames or redescribes a view. Same permission as deletion:
// view creator, course creator or admin. The main-view flag never changes.
func (s *ViewService) UpdateView(ctx context.Context, actorID, viewID int64, req *dto.UpdateViewRequest) (*dto.ViewResponse, error) {
	actor, err := s.authService.LoadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	view, err := s.viewRepo.GetViewByID(ctx, viewID)
	if err != nil {
		return nil, err
	}
	course, err := s.courseRepo.GetCourseByID(ctx, view.CourseID)
	if err != nil {
		return nil, err
	}
	if err := auth.CanDeleteView(actor, view, course); err != nil {
		return nil, err
	}

	if req.Name != nil {
		view.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		view.Description = req.Description
	}

	if err := s.viewRepo.UpdateView(ctx, view); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("viewID", viewID).Int64("actorID", actorID).Msg("View updated")

	resp := dto.FromView(view)
	return &resp, nil
}

// DeleteView removes a view. View creator or course creator only; notes keep
// living, detached from the view.
func (s *ViewService) DeleteView(ctx context.Context, actorID, viewID int64) error {
	actor, err := s.authService.LoadActor(ctx, actorID)
	if err != nil {
		return err
	}
	view, err := s.viewRepo.GetViewByID(ctx, viewID)
	if err != nil {
		return err
	}
	course, err := s.courseRepo.GetCourseByID(ctx, view.CourseID)
	if err != nil {
		return err
	}
	if err := auth.CanDeleteView(actor, view, course); err != nil {
		return err
	}

	if err := s.viewRepo.DeleteView(ctx, viewID); err != nil {
		return err
	}
	s.logger.Info().Int64("viewID", viewID).Int64("actorID", actorID).Msg("View deleted")
	return nil
}
