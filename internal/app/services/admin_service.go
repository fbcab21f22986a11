package services

import (
	"context"
	"fmt"

	"github.com/hakif/knowforum/internal/app/auth"
	"github.com/hakif/knowforum/internal/app/models"
	"github.com/hakif/knowforum/internal/app/models/dto"
	"github.com/hakif/knowforum/internal/app/repositories"
	"github.com/hakif/knowforum/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// AdminService handles teacher applications and their review.
type AdminService struct {
	applicationRepo  *repositories.TeacherApplicationRepository
	profileRepo      *repositories.ProfileRepository
	notificationRepo *repositories.NotificationRepository
	authService      *auth.AuthorizationService
	logger           zerolog.Logger
}

// NewAdminService creates a new AdminService.
func NewAdminService(
	applicationRepo *repositories.TeacherApplicationRepository,
	profileRepo *repositories.ProfileRepository,
	notificationRepo *repositories.NotificationRepository,
	authService *auth.AuthorizationService,
	logger zerolog.Logger,
) *AdminService {
	return &AdminService{
		applicationRepo:  applicationRepo,
		profileRepo:      profileRepo,
		notificationRepo: notificationRepo,
		authService:      authService,
		logger:           logger,
	}
}

// SubmitApplication files a teacher application for the acting student. One
// pending application per applicant at a time.
func (s *AdminService) SubmitApplication(ctx context.Context, actorID int64, req *dto.SubmitApplicationRequest) (*dto.TeacherApplicationResponse, error) {
	actor, err := s.authService.LoadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := auth.CanApplyForTeacher(actor); err != nil {
		return nil, err
	}

	pending, err := s.applicationRepo.HasPendingApplication(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, apperrors.ErrApplicationPending
	}

	applicationID, err := s.applicationRepo.CreateApplication(ctx, actorID, req.ApplicationInfo)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("applicationID", applicationID).Int64("applicantID", actorID).Msg("Teacher application submitted")

	application, err := s.applicationRepo.GetApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromTeacherApplication(application)
	return &resp, nil
}

// GetApplications lists applications for review. Admin only.
func (s *AdminService) GetApplications(ctx context.Context, actorID int64, status *models.ApplicationStatus, page, size int) ([]dto.TeacherApplicationResponse, dto.PaginationInfo, error) {
	actor, err := s.authService.LoadActor(ctx, actorID)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	if err := auth.CanReviewApplications(actor); err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	applications, pagination, err := s.applicationRepo.GetAllApplications(ctx, status, page, size)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	responses := make([]dto.TeacherApplicationResponse, 0, len(applications))
	for _, a := range applications {
		responses = append(responses, dto.FromTeacherApplication(a))
	}
	return responses, pagination, nil
}

// ReviewApplication decides a pending application. Admin only. Approval
// promotes the applicant to teacher; both outcomes notify the applicant.
// Already-reviewed applications are rejected with a conflict; the transition
// is one-way.
func (s *AdminService) ReviewApplication(ctx context.Context, actorID, applicationID int64, req *dto.ReviewApplicationRequest) (*dto.TeacherApplicationResponse, error) {
	actor, err := s.authService.LoadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := auth.CanReviewApplications(actor); err != nil {
		return nil, err
	}

	application, err := s.applicationRepo.GetApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if application.Status != models.ApplicationPending {
		return nil, apperrors.ErrApplicationReviewed
	}

	status := models.ApplicationStatus(req.Action)
	var comment *string
	if req.Comment != "" {
		comment = &req.Comment
	}

	if err := s.applicationRepo.ReviewApplication(ctx, applicationID, status, actorID, comment); err != nil {
		return nil, err
	}

	if status == models.ApplicationApproved {
		if err := s.profileRepo.UpdateProfileRole(ctx, application.ApplicantID, models.RoleTeacher); err != nil {
			return nil, fmt.Errorf("application approved but promotion failed: %w", err)
		}
	}

	s.notifyApplicationReviewed(ctx, application.ApplicantID, applicationID, status)
	s.logger.Info().
		Int64("applicationID", applicationID).
		Int64("reviewerID", actorID).
		Str("status", string(status)).
		Msg("Teacher application reviewed")

	reviewed, err := s.applicationRepo.GetApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromTeacherApplication(reviewed)
	return &resp, nil
}

func (s *AdminService) notifyApplicationReviewed(ctx context.Context, applicantID, applicationID int64, status models.ApplicationStatus) {
	content := "Your teacher application was " + string(status) + "."
	relatedType := "teacher_application"
	n := &models.Notification{
		ProfileID:   applicantID,
		Type:        models.NotificationApplicationReviewed,
		Title:       "Teacher application reviewed",
		Content:     &content,
		RelatedID:   &applicationID,
		RelatedType: &relatedType,
	}
	if _, err := s.notificationRepo.CreateNotification(ctx, n); err != nil {
		s.logger.Warn().Err(err).Int64("applicationID", applicationID).Msg("Failed to create application review notification")
	}
}

// GetProfiles lists registered users. Admin only.
func (s *AdminService) GetProfiles(ctx context.Context, actorID int64, page, size int) ([]dto.ProfileResponse, dto.PaginationInfo, error) {
	actor, err := s.authService.LoadActor(ctx, actorID)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	if err := auth.CanListProfiles(actor); err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	profiles, pagination, err := s.profileRepo.GetAllProfiles(ctx, page, size)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	responses := make([]dto.ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		responses = append(responses, dto.FromProfile(p))
	}
	return responses, pagination, nil
}
