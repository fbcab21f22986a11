package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/hakif/knowforum/internal/app/auth"
	"github.com/hakif/knowforum/internal/app/models"
	"github.com/hakif/knowforum/internal/app/models/dto"
	"github.com/hakif/knowforum/internal/app/repositories"
	"github.com/hakif/knowforum/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// NoteService handles note CRUD and version history.
type NoteService struct {
	noteRepo         *repositories.NoteRepository
	courseRepo       *repositories.CourseRepository
	memberRepo       *repositories.CourseMemberRepository
	notificationRepo *repositories.NotificationRepository
	authService      *auth.AuthorizationService
	logger           zerolog.Logger
}

// NewNoteService creates a new NoteService.
func NewNoteService(
	noteRepo *repositories.NoteRepository,
	courseRepo *repositories.CourseRepository,
	memberRepo *repositories.CourseMemberRepository,
	notificationRepo *repositories.NotificationRepository,
	authService *auth.AuthorizationService,
	logger zerolog.Logger,
) *NoteService {
	return &NoteService{
		noteRepo:         noteRepo,
		courseRepo:       courseRepo,
		memberRepo:       memberRepo,
		notificationRepo: notificationRepo,
		authService:      authService,
		logger:           logger,
	}
}

// CreateNote posts a note into a course. The author must be a member of the
// course; response notes must reference a parent in the same course.
func (s *NoteService) CreateNote(ctx context.Context, actorID int64, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	actor, err := s.authService.LoadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	course, err := s.courseRepo.GetCourseByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}
	isMember, err := s.memberRepo.IsMember(ctx, req.CourseID, actorID)
	if err != nil {
		return nil, err
	}
	if err := auth.CanCreateNote(actor, course, isMember); err != nil {
		return nil, err
	}

	noteType := models.NoteStandard
	if req.NoteType != "" {
		noteType = models.NoteType(req.NoteType)
	}

	var parent *models.Note
	if req.ParentNoteID != nil {
		parent, err = s.noteRepo.GetNoteByID(ctx, *req.ParentNoteID)
		if err != nil {
			return nil, err
		}
		if parent.CourseID != req.CourseID {
			return nil, fmt.Errorf("%w: parent note belongs to a different course", apperrors.ErrValidationFailed)
		}
	} else if noteType == models.NoteResponse {
		return nil, fmt.Errorf("%w: response notes require parentNoteId", apperrors.ErrValidationFailed)
	}

	note := &models.Note{
		Title:        strings.TrimSpace(req.Title),
		Content:      req.Content,
		AuthorID:     actorID,
		CourseID:     req.CourseID,
		ViewID:       req.ViewID,
		ScaffoldID:   req.ScaffoldID,
		NoteType:     noteType,
		ParentNoteID: req.ParentNoteID,
		Tags:         req.Tags,
		GroupID:      req.GroupID,
	}
	if note.Tags == nil {
		note.Tags = []string{}
	}

	noteID, err := s.noteRepo.CreateNote(ctx, note)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("noteID", noteID).Int64("courseID", req.CourseID).Int64("authorID", actorID).Msg("Note created")

	// Responding to someone else's note notifies the parent author. Failure
	// here must not fail the note creation.
	if parent != nil && parent.AuthorID != actorID {
		s.notifyNoteResponse(ctx, parent, actor, noteID)
	}

	created, err := s.noteRepo.GetNoteByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromNote(created)
	return &resp, nil
}

func (s *NoteService) notifyNoteResponse(ctx context.Context, parent *models.Note, responder *models.Profile, responseID int64) {
	content := fmt.Sprintf("%s responded to your note %q", responder.DisplayName, parent.Title)
	relatedType := "note"
	n := &models.Notification{
		ProfileID:   parent.AuthorID,
		Type:        models.NotificationNoteResponse,
		Title:       "New response to your note",
		Content:     &content,
		RelatedID:   &responseID,
		RelatedType: &relatedType,
	}
	if _, err := s.notificationRepo.CreateNotification(ctx, n); err != nil {
		s.logger.Warn().Err(err).Int64("noteID", parent.ID).Msg("Failed to create note response notification")
	}
}

// GetNote returns one note. Requires content access to the owning course.
func (s *NoteService) GetNote(ctx context.Context, actorID, noteID int64) (*dto.NoteResponse, error) {
	_, note, err := s.authService.AuthorizeNoteRead(ctx, actorID, noteID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromNote(note)
	return &resp, nil
}

// GetNotes lists notes in a course with optional filters.
func (s *NoteService) GetNotes(ctx context.Context, actorID int64, params repositories.GetAllNotesParams) (*dto.NoteListResponse, error) {
	if _, _, err := s.authService.AuthorizeCourseContent(ctx, actorID, params.CourseID); err != nil {
		return nil, err
	}

	notes, pagination, err := s.noteRepo.GetAllNotes(ctx, params)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		responses = append(responses, dto.FromNote(note))
	}

	return &dto.NoteListResponse{Notes: responses, Pagination: pagination}, nil
}

// UpdateNote applies a content-changing update with version snapshotting.
// Author only; existence is checked before ownership.
func (s *NoteService) UpdateNote(ctx context.Context, actorID, noteID int64, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	if req.Title == nil && req.Content == nil && req.Tags == nil {
		return nil, fmt.Errorf("%w: nothing to update", apperrors.ErrValidationFailed)
	}

	if _, _, err := s.authService.AuthorizeNoteEdit(ctx, actorID, noteID); err != nil {
		return nil, err
	}

	updated, err := s.noteRepo.UpdateNoteVersioned(ctx, repositories.VersionedUpdate{
		NoteID:            noteID,
		EditorID:          actorID,
		Title:             req.Title,
		Content:           req.Content,
		Tags:              req.Tags,
		ChangeDescription: req.ChangeDescription,
		ExpectedVersion:   req.ExpectedVersion,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("noteID", noteID).Int("version", updated.VersionNumber).Msg("Note updated")

	resp := dto.FromNote(updated)
	return &resp, nil
}

// DeleteNote removes a note and its version history. Author only.
func (s *NoteService) DeleteNote(ctx context.Context, actorID, noteID int64) error {
	if _, _, err := s.authService.AuthorizeNoteEdit(ctx, actorID, noteID); err != nil {
		return err
	}
	if err := s.noteRepo.DeleteNote(ctx, noteID); err != nil {
		return err
	}
	s.logger.Info().Int64("noteID", noteID).Int64("actorID", actorID).Msg("Note deleted")
	return nil
}

// GetNoteVersions lists the snapshot history of a note, oldest first.
func (s *NoteService) GetNoteVersions(ctx context.Context, actorID, noteID int64) ([]dto.NoteVersionResponse, error) {
	if _, _, err := s.authService.AuthorizeNoteRead(ctx, actorID, noteID); err != nil {
		return nil, err
	}

	versions, err := s.noteRepo.GetNoteVersions(ctx, noteID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.NoteVersionResponse, 0, len(versions))
	for _, v := range versions {
		responses = append(responses, dto.FromNoteVersion(v))
	}
	return responses, nil
}
