package auth

import (
	"context"
	"errors"

	"github.com/hakif/knowforum/internal/app/models"
	"github.com/hakif/knowforum/internal/app/repositories"
	"github.com/hakif/knowforum/internal/pkg/apperrors"
)

// AuthorizationService loads the resources a policy decision needs and
// applies the pure policy functions. Controllers and services call this
// instead of reimplementing the checks.
type AuthorizationService struct {
	profileRepo *repositories.ProfileRepository
	courseRepo  *repositories.CourseRepository
	memberRepo  *repositories.CourseMemberRepository
	noteRepo    *repositories.NoteRepository
}

// NewAuthorizationService creates a new AuthorizationService.
func NewAuthorizationService(
	profileRepo *repositories.ProfileRepository,
	courseRepo *repositories.CourseRepository,
	memberRepo *repositories.CourseMemberRepository,
	noteRepo *repositories.NoteRepository,
) *AuthorizationService {
	return &AuthorizationService{
		profileRepo: profileRepo,
		courseRepo:  courseRepo,
		memberRepo:  memberRepo,
		noteRepo:    noteRepo,
	}
}

// LoadActor fetches the acting profile.
func (s *AuthorizationService) LoadActor(ctx context.Context, actorID int64) (*models.Profile, error) {
	return s.profileRepo.GetProfileByID(ctx, actorID)
}

// AuthorizeCourseContent loads a course and checks the actor may read its
// contents. Existence is established before permission, so outsiders probing
// for deleted courses get the same not-found as everyone else.
func (s *AuthorizationService) AuthorizeCourseContent(ctx context.Context, actorID, courseID int64) (*models.Profile, *models.Course, error) {
	actor, err := s.LoadActor(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}
	course, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, nil, err
	}
	isMember, err := s.memberRepo.IsMember(ctx, courseID, actorID)
	if err != nil {
		return nil, nil, err
	}
	if err := CanViewCourseContent(actor, course, isMember); err != nil {
		return nil, nil, err
	}
	return actor, course, nil
}

// AuthorizeCourseManage loads a course and checks the actor may update or
// delete it.
func (s *AuthorizationService) AuthorizeCourseManage(ctx context.Context, actorID, courseID int64) (*models.Profile, *models.Course, error) {
	actor, err := s.LoadActor(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}
	course, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, nil, err
	}
	if err := CanManageCourse(actor, course); err != nil {
		return nil, nil, err
	}
	return actor, course, nil
}

// AuthorizeNoteEdit loads a note and checks the actor may modify it. The
// not-found check comes first so callers never leak existence through a 403.
func (s *AuthorizationService) AuthorizeNoteEdit(ctx context.Context, actorID, noteID int64) (*models.Profile, *models.Note, error) {
	actor, err := s.LoadActor(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}
	note, err := s.noteRepo.GetNoteByID(ctx, noteID)
	if err != nil {
		return nil, nil, err
	}
	if err := CanEditNote(actor, note); err != nil {
		return nil, nil, err
	}
	return actor, note, nil
}

// AuthorizeNoteRead loads a note and checks the actor may read it through
// course content access.
func (s *AuthorizationService) AuthorizeNoteRead(ctx context.Context, actorID, noteID int64) (*models.Profile, *models.Note, error) {
	actor, err := s.LoadActor(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}
	note, err := s.noteRepo.GetNoteByID(ctx, noteID)
	if err != nil {
		return nil, nil, err
	}
	course, err := s.courseRepo.GetCourseByID(ctx, note.CourseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			// Course was soft-deleted out from under the note.
			return nil, nil, apperrors.ErrNoteNotFound
		}
		return nil, nil, err
	}
	isMember, err := s.memberRepo.IsMember(ctx, note.CourseID, actorID)
	if err != nil {
		return nil, nil, err
	}
	if err := CanViewCourseContent(actor, course, isMember); err != nil {
		return nil, nil, err
	}
	return actor, note, nil
}
