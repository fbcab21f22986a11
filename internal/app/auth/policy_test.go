package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hakif/knowforum/internal/app/models"
	"github.com/hakif/knowforum/internal/pkg/apperrors"
)

func profile(id int64, role models.Role) *models.Profile {
	return &models.Profile{ID: id, Email: "u@test.dev", Role: role}
}

func course(createdBy int64, status models.CourseStatus) *models.Course {
	return &models.Course{ID: 10, CreatedBy: createdBy, Status: status}
}

func TestCanCreateCourse(t *testing.T) {
	tests := []struct {
		name    string
		role    models.Role
		wantErr error
	}{
		{name: "teacher allowed", role: models.RoleTeacher},
		{name: "student denied", role: models.RoleStudent, wantErr: apperrors.ErrPermissionDenied},
		{name: "admin denied", role: models.RoleAdmin, wantErr: apperrors.ErrPermissionDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanCreateCourse(profile(1, tt.role))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCanViewCourseContent(t *testing.T) {
	tests := []struct {
		name     string
		actor    *models.Profile
		course   *models.Course
		isMember bool
		wantErr  error
	}{
		{name: "member reads", actor: profile(2, models.RoleStudent), course: course(1, models.CourseActive), isMember: true},
		{name: "creator reads without membership row", actor: profile(1, models.RoleTeacher), course: course(1, models.CourseActive)},
		{name: "outsider denied", actor: profile(3, models.RoleStudent), course: course(1, models.CourseActive), wantErr: apperrors.ErrNotCourseMember},
		{name: "deleted course hidden from member", actor: profile(2, models.RoleStudent), course: course(1, models.CourseDeleted), isMember: true, wantErr: apperrors.ErrCourseNotFound},
		{name: "admin bypasses membership", actor: profile(9, models.RoleAdmin), course: course(1, models.CourseActive)},
		{name: "admin sees deleted", actor: profile(9, models.RoleAdmin), course: course(1, models.CourseDeleted)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanViewCourseContent(tt.actor, tt.course, tt.isMember)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCanJoinCourse(t *testing.T) {
	tests := []struct {
		name        string
		actor       *models.Profile
		course      *models.Course
		isMember    bool
		memberCount int64
		wantErr     error
	}{
		{name: "student joins active course", actor: profile(2, models.RoleStudent), course: course(1, models.CourseActive)},
		{name: "archived course not joinable", actor: profile(2, models.RoleStudent), course: course(1, models.CourseArchived), wantErr: apperrors.ErrCourseNotJoinable},
		{name: "deleted course not joinable", actor: profile(2, models.RoleStudent), course: course(1, models.CourseDeleted), wantErr: apperrors.ErrCourseNotJoinable},
		{name: "already a member", actor: profile(2, models.RoleStudent), course: course(1, models.CourseActive), isMember: true, wantErr: apperrors.ErrAlreadyMember},
		{name: "creator cannot rejoin", actor: profile(1, models.RoleTeacher), course: course(1, models.CourseActive), wantErr: apperrors.ErrAlreadyMember},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanJoinCourse(tt.actor, tt.course, tt.isMember, tt.memberCount)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCanJoinCourseCapacity(t *testing.T) {
	full := course(1, models.CourseActive)
	full.MaxMembers = 2

	assert.ErrorIs(t, CanJoinCourse(profile(2, models.RoleStudent), full, false, 2), apperrors.ErrCourseFull)
	assert.NoError(t, CanJoinCourse(profile(2, models.RoleStudent), full, false, 1))

	// zero means unlimited
	unlimited := course(1, models.CourseActive)
	assert.NoError(t, CanJoinCourse(profile(2, models.RoleStudent), unlimited, false, 500))
}

func TestCanCreateNote(t *testing.T) {
	tests := []struct {
		name     string
		actor    *models.Profile
		course   *models.Course
		isMember bool
		wantErr  error
	}{
		{name: "member posts", actor: profile(2, models.RoleStudent), course: course(1, models.CourseActive), isMember: true},
		{name: "outsider denied", actor: profile(3, models.RoleStudent), course: course(1, models.CourseActive), wantErr: apperrors.ErrNotCourseMember},
		{name: "archived course read-only", actor: profile(2, models.RoleStudent), course: course(1, models.CourseArchived), isMember: true, wantErr: apperrors.ErrCourseNotJoinable},
		{name: "deleted course hidden", actor: profile(2, models.RoleStudent), course: course(1, models.CourseDeleted), isMember: true, wantErr: apperrors.ErrCourseNotFound},
		{name: "admin posts anywhere active", actor: profile(9, models.RoleAdmin), course: course(1, models.CourseActive)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanCreateNote(tt.actor, tt.course, tt.isMember)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCanEditNote(t *testing.T) {
	note := &models.Note{ID: 5, AuthorID: 2}

	assert.NoError(t, CanEditNote(profile(2, models.RoleStudent), note))
	assert.ErrorIs(t, CanEditNote(profile(3, models.RoleStudent), note), apperrors.ErrPermissionDenied)
	// no role grants edit rights over someone else's note
	assert.ErrorIs(t, CanEditNote(profile(4, models.RoleTeacher), note), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, CanEditNote(profile(9, models.RoleAdmin), note), apperrors.ErrPermissionDenied)
	assert.NoError(t, CanEditNote(profile(9, models.RoleAdmin), &models.Note{ID: 6, AuthorID: 9}))
}

func TestCanDeleteView(t *testing.T) {
	view := &models.View{ID: 7, CourseID: 10, CreatedBy: 2}
	crs := course(1, models.CourseActive)

	assert.NoError(t, CanDeleteView(profile(2, models.RoleStudent), view, crs))
	assert.NoError(t, CanDeleteView(profile(1, models.RoleTeacher), view, crs))
	assert.NoError(t, CanDeleteView(profile(9, models.RoleAdmin), view, crs))
	assert.ErrorIs(t, CanDeleteView(profile(3, models.RoleStudent), view, crs), apperrors.ErrPermissionDenied)
}

func TestCanJoinGroup(t *testing.T) {
	open := &models.Group{ID: 3, GroupType: models.GroupOpen, MaxMembers: 2}
	closed := &models.Group{ID: 4, GroupType: models.GroupClosed}
	assigned := &models.Group{ID: 5, GroupType: models.GroupAssigned}

	actor := profile(2, models.RoleStudent)

	assert.NoError(t, CanJoinGroup(actor, open, false, 1, false))
	assert.ErrorIs(t, CanJoinGroup(actor, open, true, 1, false), apperrors.ErrAlreadyGroupMember)
	assert.ErrorIs(t, CanJoinGroup(actor, open, false, 2, false), apperrors.ErrGroupFull)
	assert.ErrorIs(t, CanJoinGroup(actor, closed, false, 0, false), apperrors.ErrGroupClosed)
	assert.ErrorIs(t, CanJoinGroup(actor, assigned, false, 0, false), apperrors.ErrGroupClosed)
	// staff placement overrides the join policy but not capacity
	assert.NoError(t, CanJoinGroup(actor, closed, false, 0, true))
	assert.ErrorIs(t, CanJoinGroup(actor, open, false, 2, true), apperrors.ErrGroupFull)
}

func TestCanCreateScaffold(t *testing.T) {
	crs := course(1, models.CourseActive)

	// global scaffolds
	assert.NoError(t, CanCreateScaffold(profile(1, models.RoleTeacher), nil, false))
	assert.NoError(t, CanCreateScaffold(profile(9, models.RoleAdmin), nil, false))
	assert.ErrorIs(t, CanCreateScaffold(profile(2, models.RoleStudent), nil, false), apperrors.ErrPermissionDenied)

	// course scaffolds follow membership
	assert.NoError(t, CanCreateScaffold(profile(2, models.RoleStudent), crs, true))
	assert.ErrorIs(t, CanCreateScaffold(profile(3, models.RoleStudent), crs, false), apperrors.ErrNotCourseMember)
}

func TestCanApplyForTeacher(t *testing.T) {
	assert.NoError(t, CanApplyForTeacher(profile(2, models.RoleStudent)))
	assert.ErrorIs(t, CanApplyForTeacher(profile(1, models.RoleTeacher)), apperrors.ErrConflict)
	assert.ErrorIs(t, CanApplyForTeacher(profile(9, models.RoleAdmin)), apperrors.ErrConflict)
}

func TestCanReviewApplications(t *testing.T) {
	assert.NoError(t, CanReviewApplications(profile(9, models.RoleAdmin)))
	assert.ErrorIs(t, CanReviewApplications(profile(1, models.RoleTeacher)), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, CanReviewApplications(profile(2, models.RoleStudent)), apperrors.ErrPermissionDenied)
}

func TestCanListProfiles(t *testing.T) {
	assert.NoError(t, CanListProfiles(profile(9, models.RoleAdmin)))
	assert.ErrorIs(t, CanListProfiles(profile(1, models.RoleTeacher)), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, CanListProfiles(profile(2, models.RoleStudent)), apperrors.ErrPermissionDenied)
}
