package auth

import (
	"github.com/hakif/knowforum/internal/app/models"
	"github.com/hakif/knowforum/internal/pkg/apperrors"
)

// Policy decisions are pure functions over already-loaded models. Each one
// returns nil to allow or an apperrors sentinel to deny, so they can be
// tested without a database and the callers map errors uniformly.

// CanViewCourse decides whether actor may read a course and its contents.
// Members always may; non-members only while the course is active, and only
// its public summary. Admins see everything.
func CanViewCourse(actor *models.Profile, course *models.Course, isMember bool) error {
	if actor.Role == models.RoleAdmin {
		return nil
	}
	if course.Status == models.CourseDeleted {
		return apperrors.ErrCourseNotFound
	}
	if isMember || actor.ID == course.CreatedBy {
		return nil
	}
	if course.Status == models.CourseArchived {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// CanViewCourseContent decides whether actor may read the notes, views and
// groups inside a course. Unlike the course summary this requires
// membership.
func CanViewCourseContent(actor *models.Profile, course *models.Course, isMember bool) error {
	if actor.Role == models.RoleAdmin {
		return nil
	}
	if course.Status == models.CourseDeleted {
		return apperrors.ErrCourseNotFound
	}
	if isMember || actor.ID == course.CreatedBy {
		return nil
	}
	return apperrors.ErrNotCourseMember
}

// CanCreateCourse decides whether actor may create a course. Teachers only;
// admins review and moderate but do not own courses.
func CanCreateCourse(actor *models.Profile) error {
	switch actor.Role {
	case models.RoleTeacher:
		return nil
	case models.RoleStudent, models.RoleAdmin:
		return apperrors.ErrPermissionDenied
	}
	return apperrors.ErrPermissionDenied
}

// CanManageCourse decides whether actor may update or delete a course. Only
// the creator and admins may.
func CanManageCourse(actor *models.Profile, course *models.Course) error {
	if actor.Role == models.RoleAdmin {
		return nil
	}
	if course.Status == models.CourseDeleted {
		return apperrors.ErrCourseNotFound
	}
	if actor.ID == course.CreatedBy {
		return nil
	}
	return apperrors.ErrPermissionDenied
}

// CanJoinCourse decides whether actor may join a course. The course must be
// active and the actor must not already belong to it; the creator is treated
// as a member from the start.
func CanJoinCourse(actor *models.Profile, course *models.Course, isMember bool, memberCount int64) error {
	if course.Status != models.CourseActive {
		return apperrors.ErrCourseNotJoinable
	}
	if isMember || actor.ID == course.CreatedBy {
		return apperrors.ErrAlreadyMember
	}
	if course.MaxMembers > 0 && memberCount >= int64(course.MaxMembers) {
		return apperrors.ErrCourseFull
	}
	return nil
}

// CanCreateNote decides whether actor may post a note into a course. Course
// membership is required; the creator counts as a member.
func CanCreateNote(actor *models.Profile, course *models.Course, isMember bool) error {
	if course.Status == models.CourseDeleted {
		return apperrors.ErrCourseNotFound
	}
	if course.Status == models.CourseArchived && actor.Role != models.RoleAdmin {
		return apperrors.ErrCourseNotJoinable
	}
	if actor.Role == models.RoleAdmin {
		return nil
	}
	if isMember || actor.ID == course.CreatedBy {
		return nil
	}
	return apperrors.ErrNotCourseMember
}

// CanEditNote decides whether actor may update or delete a note. Authorship
// only; no role grants edit rights over someone else's note.
func CanEditNote(actor *models.Profile, note *models.Note) error {
	if actor.ID == note.AuthorID {
		return nil
	}
	return apperrors.ErrPermissionDenied
}

// CanCreateView decides whether actor may create a view in a course. Any
// course member may; the course creator counts as a member.
func CanCreateView(actor *models.Profile, course *models.Course, isMember bool) error {
	return CanCreateNote(actor, course, isMember)
}

// CanDeleteView decides whether actor may delete or rename a view. The view
// creator, the course creator and admins may.
func CanDeleteView(actor *models.Profile, view *models.View, course *models.Course) error {
	if actor.Role == models.RoleAdmin {
		return nil
	}
	if course.Status == models.CourseDeleted {
		return apperrors.ErrCourseNotFound
	}
	if actor.ID == view.CreatedBy || actor.ID == course.CreatedBy {
		return nil
	}
	return apperrors.ErrPermissionDenied
}

// CanCreateGroup decides whether actor may create a group in a course. Any
// course member may.
func CanCreateGroup(actor *models.Profile, course *models.Course, isMember bool) error {
	return CanCreateNote(actor, course, isMember)
}

// CanJoinGroup decides whether actor may self-join a group. Open groups
// accept any course member up to capacity; closed and assigned groups only
// accept members added by the course staff.
func CanJoinGroup(actor *models.Profile, group *models.Group, alreadyInGroup bool, memberCount int64, addedByStaff bool) error {
	if alreadyInGroup {
		return apperrors.ErrAlreadyGroupMember
	}
	if group.MaxMembers > 0 && memberCount >= int64(group.MaxMembers) {
		return apperrors.ErrGroupFull
	}
	if addedByStaff {
		return nil
	}
	switch group.GroupType {
	case models.GroupOpen:
		return nil
	case models.GroupClosed, models.GroupAssigned:
		return apperrors.ErrGroupClosed
	}
	return apperrors.ErrGroupClosed
}

// CanCreateScaffold decides whether actor may create a scaffold. Global
// scaffolds (no course) are teacher/admin territory; course scaffolds follow
// course membership.
func CanCreateScaffold(actor *models.Profile, course *models.Course, isMember bool) error {
	if course == nil {
		switch actor.Role {
		case models.RoleTeacher, models.RoleAdmin:
			return nil
		case models.RoleStudent:
			return apperrors.ErrPermissionDenied
		}
		return apperrors.ErrPermissionDenied
	}
	return CanCreateNote(actor, course, isMember)
}

// CanReviewApplications decides whether actor may list and review teacher
// applications. Admins only.
func CanReviewApplications(actor *models.Profile) error {
	if actor.Role == models.RoleAdmin {
		return nil
	}
	return apperrors.ErrPermissionDenied
}

// CanListProfiles allows admins to browse the full user directory.
func CanListProfiles(actor *models.Profile) error {
	if actor.Role == models.RoleAdmin {
		return nil
	}
	return apperrors.ErrPermissionDenied
}

// CanApplyForTeacher decides whether actor may submit a teacher application.
// Only students have anything to apply for.
func CanApplyForTeacher(actor *models.Profile) error {
	switch actor.Role {
	case models.RoleStudent:
		return nil
	case models.RoleTeacher, models.RoleAdmin:
		return apperrors.ErrConflict
	}
	return apperrors.ErrPermissionDenied
}
