package dto

import (
	"time"

	"github.com/hakif/knowforum/internal/app/models"
)

// CreateCourseRequest represents the course creation payload. When AccessCode
// is empty one is generated server-side.
type CreateCourseRequest struct {
	Name          string     `json:"name" binding:"required,max=255"`
	Description   string     `json:"description" binding:"omitempty"`
	AccessCode    string     `json:"accessCode" binding:"omitempty,min=4,max=50"`
	MaxMembers    int        `json:"maxMembers" binding:"omitempty,min=1,max=500"`
	SemesterStart *time.Time `json:"semesterStart"`
	SemesterEnd   *time.Time `json:"semesterEnd"`
}

// UpdateCourseRequest represents the course update payload
type UpdateCourseRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description"`
	Status      *string `json:"status" binding:"omitempty,oneof=active archived"`
	MaxMembers  *int    `json:"maxMembers" binding:"omitempty,min=1,max=500"`
}

// JoinCourseRequest carries the supplied access code
type JoinCourseRequest struct {
	AccessCode string `json:"accessCode" binding:"required"`
}

// CourseResponse represents a course in API responses. The access code is only
// included for the course creator.
type CourseResponse struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Description   *string    `json:"description,omitempty"`
	AccessCode    string     `json:"accessCode,omitempty"`
	CreatedBy     int64      `json:"createdBy"`
	Status        string     `json:"status"`
	MaxMembers    int        `json:"maxMembers"`
	SemesterStart *time.Time `json:"semesterStart,omitempty"`
	SemesterEnd   *time.Time `json:"semesterEnd,omitempty"`
	MemberCount   int64      `json:"memberCount"`
	NoteCount     int64      `json:"noteCount"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// FromCourse converts a models.Course to a CourseResponse. includeAccessCode
// must only be true when the requester owns the course.
func FromCourse(c *models.Course, memberCount, noteCount int64, includeAccessCode bool) CourseResponse {
	resp := CourseResponse{
		ID:            c.ID,
		Name:          c.Name,
		Description:   c.Description,
		CreatedBy:     c.CreatedBy,
		Status:        string(c.Status),
		MaxMembers:    c.MaxMembers,
		SemesterStart: c.SemesterStart,
		SemesterEnd:   c.SemesterEnd,
		MemberCount:   memberCount,
		NoteCount:     noteCount,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
	if includeAccessCode {
		resp.AccessCode = c.AccessCode
	}
	return resp
}

// CourseListResponse represents a paginated course listing
type CourseListResponse struct {
	Courses    []CourseResponse `json:"courses"`
	Pagination PaginationInfo   `json:"pagination"`
}

// CourseMemberResponse represents a course membership row with profile data
type CourseMemberResponse struct {
	ID       int64           `json:"id"`
	CourseID int64           `json:"courseId"`
	Role     string          `json:"role"`
	JoinedAt time.Time       `json:"joinedAt"`
	User     ProfileResponse `json:"user"`
}
