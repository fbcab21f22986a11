package models

import "time"

// Course defines an access-code-gated collaborative space based on the
// 'courses' table
type Course struct {
	ID            int64        `json:"id" db:"id"`
	Name          string       `json:"name" db:"name"`
	Description   *string      `json:"description,omitempty" db:"description"`
	AccessCode    string       `json:"accessCode" db:"access_code"`
	CreatedBy     int64        `json:"createdBy" db:"created_by"`
	Status        CourseStatus `json:"status" db:"status"`
	MaxMembers    int          `json:"maxMembers" db:"max_members"`
	SemesterStart *time.Time   `json:"semesterStart,omitempty" db:"semester_start"`
	SemesterEnd   *time.Time   `json:"semesterEnd,omitempty" db:"semester_end"`
	CreatedAt     time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time    `json:"updatedAt" db:"updated_at"`
}

// CourseMember links a profile to a course based on the 'course_members' table.
// (course_id, user_id) is unique; that constraint is the only guard against
// concurrent duplicate joins.
type CourseMember struct {
	ID       int64      `json:"id" db:"id"`
	CourseID int64      `json:"courseId" db:"course_id"`
	UserID   int64      `json:"userId" db:"user_id"`
	Role     MemberRole `json:"role" db:"role"`
	JoinedAt time.Time  `json:"joinedAt" db:"joined_at"`

	User *Profile `json:"user,omitempty"`
}
