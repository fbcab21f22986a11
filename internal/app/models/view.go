package models

import "time"

// View groups notes within a course based on the 'views' table. At most one
// view per course is the main view.
type View struct {
	ID          int64     `json:"id" db:"id"`
	CourseID    int64     `json:"courseId" db:"course_id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedBy   int64     `json:"createdBy" db:"created_by"`
	IsMainView  bool      `json:"isMainView" db:"is_main_view"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	NoteCount int64 `json:"noteCount"`
}
