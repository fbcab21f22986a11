package models

import "time"

// Scaffold is a reusable prompt template for guiding note authorship, based on
// the 'scaffolds' table. Read-only after creation.
type Scaffold struct {
	ID        int64     `json:"id" db:"id"`
	Text      string    `json:"text" db:"text"`
	Category  string    `json:"category" db:"category"`
	CourseID  *int64    `json:"courseId,omitempty" db:"course_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
