package models

import (
	"time"
)

// Profile defines a registered user based on the 'profiles' table
type Profile struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	DisplayName  string    `json:"displayName" db:"display_name"`
	School       string    `json:"school,omitempty" db:"school"`
	Major        string    `json:"major,omitempty" db:"major"`
	Role         Role      `json:"role" db:"role"`
	AvatarURL    *string   `json:"avatarUrl,omitempty" db:"avatar_url"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// TeacherApplication defines a pending role promotion request based on the
// 'teacher_applications' table
type TeacherApplication struct {
	ID              int64             `json:"id" db:"id"`
	ApplicantID     int64             `json:"applicantId" db:"applicant_id"`
	ApplicationInfo string            `json:"applicationInfo" db:"application_info"`
	Status          ApplicationStatus `json:"status" db:"status"`
	ReviewedBy      *int64            `json:"reviewedBy,omitempty" db:"reviewed_by"`
	ReviewComment   *string           `json:"reviewComment,omitempty" db:"review_comment"`
	AppliedAt       time.Time         `json:"appliedAt" db:"applied_at"`
	ReviewedAt      *time.Time        `json:"reviewedAt,omitempty" db:"reviewed_at"`

	Applicant *Profile `json:"applicant,omitempty"`
}
