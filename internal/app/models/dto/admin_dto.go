package dto

import (
	"time"

	"github.com/hakif/knowforum/internal/app/models"
)

// SubmitApplicationRequest represents a student's teacher application
type SubmitApplicationRequest struct {
	ApplicationInfo string `json:"applicationInfo" binding:"required"`
}

// ReviewApplicationRequest represents the admin review decision
type ReviewApplicationRequest struct {
	Action  string `json:"action" binding:"required,oneof=approved rejected"`
	Comment string `json:"comment"`
}

// TeacherApplicationResponse represents a teacher application in API responses
type TeacherApplicationResponse struct {
	ID              int64            `json:"id"`
	ApplicantID     int64            `json:"applicantId"`
	Applicant       *ProfileResponse `json:"applicant,omitempty"`
	ApplicationInfo string           `json:"applicationInfo"`
	Status          string           `json:"status"`
	ReviewedBy      *int64           `json:"reviewedBy,omitempty"`
	ReviewComment   *string          `json:"reviewComment,omitempty"`
	AppliedAt       time.Time        `json:"appliedAt"`
	ReviewedAt      *time.Time       `json:"reviewedAt,omitempty"`
}

// FromTeacherApplication converts a models.TeacherApplication to its response
func FromTeacherApplication(a *models.TeacherApplication) TeacherApplicationResponse {
	resp := TeacherApplicationResponse{
		ID:              a.ID,
		ApplicantID:     a.ApplicantID,
		ApplicationInfo: a.ApplicationInfo,
		Status:          string(a.Status),
		ReviewedBy:      a.ReviewedBy,
		ReviewComment:   a.ReviewComment,
		AppliedAt:       a.AppliedAt,
		ReviewedAt:      a.ReviewedAt,
	}
	if a.Applicant != nil {
		profile := FromProfile(a.Applicant)
		resp.Applicant = &profile
	}
	return resp
}
