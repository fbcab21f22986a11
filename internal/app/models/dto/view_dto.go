package dto

import (
	"time"

	"github.com/hakif/knowforum/internal/app/models"
)

// CreateViewRequest represents the view creation payload
type CreateViewRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	IsMainView  bool   `json:"isMainView"`
}

// UpdateViewRequest represents the view update payload. The main-view flag
// is fixed at creation and cannot be changed here.
type UpdateViewRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}

// ViewResponse represents a view in API responses
type ViewResponse struct {
	ID          int64     `json:"id"`
	CourseID    int64     `json:"courseId"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedBy   int64     `json:"createdBy"`
	IsMainView  bool      `json:"isMainView"`
	NoteCount   int64     `json:"noteCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FromView converts a models.View to a ViewResponse
func FromView(v *models.View) ViewResponse {
	return ViewResponse{
		ID:          v.ID,
		CourseID:    v.CourseID,
		Name:        v.Name,
		Description: v.Description,
		CreatedBy:   v.CreatedBy,
		IsMainView:  v.IsMainView,
		NoteCount:   v.NoteCount,
		CreatedAt:   v.CreatedAt,
	}
}
