package dto

import (
	"time"

	"github.com/hakif/knowforum/internal/app/models"
)

// CreateScaffoldRequest represents the scaffold creation payload
type CreateScaffoldRequest struct {
	Text     string `json:"text" binding:"required"`
	Category string `json:"category" binding:"required,max=50"`
	CourseID *int64 `json:"courseId" binding:"omitempty,min=1"`
}

// ScaffoldResponse represents a scaffold template in API responses
type ScaffoldResponse struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Category  string    `json:"category"`
	CourseID  *int64    `json:"courseId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromScaffold converts a models.Scaffold to a ScaffoldResponse
func FromScaffold(s *models.Scaffold) ScaffoldResponse {
	return ScaffoldResponse{
		ID:        s.ID,
		Text:      s.Text,
		Category:  s.Category,
		CourseID:  s.CourseID,
		CreatedAt: s.CreatedAt,
	}
}
