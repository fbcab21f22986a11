package dto

import (
	"time"

	"github.com/hakif/knowforum/internal/app/models"
)

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID          int64     `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Content     *string   `json:"content,omitempty"`
	RelatedID   *int64    `json:"relatedId,omitempty"`
	RelatedType *string   `json:"relatedType,omitempty"`
	IsRead      bool      `json:"isRead"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FromNotification converts a models.Notification to a NotificationResponse
func FromNotification(n *models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:          n.ID,
		Type:        n.Type,
		Title:       n.Title,
		Content:     n.Content,
		RelatedID:   n.RelatedID,
		RelatedType: n.RelatedType,
		IsRead:      n.IsRead,
		CreatedAt:   n.CreatedAt,
	}
}
