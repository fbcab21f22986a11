package models

import "time"

// Notification targets one profile and is created only as a side effect of
// other operations, never by direct API. Based on the 'notifications' table.
type Notification struct {
	ID          int64     `json:"id" db:"id"`
	ProfileID   int64     `json:"profileId" db:"profile_id"`
	Type        string    `json:"type" db:"type"`
	Title       string    `json:"title" db:"title"`
	Content     *string   `json:"content,omitempty" db:"content"`
	RelatedID   *int64    `json:"relatedId,omitempty" db:"related_id"`
	RelatedType *string   `json:"relatedType,omitempty" db:"related_type"`
	IsRead      bool      `json:"isRead" db:"is_read"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// Notification types created by side effects.
const (
	NotificationNoteResponse       = "note_response"
	NotificationApplicationReviewed = "application_reviewed"
)
