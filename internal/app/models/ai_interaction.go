package models

import "time"

// AIInteraction records one call to the analysis service for a note, based on
// the 'ai_interactions' table.
type AIInteraction struct {
	ID           int64     `json:"id" db:"id"`
	UserID       int64     `json:"userId" db:"user_id"`
	NoteID       int64     `json:"noteId" db:"note_id"`
	PromptType   string    `json:"promptType" db:"prompt_type"`
	AIResponse   string    `json:"aiResponse" db:"ai_response"`
	UserAccepted *bool     `json:"userAccepted,omitempty" db:"user_accepted"`
	IsIgnored    bool      `json:"isIgnored" db:"is_ignored"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
