package dto

import (
	"time"

	"github.com/hakif/knowforum/internal/app/models"
)

// AnalyzeNoteRequest asks the analysis service for pedagogical feedback on a
// note's content.
type AnalyzeNoteRequest struct {
	NoteID int64 `json:"noteId" binding:"required,min=1"`
}

// AnalysisDimension is one of the four fixed critique dimensions. Score is in
// [0,1].
type AnalysisDimension struct {
	Dimension   string   `json:"dimension"`
	Score       float64  `json:"score"`
	Explanation string   `json:"explanation"`
	Suggestions []string `json:"suggestions"`
}

// NoteAnalysisResponse is the structured critique returned by the analysis
// service.
type NoteAnalysisResponse struct {
	NoteID                 int64               `json:"noteId"`
	OverallQuality         float64             `json:"overallQuality"`
	Dimensions             []AnalysisDimension `json:"dimensions"`
	ScaffoldingSuggestions []string            `json:"scaffoldingSuggestions"`
	Keywords               []string            `json:"keywords"`
}

// AIInteractionResponse represents one recorded analysis call for a note.
// AIResponse carries the raw JSON returned by the analysis service.
type AIInteractionResponse struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	NoteID       int64     `json:"noteId"`
	PromptType   string    `json:"promptType"`
	AIResponse   string    `json:"aiResponse"`
	UserAccepted *bool     `json:"userAccepted,omitempty"`
	IsIgnored    bool      `json:"isIgnored"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FromAIInteraction converts a models.AIInteraction to an AIInteractionResponse
func FromAIInteraction(i *models.AIInteraction) AIInteractionResponse {
	return AIInteractionResponse{
		ID:           i.ID,
		UserID:       i.UserID,
		NoteID:       i.NoteID,
		PromptType:   i.PromptType,
		AIResponse:   i.AIResponse,
		UserAccepted: i.UserAccepted,
		IsIgnored:    i.IsIgnored,
		CreatedAt:    i.CreatedAt,
	}
}
