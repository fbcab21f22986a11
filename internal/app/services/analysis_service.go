package services

import (
	"context"
	"encoding/json"

	"github.com/hakif/knowforum/internal/app/auth"
	"github.com/hakif/knowforum/internal/app/models"
	"github.com/hakif/knowforum/internal/app/models/dto"
	"github.com/hakif/knowforum/internal/app/repositories"
	"github.com/hakif/knowforum/internal/pkg/ai"
	"github.com/rs/zerolog"
)

// AnalysisService runs the AI feedback flow: load the note, call the
// analysis service, record the interaction. Note CRUD never depends on it.
type AnalysisService struct {
	aiClient        *ai.Client
	interactionRepo *repositories.AIInteractionRepository
	authService     *auth.AuthorizationService
	logger          zerolog.Logger
}

// NewAnalysisService creates a new AnalysisService.
func NewAnalysisService(
	aiClient *ai.Client,
	interactionRepo *repositories.AIInteractionRepository,
	authService *auth.AuthorizationService,
	logger zerolog.Logger,
) *AnalysisService {
	return &AnalysisService{
		aiClient:        aiClient,
		interactionRepo: interactionRepo,
		authService:     authService,
		logger:          logger,
	}
}

// AnalyzeNote requests feedback for a note the actor can read and records an
// AI interaction row with the raw response.
func (s *AnalysisService) AnalyzeNote(ctx context.Context, actorID int64, req *dto.AnalyzeNoteRequest) (*dto.NoteAnalysisResponse, error) {
	_, note, err := s.authService.AuthorizeNoteRead(ctx, actorID, req.NoteID)
	if err != nil {
		return nil, err
	}

	result, err := s.aiClient.AnalyzeNote(ctx, &ai.AnalyzeRequest{
		NoteID:   note.ID,
		Content:  note.Content,
		CourseID: note.CourseID,
		AuthorID: note.AuthorID,
	})
	if err != nil {
		return nil, err
	}

	s.recordInteraction(ctx, actorID, note.ID, result)

	resp := &dto.NoteAnalysisResponse{
		NoteID:                 note.ID,
		OverallQuality:         result.OverallQuality,
		Dimensions:             make([]dto.AnalysisDimension, 0, len(result.Dimensions)),
		ScaffoldingSuggestions: result.ScaffoldingSuggestions,
		Keywords:               result.Keywords,
	}
	for _, d := range result.Dimensions {
		resp.Dimensions = append(resp.Dimensions, dto.AnalysisDimension{
			Dimension:   d.Dimension,
			Score:       d.Score,
			Explanation: d.Explanation,
			Suggestions: d.Suggestions,
		})
	}
	if resp.ScaffoldingSuggestions == nil {
		resp.ScaffoldingSuggestions = []string{}
	}
	if resp.Keywords == nil {
		resp.Keywords = []string{}
	}

	return resp, nil
}

// recordInteraction stores the raw analysis for later pedagogy review.
// Failure to record never fails the analysis itself.
func (s *AnalysisService) recordInteraction(ctx context.Context, actorID, noteID int64, result *ai.AnalyzeResult) {
	raw, err := json.Marshal(result)
	if err != nil {
		s.logger.Warn().Err(err).Int64("noteID", noteID).Msg("Failed to encode AI interaction payload")
		return
	}

	interaction := &models.AIInteraction{
		UserID:     actorID,
		NoteID:     noteID,
		PromptType: "note_feedback",
		AIResponse: string(raw),
	}
	if _, err := s.interactionRepo.CreateInteraction(ctx, interaction); err != nil {
		s.logger.Warn().Err(err).Int64("noteID", noteID).Msg("Failed to record AI interaction")
	}
}

// GetNoteInteractions lists the recorded analysis calls for a note the actor
// can read, newest first.
func (s *AnalysisService) GetNoteInteractions(ctx context.Context, actorID, noteID int64) ([]dto.AIInteractionResponse, error) {
	if _, _, err := s.authService.AuthorizeNoteRead(ctx, actorID, noteID); err != nil {
		return nil, err
	}

	interactions, err := s.interactionRepo.GetInteractionsByNote(ctx, noteID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AIInteractionResponse, 0, len(interactions))
	for _, i := range interactions {
		responses = append(responses, dto.FromAIInteraction(i))
	}
	return responses, nil
}
