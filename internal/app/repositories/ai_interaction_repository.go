package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/hakif/knowforum/internal/app/models"
	"github.com/hakif/knowforum/internal/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AIInteractionRepository records calls to the analysis service.
type AIInteractionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAIInteractionRepository creates a new AIInteractionRepository.
func NewAIInteractionRepository(db *pgxpool.Pool) *AIInteractionRepository {
	return &AIInteractionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateInteraction inserts an analysis record and returns its ID.
func (r *AIInteractionRepository) CreateInteraction(ctx context.Context, interaction *models.AIInteraction) (int64, error) {
	sql, args, err := r.sb.Insert("ai_interactions").
		Columns("user_id", "note_id", "prompt_type", "ai_response", "user_accepted", "is_ignored").
		Values(interaction.UserID, interaction.NoteID, interaction.PromptType, interaction.AIResponse, interaction.UserAccepted, interaction.IsIgnored).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create AI interaction SQL")
		return 0, fmt.Errorf("failed to build create AI interaction query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Int64("noteID", interaction.NoteID).Msg("Error executing create AI interaction query")
		return 0, fmt.Errorf("error creating AI interaction: %w", err)
	}

	return id, nil
}

// GetInteractionsByNote lists analysis records for a note, newest first.
func (r *AIInteractionRepository) GetInteractionsByNote(ctx context.Context, noteID int64) ([]*models.AIInteraction, error) {
	sql, args, err := r.sb.Select("id", "user_id", "note_id", "prompt_type", "ai_response", "user_accepted", "is_ignored", "created_at").
		From("ai_interactions").
		Where(squirrel.Eq{"note_id": noteID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get AI interactions SQL")
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("noteID", noteID).Msg("Error executing get AI interactions query")
		return nil, err
	}
	defer rows.Close()

	interactions := make([]*models.AIInteraction, 0)
	for rows.Next() {
		var ai models.AIInteraction
		err := rows.Scan(&ai.ID, &ai.UserID, &ai.NoteID, &ai.PromptType, &ai.AIResponse, &ai.UserAccepted, &ai.IsIgnored, &ai.CreatedAt)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning AI interaction row")
			return nil, err
		}
		interactions = append(interactions, &ai)
	}
	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating AI interaction rows")
		return nil, err
	}

	return interactions, nil
}
