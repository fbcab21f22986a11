package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/hakif/knowforum/internal/app/models"
	"github.com/hakif/knowforum/internal/app/models/dto"
	"github.com/hakif/knowforum/internal/pkg/apperrors"
	"github.com/hakif/knowforum/internal/pkg/helpers"
	"github.com/hakif/knowforum/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// GetAllNotesParams holds filters and pagination for note listings.
type GetAllNotesParams struct {
	CourseID     int64
	ViewID       *int64
	GroupID      *int64
	AuthorID     *int64
	ParentNoteID *int64
	NoteType     *models.NoteType
	Tag          *string
	Page         int
	Size         int
}

// VersionedUpdate describes one content-changing note update. The prior
// content is snapshotted to note_versions and version_number advances by one,
// all inside a single transaction.
type VersionedUpdate struct {
	NoteID            int64
	EditorID          int64
	Title             *string
	Content           *string
	Tags              []string
	ChangeDescription *string
	// ExpectedVersion, when set, makes the update conditional on the note
	// still being at that version.
	ExpectedVersion *int
}

// NoteDB is the pgx surface NoteRepository runs on. *pgxpool.Pool satisfies
// it; tests substitute a mock pool.
type NoteDB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// NoteRepository handles database operations for notes and their versions.
type NoteRepository struct {
	db NoteDB
	sb squirrel.StatementBuilderType
}

// NewNoteRepository creates a new NoteRepository.
func NewNoteRepository(db NoteDB) *NoteRepository {
	return &NoteRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *NoteRepository) selectNoteQuery() squirrel.SelectBuilder {
	return r.sb.Select(
		"n.id", "n.title", "n.content", "n.author_id", "n.course_id",
		"n.view_id", "n.scaffold_id", "n.note_type", "n.parent_note_id",
		"n.tags", "n.version_number", "n.group_id", "n.created_at", "n.updated_at",
		"p.id", "p.email", "p.display_name", "p.school", "p.major", "p.role", "p.avatar_url", "p.created_at", "p.updated_at",
	).From("notes n").
		Join("profiles p ON n.author_id = p.id")
}

func scanNote(row pgx.Row) (*models.Note, error) {
	var n models.Note
	var author models.Profile
	err := row.Scan(
		&n.ID, &n.Title, &n.Content, &n.AuthorID, &n.CourseID,
		&n.ViewID, &n.ScaffoldID, &n.NoteType, &n.ParentNoteID,
		&n.Tags, &n.VersionNumber, &n.GroupID, &n.CreatedAt, &n.UpdatedAt,
		&author.ID, &author.Email, &author.DisplayName, &author.School, &author.Major, &author.Role, &author.AvatarURL, &author.CreatedAt, &author.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoteNotFound
		}
		logger.Error().Err(err).Msg("Error scanning note row")
		return nil, err
	}
	n.Author = &author
	return &n, nil
}

// CreateNote inserts a new note at version 1 and returns its ID.
func (r *NoteRepository) CreateNote(ctx context.Context, note *models.Note) (int64, error) {
	sql, args, err := r.sb.Insert("notes").
		Columns("title", "content", "author_id", "course_id", "view_id", "scaffold_id", "note_type", "parent_note_id", "tags", "group_id", "version_number").
		Values(note.Title, note.Content, note.AuthorID, note.CourseID, note.ViewID, note.ScaffoldID, note.NoteType, note.ParentNoteID, note.Tags, note.GroupID, 1).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create note SQL")
		return 0, fmt.Errorf("failed to build create note query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", note.CourseID).Msg("Error executing create note query")
		return 0, fmt.Errorf("error creating note: %w", err)
	}

	return id, nil
}

// GetNoteByID retrieves a note with its author.
func (r *NoteRepository) GetNoteByID(ctx context.Context, id int64) (*models.Note, error) {
	sql, args, err := r.selectNoteQuery().Where(squirrel.Eq{"n.id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get note by ID SQL")
		return nil, err
	}
	return scanNote(r.db.QueryRow(ctx, sql, args...))
}

// GetAllNotes retrieves a paginated, filtered list of notes in a course.
func (r *NoteRepository) GetAllNotes(ctx context.Context, params GetAllNotesParams) ([]*models.Note, dto.PaginationInfo, error) {
	sqlBuilder := r.selectNoteQuery().Where(squirrel.Eq{"n.course_id": params.CourseID})
	countBuilder := r.sb.Select("count(*)").From("notes n").Where(squirrel.Eq{"n.course_id": params.CourseID})

	if params.ViewID != nil {
		sqlBuilder = sqlBuilder.Where(squirrel.Eq{"n.view_id": *params.ViewID})
		countBuilder = countBuilder.Where(squirrel.Eq{"n.view_id": *params.ViewID})
	}
	if params.GroupID != nil {
		sqlBuilder = sqlBuilder.Where(squirrel.Eq{"n.group_id": *params.GroupID})
		countBuilder = countBuilder.Where(squirrel.Eq{"n.group_id": *params.GroupID})
	}
	if params.AuthorID != nil {
		sqlBuilder = sqlBuilder.Where(squirrel.Eq{"n.author_id": *params.AuthorID})
		countBuilder = countBuilder.Where(squirrel.Eq{"n.author_id": *params.AuthorID})
	}
	if params.ParentNoteID != nil {
		sqlBuilder = sqlBuilder.Where(squirrel.Eq{"n.parent_note_id": *params.ParentNoteID})
		countBuilder = countBuilder.Where(squirrel.Eq{"n.parent_note_id": *params.ParentNoteID})
	}
	if params.NoteType != nil {
		sqlBuilder = sqlBuilder.Where(squirrel.Eq{"n.note_type": *params.NoteType})
		countBuilder = countBuilder.Where(squirrel.Eq{"n.note_type": *params.NoteType})
	}
	if params.Tag != nil && *params.Tag != "" {
		tagCond := squirrel.Expr("? = ANY(n.tags)", *params.Tag)
		sqlBuilder = sqlBuilder.Where(tagCond)
		countBuilder = countBuilder.Where(tagCond)
	}

	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count notes SQL")
		return nil, dto.PaginationInfo{}, err
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error executing count notes query")
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, params.Page, params.Size)
	if totalItems == 0 {
		return []*models.Note{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(params.Page, params.Size)
	sqlStr, args, err := sqlBuilder.
		OrderBy("n.created_at DESC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all notes SQL")
		return nil, dto.PaginationInfo{}, err
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all notes query")
		return nil, dto.PaginationInfo{}, err
	}
	defer rows.Close()

	notes := make([]*models.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, dto.PaginationInfo{}, err
		}
		notes = append(notes, note)
	}
	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating note rows")
		return nil, dto.PaginationInfo{}, err
	}

	return notes, pagination, nil
}

// UpdateNoteVersioned applies a content-changing update: it locks the note
// row, snapshots the current content into note_versions, then writes the new
// content with version_number+1. Runs in a single transaction so the version
// chain never gets a gap or duplicate. Returns the updated note.
func (r *NoteRepository) UpdateNoteVersioned(ctx context.Context, update VersionedUpdate) (*models.Note, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error beginning note update transaction")
		return nil, fmt.Errorf("error beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	lockSql, lockArgs, err := r.sb.Select("title", "content", "tags", "version_number").
		From("notes").
		Where(squirrel.Eq{"id": update.NoteID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building lock note SQL")
		return nil, err
	}

	var currentTitle, currentContent string
	var currentTags []string
	var currentVersion int
	err = tx.QueryRow(ctx, lockSql, lockArgs...).Scan(&currentTitle, &currentContent, &currentTags, &currentVersion)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoteNotFound
		}
		logger.Error().Err(err).Int64("noteID", update.NoteID).Msg("Error locking note row")
		return nil, fmt.Errorf("error locking note: %w", err)
	}

	if update.ExpectedVersion != nil && *update.ExpectedVersion != currentVersion {
		return nil, apperrors.ErrVersionConflict
	}

	verSql, verArgs, err := r.sb.Insert("note_versions").
		Columns("note_id", "content", "version_number", "change_description", "edited_by").
		Values(update.NoteID, currentContent, currentVersion, update.ChangeDescription, update.EditorID).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building insert note version SQL")
		return nil, err
	}
	if _, err := tx.Exec(ctx, verSql, verArgs...); err != nil {
		logger.Error().Err(err).Int64("noteID", update.NoteID).Msg("Error inserting note version snapshot")
		return nil, fmt.Errorf("error snapshotting note version: %w", err)
	}

	newTitle := currentTitle
	if update.Title != nil {
		newTitle = *update.Title
	}
	newContent := currentContent
	if update.Content != nil {
		newContent = *update.Content
	}
	newTags := currentTags
	if update.Tags != nil {
		newTags = update.Tags
	}

	updSql, updArgs, err := r.sb.Update("notes").
		Set("title", newTitle).
		Set("content", newContent).
		Set("tags", newTags).
		Set("version_number", currentVersion+1).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": update.NoteID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update note SQL")
		return nil, err
	}
	if _, err := tx.Exec(ctx, updSql, updArgs...); err != nil {
		logger.Error().Err(err).Int64("noteID", update.NoteID).Msg("Error executing update note query")
		return nil, fmt.Errorf("error updating note: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error().Err(err).Int64("noteID", update.NoteID).Msg("Error committing note update transaction")
		return nil, fmt.Errorf("error committing note update: %w", err)
	}

	return r.GetNoteByID(ctx, update.NoteID)
}

// DeleteNote removes a note. Version snapshots go with it via FK cascade.
func (r *NoteRepository) DeleteNote(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("notes").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete note SQL")
		return err
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("noteID", id).Msg("Error executing delete note query")
		return fmt.Errorf("error deleting note: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNoteNotFound
	}
	return nil
}

// GetNoteVersions lists the historical snapshots of a note, oldest first.
// The note's current content is not included; it lives on the note itself.
func (r *NoteRepository) GetNoteVersions(ctx context.Context, noteID int64) ([]*models.NoteVersion, error) {
	sql, args, err := r.sb.Select("id", "note_id", "content", "version_number", "change_description", "edited_by", "created_at").
		From("note_versions").
		Where(squirrel.Eq{"note_id": noteID}).
		OrderBy("version_number ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get note versions SQL")
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("noteID", noteID).Msg("Error executing get note versions query")
		return nil, err
	}
	defer rows.Close()

	versions := make([]*models.NoteVersion, 0)
	for rows.Next() {
		var v models.NoteVersion
		err := rows.Scan(&v.ID, &v.NoteID, &v.Content, &v.VersionNumber, &v.ChangeDescription, &v.EditedBy, &v.CreatedAt)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning note version row")
			return nil, err
		}
		versions = append(versions, &v)
	}
	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating note version rows")
		return nil, err
	}

	return versions, nil
}
