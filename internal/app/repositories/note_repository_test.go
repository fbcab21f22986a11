package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/hakif/knowforum/internal/app/models"
	"github.com/hakif/knowforum/internal/pkg/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockNoteRepository(t *testing.T) (pgxmock.PgxPoolIface, *NoteRepository) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	repo := &NoteRepository{
		db: mock,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
	return mock, repo
}

// fullNoteRows builds the joined notes+profiles row GetNoteByID scans.
func fullNoteRows(content string, version int) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{
		"id", "title", "content", "author_id", "course_id",
		"view_id", "scaffold_id", "note_type", "parent_note_id",
		"tags", "version_number", "group_id", "created_at", "updated_at",
		"p_id", "email", "display_name", "school", "major", "role", "avatar_url", "p_created_at", "p_updated_at",
	}).AddRow(
		int64(5), "Photosynthesis", content, int64(2), int64(10),
		nil, nil, models.NoteStandard, nil,
		[]string{"biology"}, version, nil, now, now,
		int64(2), "mina@example.edu", "Mina", "", "", models.RoleStudent, nil, now, now,
	)
}

func TestUpdateNoteVersioned(t *testing.T) {
	mock, repo := newMockNoteRepository(t)

	newContent := "revised content"
	desc := "tightened the argument"
	update := VersionedUpdate{
		NoteID:            5,
		EditorID:          2,
		Content:           &newContent,
		ChangeDescription: &desc,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT title, content, tags, version_number FROM notes WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"title", "content", "tags", "version_number"}).
			AddRow("Photosynthesis", "original content", []string{"biology"}, 3))
	// exactly one snapshot, carrying the prior content at the prior version
	mock.ExpectExec(`INSERT INTO note_versions`).
		WithArgs(int64(5), "original content", 3, &desc, int64(2)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	// version advances by exactly one
	mock.ExpectExec(`UPDATE notes SET`).
		WithArgs("Photosynthesis", "revised content", []string{"biology"}, 4, int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT .+ FROM notes n JOIN profiles p ON n.author_id = p.id WHERE n.id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(fullNoteRows("revised content", 4))

	note, err := repo.UpdateNoteVersioned(context.Background(), update)
	require.NoError(t, err)
	assert.Equal(t, 4, note.VersionNumber)
	assert.Equal(t, "revised content", note.Content)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNoteVersionedKeepsUntouchedFields(t *testing.T) {
	mock, repo := newMockNoteRepository(t)

	newTitle := "Photosynthesis, revisited"
	update := VersionedUpdate{NoteID: 5, EditorID: 2, Title: &newTitle}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT title, content, tags, version_number FROM notes WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"title", "content", "tags", "version_number"}).
			AddRow("Photosynthesis", "original content", []string{"biology"}, 1))
	mock.ExpectExec(`INSERT INTO note_versions`).
		WithArgs(int64(5), "original content", 1, (*string)(nil), int64(2)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	// content and tags carry over unchanged when the update omits them
	mock.ExpectExec(`UPDATE notes SET`).
		WithArgs("Photosynthesis, revisited", "original content", []string{"biology"}, 2, int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT .+ FROM notes n JOIN profiles p ON n.author_id = p.id WHERE n.id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(fullNoteRows("original content", 2))

	note, err := repo.UpdateNoteVersioned(context.Background(), update)
	require.NoError(t, err)
	assert.Equal(t, 2, note.VersionNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNoteVersionedStaleVersion(t *testing.T) {
	mock, repo := newMockNoteRepository(t)

	newContent := "revised content"
	expected := 2
	update := VersionedUpdate{
		NoteID:          5,
		EditorID:        2,
		Content:         &newContent,
		ExpectedVersion: &expected,
	}

	// a stale precondition rolls back before any snapshot or update
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT title, content, tags, version_number FROM notes WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"title", "content", "tags", "version_number"}).
			AddRow("Photosynthesis", "original content", []string{"biology"}, 3))
	mock.ExpectRollback()

	_, err := repo.UpdateNoteVersioned(context.Background(), update)
	assert.ErrorIs(t, err, apperrors.ErrVersionConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNoteVersionedNotFound(t *testing.T) {
	mock, repo := newMockNoteRepository(t)

	newContent := "revised content"
	update := VersionedUpdate{NoteID: 9, EditorID: 2, Content: &newContent}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT title, content, tags, version_number FROM notes WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(9)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.UpdateNoteVersioned(context.Background(), update)
	assert.ErrorIs(t, err, apperrors.ErrNoteNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
