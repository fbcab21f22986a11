package models

import "time"

// Note defines a versioned unit of user-authored content based on the 'notes'
// table. version_number starts at 1 and increments by exactly one per
// content-changing update; prior content is snapshotted to NoteVersion first.
type Note struct {
	ID            int64     `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	Content       string    `json:"content" db:"content"`
	AuthorID      int64     `json:"authorId" db:"author_id"`
	CourseID      int64     `json:"courseId" db:"course_id"`
	ViewID        *int64    `json:"viewId,omitempty" db:"view_id"`
	ScaffoldID    *int64    `json:"scaffoldId,omitempty" db:"scaffold_id"`
	NoteType      NoteType  `json:"noteType" db:"note_type"`
	ParentNoteID  *int64    `json:"parentNoteId,omitempty" db:"parent_note_id"`
	Tags          []string  `json:"tags" db:"tags"`
	VersionNumber int       `json:"versionNumber" db:"version_number"`
	GroupID       *int64    `json:"groupId,omitempty" db:"group_id"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`

	Author *Profile `json:"author,omitempty"`
}

// NoteVersion is an append-only snapshot of a note's content prior to an
// update, based on the 'note_versions' table. Never mutated after creation.
type NoteVersion struct {
	ID                int64     `json:"id" db:"id"`
	NoteID            int64     `json:"noteId" db:"note_id"`
	Content           string    `json:"content" db:"content"`
	VersionNumber     int       `json:"versionNumber" db:"version_number"`
	ChangeDescription *string   `json:"changeDescription,omitempty" db:"change_description"`
	EditedBy          int64     `json:"editedBy" db:"edited_by"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
}

// NoteInteraction records a side-effect interaction with a note (read, like,
// comment) based on the 'note_interactions' table. Not gating logic.
type NoteInteraction struct {
	ID              int64     `json:"id" db:"id"`
	NoteID          int64     `json:"noteId" db:"note_id"`
	UserID          int64     `json:"userId" db:"user_id"`
	InteractionType string    `json:"interactionType" db:"interaction_type"`
	Comment         *string   `json:"comment,omitempty" db:"comment"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}
