package dto

import (
	"time"

	"github.com/hakif/knowforum/internal/app/models"
)

// CreateNoteRequest represents the note creation payload
type CreateNoteRequest struct {
	Title        string   `json:"title" binding:"required,max=255"`
	Content      string   `json:"content" binding:"required"`
	CourseID     int64    `json:"courseId" binding:"required,min=1"`
	ViewID       *int64   `json:"viewId" binding:"omitempty,min=1"`
	ScaffoldID   *int64   `json:"scaffoldId" binding:"omitempty,min=1"`
	NoteType     string   `json:"noteType" binding:"omitempty,oneof=standard response synthesis"`
	ParentNoteID *int64   `json:"parentNoteId" binding:"omitempty,min=1"`
	GroupID      *int64   `json:"groupId" binding:"omitempty,min=1"`
	Tags         []string `json:"tags"`
}

// UpdateNoteRequest represents the note update payload. ExpectedVersion, when
// set, is an optimistic-concurrency precondition: the update is rejected with
// a conflict if the stored version differs.
type UpdateNoteRequest struct {
	Title             *string  `json:"title" binding:"omitempty,max=255"`
	Content           *string  `json:"content"`
	Tags              []string `json:"tags"`
	ChangeDescription *string  `json:"changeDescription"`
	ExpectedVersion   *int     `json:"expectedVersion" binding:"omitempty,min=1"`
}

// NoteResponse represents a note in API responses
type NoteResponse struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	AuthorID      int64     `json:"authorId"`
	AuthorName    string    `json:"authorName,omitempty"`
	CourseID      int64     `json:"courseId"`
	ViewID        *int64    `json:"viewId,omitempty"`
	ScaffoldID    *int64    `json:"scaffoldId,omitempty"`
	NoteType      string    `json:"noteType"`
	ParentNoteID  *int64    `json:"parentNoteId,omitempty"`
	Tags          []string  `json:"tags"`
	VersionNumber int       `json:"versionNumber"`
	GroupID       *int64    `json:"groupId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// FromNote converts a models.Note to a NoteResponse
func FromNote(n *models.Note) NoteResponse {
	resp := NoteResponse{
		ID:            n.ID,
		Title:         n.Title,
		Content:       n.Content,
		AuthorID:      n.AuthorID,
		CourseID:      n.CourseID,
		ViewID:        n.ViewID,
		ScaffoldID:    n.ScaffoldID,
		NoteType:      string(n.NoteType),
		ParentNoteID:  n.ParentNoteID,
		Tags:          n.Tags,
		VersionNumber: n.VersionNumber,
		GroupID:       n.GroupID,
		CreatedAt:     n.CreatedAt,
		UpdatedAt:     n.UpdatedAt,
	}
	if n.Author != nil {
		resp.AuthorName = n.Author.DisplayName
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	return resp
}

// NoteListResponse represents a paginated note listing
type NoteListResponse struct {
	Notes      []NoteResponse `json:"notes"`
	Pagination PaginationInfo `json:"pagination"`
}

// NoteVersionResponse represents one entry of a note's version history
type NoteVersionResponse struct {
	ID                int64     `json:"id"`
	NoteID            int64     `json:"noteId"`
	Content           string    `json:"content"`
	VersionNumber     int       `json:"versionNumber"`
	ChangeDescription *string   `json:"changeDescription,omitempty"`
	EditedBy          int64     `json:"editedBy"`
	CreatedAt         time.Time `json:"createdAt"`
}

// FromNoteVersion converts a models.NoteVersion to a NoteVersionResponse
func FromNoteVersion(v *models.NoteVersion) NoteVersionResponse {
	return NoteVersionResponse{
		ID:                v.ID,
		NoteID:            v.NoteID,
		Content:           v.Content,
		VersionNumber:     v.VersionNumber,
		ChangeDescription: v.ChangeDescription,
		EditedBy:          v.EditedBy,
		CreatedAt:         v.CreatedAt,
	}
}
