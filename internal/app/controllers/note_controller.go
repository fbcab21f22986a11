package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hakif/knowforum/internal/app/models"
	"github.com/hakif/knowforum/internal/app/models/dto"
	"github.com/hakif/knowforum/internal/app/repositories"
	"github.com/hakif/knowforum/internal/app/services"
	"github.com/hakif/knowforum/internal/middleware"
	"github.com/hakif/knowforum/internal/pkg/helpers"
)

// NoteController handles note endpoints.
type NoteController struct {
	noteService *services.NoteService
}

// NewNoteController creates a new NoteController.
func NewNoteController(noteService *services.NoteService) *NoteController {
	return &NoteController{noteService: noteService}
}

// CreateNote handles POST /notes
func (c *NoteController) CreateNote(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateNoteRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.noteService.CreateNote(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: resp})
}

// GetNotes handles GET /notes?courseId=N with optional filters.
func (c *NoteController) GetNotes(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	courseID, err := strconv.ParseInt(ctx.Query("courseId"), 10, 64)
	if err != nil || courseID <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "courseId query parameter is required"),
		})
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	params := repositories.GetAllNotesParams{
		CourseID:     courseID,
		ViewID:       parseOptionalID(ctx, "viewId"),
		GroupID:      parseOptionalID(ctx, "groupId"),
		AuthorID:     parseOptionalID(ctx, "authorId"),
		ParentNoteID: parseOptionalID(ctx, "parentNoteId"),
		Page:         page,
		Size:         size,
	}
	if noteType := ctx.Query("noteType"); noteType != "" {
		nt := models.NoteType(noteType)
		if !nt.Valid() {
			ctx.JSON(http.StatusBadRequest, dto.APIResponse{
				Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid noteType filter"),
			})
			return
		}
		params.NoteType = &nt
	}
	if tag := ctx.Query("tag"); tag != "" {
		params.Tag = &tag
	}

	resp, err := c.noteService.GetNotes(ctx, userID, params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// GetNote handles GET /notes/:id
func (c *NoteController) GetNote(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	noteID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.noteService.GetNote(ctx, userID, noteID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// UpdateNote handles PUT /notes/:id
func (c *NoteController) UpdateNote(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	noteID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateNoteRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.noteService.UpdateNote(ctx, userID, noteID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// DeleteNote handles DELETE /notes/:id
func (c *NoteController) DeleteNote(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	noteID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.noteService.DeleteNote(ctx, userID, noteID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Note deleted"}})
}

// GetNoteVersions handles GET /notes/:id/versions
func (c *NoteController) GetNoteVersions(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	noteID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	versions, err := c.noteService.GetNoteVersions(ctx, userID, noteID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: versions})
}
