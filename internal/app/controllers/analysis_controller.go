package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hakif/knowforum/internal/app/models/dto"
	"github.com/hakif/knowforum/internal/app/services"
	"github.com/hakif/knowforum/internal/middleware"
)

// AnalysisController handles the AI feedback endpoint.
type AnalysisController struct {
	analysisService *services.AnalysisService
}

// NewAnalysisController creates a new AnalysisController.
func NewAnalysisController(analysisService *services.AnalysisService) *AnalysisController {
	return &AnalysisController{analysisService: analysisService}
}

// AnalyzeNote handles POST /analyze-note
func (c *AnalysisController) AnalyzeNote(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.AnalyzeNoteRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.analysisService.AnalyzeNote(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// GetNoteInteractions handles GET /notes/:id/interactions
func (c *AnalysisController) GetNoteInteractions(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	noteID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	interactions, err := c.analysisService.GetNoteInteractions(ctx, userID, noteID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: interactions})
}
