package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hakif/knowforum/internal/app/models/dto"
	"github.com/hakif/knowforum/internal/app/services"
	"github.com/hakif/knowforum/internal/middleware"
)

// ScaffoldController handles scaffold endpoints.
type ScaffoldController struct {
	scaffoldService *services.ScaffoldService
}

// NewScaffoldController creates a new ScaffoldController.
func NewScaffoldController(scaffoldService *services.ScaffoldService) *ScaffoldController {
	return &ScaffoldController{scaffoldService: scaffoldService}
}

// CreateScaffold handles POST /scaffolds
func (c *ScaffoldController) CreateScaffold(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateScaffoldRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.scaffoldService.CreateScaffold(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: resp})
}

// GetScaffolds handles GET /scaffolds with optional courseId filter.
func (c *ScaffoldController) GetScaffolds(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	scaffolds, err := c.scaffoldService.GetScaffolds(ctx, userID, parseOptionalID(ctx, "courseId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: scaffolds})
}
