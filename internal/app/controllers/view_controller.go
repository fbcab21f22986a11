package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hakif/knowforum/internal/app/models/dto"
	"github.com/hakif/knowforum/internal/app/services"
	"github.com/hakif/knowforum/internal/middleware"
)

// ViewController handles view endpoints.
type ViewController struct {
	viewService *services.ViewService
}

// NewViewController creates a new ViewController.
func NewViewController(viewService *services.ViewService) *ViewController {
	return &ViewController{viewService: viewService}
}

// CreateView handles POST /courses/:id/views
func (c *ViewController) CreateView(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateViewRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.viewService.CreateView(ctx, userID, courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: resp})
}

// GetViews handles GET /courses/:id/views
func (c *ViewController) GetViews(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	views, err := c.viewService.GetViews(ctx, userID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: views})
}

// UpdateView handles PUT /views/:id
func (c *ViewController) UpdateView(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	viewID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateViewRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.viewService.UpdateView(ctx, userID, viewID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// DeleteView handles DELETE /views/:id
func (c *ViewController) DeleteView(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	viewID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.viewService.DeleteView(ctx, userID, viewID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "View deleted"}})
}
