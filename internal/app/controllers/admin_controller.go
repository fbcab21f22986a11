package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hakif/knowforum/internal/app/models"
	"github.com/hakif/knowforum/internal/app/models/dto"
	"github.com/hakif/knowforum/internal/app/services"
	"github.com/hakif/knowforum/internal/middleware"
	"github.com/hakif/knowforum/internal/pkg/helpers"
)

// AdminController handles teacher application endpoints.
type AdminController struct {
	adminService *services.AdminService
}

// NewAdminController creates a new AdminController.
func NewAdminController(adminService *services.AdminService) *AdminController {
	return &AdminController{adminService: adminService}
}

// SubmitApplication handles POST /teacher-applications
func (c *AdminController) SubmitApplication(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.SubmitApplicationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.adminService.SubmitApplication(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: resp})
}

// GetApplications handles GET /admin/teacher-applications?status=pending
func (c *AdminController) GetApplications(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var status *models.ApplicationStatus
	if raw := ctx.Query("status"); raw != "" {
		s := models.ApplicationStatus(raw)
		switch s {
		case models.ApplicationPending, models.ApplicationApproved, models.ApplicationRejected:
			status = &s
		default:
			ctx.JSON(http.StatusBadRequest, dto.APIResponse{
				Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid status filter"),
			})
			return
		}
	}

	page, size := helpers.ParsePaginationParams(ctx)
	applications, pagination, err := c.adminService.GetApplications(ctx, userID, status, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: gin.H{
		"applications": applications,
		"pagination":   pagination,
	}})
}

// ReviewApplication handles PUT /admin/teacher-applications/:id/review
func (c *AdminController) ReviewApplication(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	applicationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ReviewApplicationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.adminService.ReviewApplication(ctx, userID, applicationID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// GetUsers handles GET /admin/users
func (c *AdminController) GetUsers(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	profiles, pagination, err := c.adminService.GetProfiles(ctx, userID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: gin.H{
		"users":      profiles,
		"pagination": pagination,
	}})
}
