package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hakif/knowforum/internal/app/models/dto"
	"github.com/hakif/knowforum/internal/app/services"
	"github.com/hakif/knowforum/internal/middleware"
	"github.com/hakif/knowforum/internal/pkg/helpers"
)

// NotificationController handles notification endpoints.
type NotificationController struct {
	notificationService *services.NotificationService
}

// NewNotificationController creates a new NotificationController.
func NewNotificationController(notificationService *services.NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

// GetNotifications handles GET /notifications?unread=true
func (c *NotificationController) GetNotifications(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	unreadOnly := ctx.Query("unread") == "true"
	page, size := helpers.ParsePaginationParams(ctx)

	notifications, pagination, err := c.notificationService.GetNotifications(ctx, userID, unreadOnly, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: gin.H{
		"notifications": notifications,
		"pagination":    pagination,
	}})
}

// MarkRead handles PUT /notifications/:id/read
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	notificationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.notificationService.MarkRead(ctx, userID, notificationID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Notification marked as read"}})
}

// MarkAllRead handles PUT /notifications/read-all
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	count, err := c.notificationService.MarkAllRead(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: gin.H{"markedRead": count}})
}
