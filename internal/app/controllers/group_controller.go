package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hakif/knowforum/internal/app/models/dto"
	"github.com/hakif/knowforum/internal/app/services"
	"github.com/hakif/knowforum/internal/middleware"
)

// GroupController handles group endpoints.
type GroupController struct {
	groupService *services.GroupService
}

// NewGroupController creates a new GroupController.
func NewGroupController(groupService *services.GroupService) *GroupController {
	return &GroupController{groupService: groupService}
}

// CreateGroup handles POST /courses/:id/groups
func (c *GroupController) CreateGroup(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateGroupRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.groupService.CreateGroup(ctx, userID, courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: resp})
}

// GetGroups handles GET /courses/:id/groups
func (c *GroupController) GetGroups(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	groups, err := c.groupService.GetGroups(ctx, userID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: groups})
}

// JoinGroup handles POST /groups/:id/join
func (c *GroupController) JoinGroup(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	groupID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.groupService.JoinGroup(ctx, userID, groupID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// AddMember handles POST /groups/:id/members
func (c *GroupController) AddMember(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	groupID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AddGroupMemberRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.groupService.AddMember(ctx, userID, groupID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: dto.SuccessResponse{Message: "Member added"}})
}

// GetMembers handles GET /groups/:id/members
func (c *GroupController) GetMembers(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	groupID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	members, err := c.groupService.GetMembers(ctx, userID, groupID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: members})
}
