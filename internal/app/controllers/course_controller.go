package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hakif/knowforum/internal/app/models/dto"
	"github.com/hakif/knowforum/internal/app/services"
	"github.com/hakif/knowforum/internal/middleware"
	"github.com/hakif/knowforum/internal/pkg/helpers"
)

// CourseController handles course endpoints.
type CourseController struct {
	courseService *services.CourseService
}

// NewCourseController creates a new CourseController.
func NewCourseController(courseService *services.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// CreateCourse handles POST /courses
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateCourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.courseService.CreateCourse(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: resp})
}

// GetCourses handles GET /courses
func (c *CourseController) GetCourses(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	joinedOnly := ctx.Query("joined") == "true"
	resp, err := c.courseService.GetCourses(ctx, userID, joinedOnly, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// GetCourse handles GET /courses/:id
func (c *CourseController) GetCourse(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.courseService.GetCourse(ctx, userID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// UpdateCourse handles PUT /courses/:id
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.courseService.UpdateCourse(ctx, userID, courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// DeleteCourse handles DELETE /courses/:id
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.courseService.DeleteCourse(ctx, userID, courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Course deleted"}})
}

// JoinCourse handles POST /courses/:id/join
func (c *CourseController) JoinCourse(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.JoinCourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.courseService.JoinCourse(ctx, userID, courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// JoinByCode handles POST /courses/join
func (c *CourseController) JoinByCode(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.JoinCourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.courseService.JoinCourseByCode(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// LeaveCourse handles POST /courses/:id/leave
func (c *CourseController) LeaveCourse(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.courseService.LeaveCourse(ctx, userID, courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Left course"}})
}

// GetMembers handles GET /courses/:id/members
func (c *CourseController) GetMembers(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	members, pagination, err := c.courseService.GetMembers(ctx, userID, courseID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: gin.H{
		"members":    members,
		"pagination": pagination,
	}})
}
