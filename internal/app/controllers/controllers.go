package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hakif/knowforum/internal/app/models/dto"
	"github.com/hakif/knowforum/internal/middleware"
)

// parseIDParam parses a positive int64 ID from the request path.
func parseIDParam(ctx *gin.Context, paramName string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(paramName), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid "+paramName+" parameter"),
		})
		return 0, false
	}
	return id, true
}

// currentUserID reads the authenticated user's ID set by the JWT middleware.
func currentUserID(ctx *gin.Context) (int64, bool) {
	id, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		})
		return 0, false
	}
	return id, true
}

// parseOptionalID parses an optional positive int64 query parameter.
func parseOptionalID(ctx *gin.Context, name string) *int64 {
	raw := ctx.Query(name)
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}
