package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hakif/knowforum/internal/app/models/dto"
	"github.com/hakif/knowforum/internal/pkg/apperrors"
	"github.com/hakif/knowforum/internal/pkg/logger"
)

// HandleAPIError maps domain errors to HTTP responses. Every controller
// funnels service errors through here so status codes stay consistent.
// Unknown errors become 500 without leaking internals.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	// 400 — validation and malformed input
	case errors.Is(err, apperrors.ErrInvalidEmail):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeInvalidEmail, "Invalid email format")
	case errors.Is(err, apperrors.ErrInvalidPassword):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeInvalidPassword, "Password does not meet requirements")
	case errors.Is(err, apperrors.ErrInvalidAccessCode):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Invalid access code")
	case errors.Is(err, apperrors.ErrValidationFailed):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, validationMessage(err))

	// 401 — authentication
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenNotFound):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found")
	case errors.Is(err, apperrors.ErrTokenRevoked):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Token revoked")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")

	// 403 — authorization
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied")
	case errors.Is(err, apperrors.ErrNotCourseMember):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Course membership required")
	case errors.Is(err, apperrors.ErrGroupClosed):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Group does not accept self-joining")

	// 404 — missing resources
	case errors.Is(err, apperrors.ErrProfileNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Profile not found")
	case errors.Is(err, apperrors.ErrCourseNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Course not found")
	case errors.Is(err, apperrors.ErrNoteNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Note not found")
	case errors.Is(err, apperrors.ErrViewNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "View not found")
	case errors.Is(err, apperrors.ErrGroupNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Group not found")
	case errors.Is(err, apperrors.ErrApplicationNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Teacher application not found")
	case errors.Is(err, apperrors.ErrNotificationNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Notification not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found")

	// 409 — conflicts
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrAccessCodeExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Access code already in use")
	case errors.Is(err, apperrors.ErrAlreadyMember):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceConflict, "Already a member of this course")
	case errors.Is(err, apperrors.ErrAlreadyGroupMember):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceConflict, "Already a member of this group")
	case errors.Is(err, apperrors.ErrCourseFull):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceConflict, "Course member limit reached")
	case errors.Is(err, apperrors.ErrGroupFull):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceConflict, "Group member limit reached")
	case errors.Is(err, apperrors.ErrCourseNotJoinable):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceConflict, "Course is not accepting members")
	case errors.Is(err, apperrors.ErrVersionConflict):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceConflict, "Note was modified by a concurrent update")
	case errors.Is(err, apperrors.ErrMainViewExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceConflict, "Course already has a main view")
	case errors.Is(err, apperrors.ErrApplicationReviewed):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceConflict, "Teacher application already reviewed")
	case errors.Is(err, apperrors.ErrApplicationPending):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceConflict, "A pending application already exists")
	case errors.Is(err, apperrors.ErrConflict):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceConflict, "Conflict")

	// 502 — upstream analysis service
	case errors.Is(err, apperrors.ErrUpstreamFailure):
		respondError(c, http.StatusBadGateway, dto.ErrorCodeUpstreamFailure, "Analysis service unavailable")

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		respondError(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respondError(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.APIResponse{
		Error: dto.NewErrorDetail(code, message),
	})
}

// validationMessage surfaces the wrapped detail of a validation error when
// one was attached, falling back to the generic message.
func validationMessage(err error) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	if msg := err.Error(); msg != apperrors.ErrValidationFailed.Error() {
		return msg
	}
	return "Validation failed"
}
