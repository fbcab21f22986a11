package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/hakif/knowforum/internal/app/models/dto"
)

// BindJSON binds and validates a JSON request body, writing the 400 response
// itself on failure. Controllers call it and bail out when it returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, formatValidationError(validationErrs[0])).
				WithField(validationErrs[0].Field())
			c.JSON(http.StatusBadRequest, dto.APIResponse{Error: detail})
			return false
		}
		c.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request body"),
		})
		return false
	}
	return true
}

// formatValidationError creates a human-readable validation error message.
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
