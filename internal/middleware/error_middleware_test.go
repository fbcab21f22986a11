package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakif/knowforum/internal/app/models/dto"
	"github.com/hakif/knowforum/internal/pkg/apperrors"
)

func TestHandleAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid email", err: apperrors.ErrInvalidEmail, wantStatus: http.StatusBadRequest},
		{name: "invalid access code", err: apperrors.ErrInvalidAccessCode, wantStatus: http.StatusBadRequest},
		{name: "validation failure", err: apperrors.ErrValidationFailed, wantStatus: http.StatusBadRequest},
		{name: "invalid credentials", err: apperrors.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized},
		{name: "revoked token", err: apperrors.ErrTokenRevoked, wantStatus: http.StatusUnauthorized},
		{name: "permission denied", err: apperrors.ErrPermissionDenied, wantStatus: http.StatusForbidden},
		{name: "not a course member", err: apperrors.ErrNotCourseMember, wantStatus: http.StatusForbidden},
		{name: "course not found", err: apperrors.ErrCourseNotFound, wantStatus: http.StatusNotFound},
		{name: "note not found", err: apperrors.ErrNoteNotFound, wantStatus: http.StatusNotFound},
		{name: "duplicate email", err: apperrors.ErrEmailAlreadyExists, wantStatus: http.StatusConflict},
		{name: "already member", err: apperrors.ErrAlreadyMember, wantStatus: http.StatusConflict},
		{name: "version conflict", err: apperrors.ErrVersionConflict, wantStatus: http.StatusConflict},
		{name: "main view exists", err: apperrors.ErrMainViewExists, wantStatus: http.StatusConflict},
		{name: "application reviewed", err: apperrors.ErrApplicationReviewed, wantStatus: http.StatusConflict},
		{name: "upstream failure", err: apperrors.ErrUpstreamFailure, wantStatus: http.StatusBadGateway},
		{name: "unknown error", err: errors.New("pg connection lost"), wantStatus: http.StatusInternalServerError},
		{name: "wrapped sentinel", err: fmt.Errorf("loading course: %w", apperrors.ErrCourseNotFound), wantStatus: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)

			var resp dto.APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.NotNil(t, resp.Error)
			assert.NotEmpty(t, resp.Error.Message)
		})
	}
}

func TestHandleAPIErrorValidationDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleAPIError(c, apperrors.NewValidationError("parentNoteId is required for response notes"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "parentNoteId is required for response notes")
}

func TestHandleAPIErrorHidesInternals(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleAPIError(c, errors.New("dial tcp 10.0.0.3:5432: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.3")
}
