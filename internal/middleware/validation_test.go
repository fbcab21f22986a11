package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type bindTestBody struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required,min=2"`
}

func bindTestHandler(c *gin.Context) {
	var body bindTestBody
	if !BindJSON(c, &body) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": body.Email})
}

func TestBindJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/test", bindTestHandler)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantSubstr string
	}{
		{name: "valid body", body: `{"email":"a@test.dev","name":"Ada"}`, wantStatus: http.StatusOK},
		{name: "missing required field", body: `{"email":"a@test.dev"}`, wantStatus: http.StatusBadRequest, wantSubstr: "Name is required"},
		{name: "bad email", body: `{"email":"nope","name":"Ada"}`, wantStatus: http.StatusBadRequest, wantSubstr: "valid email"},
		{name: "too short", body: `{"email":"a@test.dev","name":"A"}`, wantStatus: http.StatusBadRequest, wantSubstr: "at least 2"},
		{name: "malformed json", body: `{"email":`, wantStatus: http.StatusBadRequest, wantSubstr: "Invalid request body"},
		{name: "empty body", body: ``, wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantSubstr != "" {
				assert.Contains(t, w.Body.String(), tt.wantSubstr)
			}
		})
	}
}
