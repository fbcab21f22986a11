package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakif/knowforum/internal/app/models"
	"github.com/hakif/knowforum/internal/pkg/auth"
)

func newTestRouter(jwtService *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(jwtService)

	router := gin.New()
	router.GET("/protected", m.JWTAuth(), func(c *gin.Context) {
		id, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"userId": id})
	})
	router.GET("/admin", m.JWTAuth(), m.RoleRequired(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func testJWTService(accessExp time.Duration) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "test.app",
	})
}

func tokenFor(t *testing.T, svc *auth.JWTService, role models.Role) string {
	t.Helper()
	access, _, _, _, err := svc.GenerateTokenPair(&models.Profile{ID: 42, Email: "u@test.dev", Role: role})
	require.NoError(t, err)
	return access
}

func TestJWTAuth(t *testing.T) {
	svc := testJWTService(time.Hour)
	router := newTestRouter(svc)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{name: "valid token", authHeader: "Bearer " + tokenFor(t, svc, models.RoleStudent), wantStatus: http.StatusOK},
		{name: "missing header", authHeader: "", wantStatus: http.StatusUnauthorized},
		{name: "not bearer", authHeader: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", authHeader: "Bearer not.a.token", wantStatus: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestJWTAuthExpiredToken(t *testing.T) {
	expiredSvc := testJWTService(-time.Minute)
	router := newTestRouter(expiredSvc)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, expiredSvc, models.RoleStudent))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token expired")
}

func TestRoleRequired(t *testing.T) {
	svc := testJWTService(time.Hour)
	router := newTestRouter(svc)

	tests := []struct {
		name       string
		role       models.Role
		wantStatus int
	}{
		{name: "admin allowed", role: models.RoleAdmin, wantStatus: http.StatusOK},
		{name: "teacher forbidden", role: models.RoleTeacher, wantStatus: http.StatusForbidden},
		{name: "student forbidden", role: models.RoleStudent, wantStatus: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("Authorization", "Bearer "+tokenFor(t, svc, tt.role))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestGetUserIDMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetUserID(c)
	assert.False(t, ok)
}
