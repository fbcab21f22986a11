package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakif/knowforum/internal/app/models"
)

func newTestJWTService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test.app",
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	profile := &models.Profile{ID: 42, Email: "ada@test.dev", Role: models.RoleTeacher}

	access, refresh, expiresIn, refreshExpiresIn, err := svc.GenerateTokenPair(profile)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)
	assert.Equal(t, int(time.Hour.Seconds()), expiresIn)
	assert.Equal(t, int((24 * time.Hour).Seconds()), refreshExpiresIn)

	claims, err := svc.ValidateAndExtractClaims(access)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "ada@test.dev", claims.Email)
	assert.Equal(t, string(models.RoleTeacher), claims.Role)
	assert.Equal(t, "test.app", claims.Issuer)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	profile := &models.Profile{ID: 1, Email: "ada@test.dev", Role: models.RoleStudent}

	access, _, _, _, err := svc.GenerateTokenPair(profile)
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{
		SecretKey:       "a-different-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test.app",
	})
	_, err = other.ValidateAndExtractClaims(access)
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := newTestJWTService(-time.Minute)
	profile := &models.Profile{ID: 1, Email: "ada@test.dev", Role: models.RoleStudent}

	access, _, _, _, err := svc.GenerateTokenPair(profile)
	require.NoError(t, err)

	_, err = svc.ValidateAndExtractClaims(access)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	_, err := svc.ValidateAndExtractClaims("")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateAndExtractClaims("not.a.jwt")
	assert.Error(t, err)
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "valid bearer", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "empty header", header: "", wantErr: ErrInvalidFormat},
		{name: "missing prefix", header: "abc.def.ghi", wantErr: ErrInvalidFormat},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz", wantErr: ErrInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetRefreshTokenExpiry(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	expiry := svc.GetRefreshTokenExpiry()
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiry, time.Minute)
}
