package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hakif/knowforum/internal/pkg/apperrors"
)

func TestValidateEmail(t *testing.T) {
	s := &AuthService{}

	valid := []string{
		"user@example.com",
		"first.last@school.edu",
		"u+tag@sub.domain.org",
	}
	for _, email := range valid {
		assert.NoError(t, s.validateEmail(email), email)
	}

	invalid := []string{
		"",
		"   ",
		"plainaddress",
		"@missing-local.com",
		"user@",
		"user@@double.com",
	}
	for _, email := range invalid {
		assert.ErrorIs(t, s.validateEmail(email), apperrors.ErrInvalidEmail, email)
	}
}

func TestValidatePassword(t *testing.T) {
	s := &AuthService{}

	assert.NoError(t, s.validatePassword("abcdefg1"))
	assert.NoError(t, s.validatePassword("Str0ng-and-long"))

	invalid := []string{
		"",
		"short1",   // too short
		"abcdefgh", // no digit
		"12345678", // no letter
		"!!!!!!!!", // neither
	}
	for _, pw := range invalid {
		assert.ErrorIs(t, s.validatePassword(pw), apperrors.ErrInvalidPassword, pw)
	}
}

func TestGenerateAccessCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := generateAccessCode()
		assert.Len(t, code, 8)
		assert.Equal(t, code, strings.ToUpper(code))
		seen[code] = true
	}
	// uuid-derived codes should essentially never collide in 100 draws
	assert.Greater(t, len(seen), 95)
}
