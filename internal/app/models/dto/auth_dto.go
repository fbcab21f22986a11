package dto

import (
	"time"

	"github.com/hakif/knowforum/internal/app/models"
)

// RegisterRequest represents the registration payload. Role may be student or
// teacher; admin accounts are never created through registration.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"displayName" binding:"required,max=100"`
	School      string `json:"school" binding:"omitempty,max=255"`
	Major       string `json:"major" binding:"omitempty,max=255"`
	Role        string `json:"role" binding:"omitempty,oneof=student teacher"`
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest carries an opaque refresh token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse represents the issued token pair
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	TokenType        string `json:"tokenType"`
	ExpiresIn        int64  `json:"expiresIn"`
	RefreshExpiresIn int64  `json:"refreshExpiresIn"`
}

// UpdateProfileRequest represents the profile update payload. Only provided
// fields change; email, password and role are managed elsewhere.
type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName" binding:"omitempty,min=1,max=100"`
	School      *string `json:"school" binding:"omitempty,max=255"`
	Major       *string `json:"major" binding:"omitempty,max=255"`
	AvatarURL   *string `json:"avatarUrl" binding:"omitempty,url,max=500"`
}

// ProfileResponse represents a user profile in API responses
type ProfileResponse struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	School      string    `json:"school,omitempty"`
	Major       string    `json:"major,omitempty"`
	Role        string    `json:"role"`
	AvatarURL   *string   `json:"avatarUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FromProfile converts a models.Profile to a ProfileResponse
func FromProfile(p *models.Profile) ProfileResponse {
	return ProfileResponse{
		ID:          p.ID,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		School:      p.School,
		Major:       p.Major,
		Role:        string(p.Role),
		AvatarURL:   p.AvatarURL,
		CreatedAt:   p.CreatedAt,
	}
}

// AuthResponse bundles a token pair with the authenticated profile
type AuthResponse struct {
	Tokens  TokenResponse   `json:"tokens"`
	Profile ProfileResponse `json:"profile"`
}
