package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/hakif/knowforum/internal/app/models"
	"github.com/hakif/knowforum/internal/app/models/dto"
	"github.com/hakif/knowforum/internal/app/repositories"
	"github.com/hakif/knowforum/internal/pkg/apperrors"
	authpkg "github.com/hakif/knowforum/internal/pkg/auth"
	"github.com/rs/zerolog"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// AuthService handles registration, login and token lifecycle.
type AuthService struct {
	profileRepo *repositories.ProfileRepository
	tokenRepo   *repositories.TokenRepository
	jwtService  *authpkg.JWTService
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	profileRepo *repositories.ProfileRepository,
	tokenRepo *repositories.TokenRepository,
	jwtService *authpkg.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		profileRepo: profileRepo,
		tokenRepo:   tokenRepo,
		jwtService:  jwtService,
		logger:      logger,
	}
}

func (s *AuthService) validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email cannot be empty", apperrors.ErrInvalidEmail)
	}
	if !emailRegex.MatchString(email) {
		return apperrors.ErrInvalidEmail
	}
	return nil
}

func (s *AuthService) validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters long", apperrors.ErrInvalidPassword)
	}

	hasLetter := false
	hasDigit := false
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
		}
		if unicode.IsDigit(char) {
			hasDigit = true
		}
	}
	if !hasLetter {
		return fmt.Errorf("%w: password must contain at least one letter", apperrors.ErrInvalidPassword)
	}
	if !hasDigit {
		return fmt.Errorf("%w: password must contain at least one digit", apperrors.ErrInvalidPassword)
	}
	return nil
}

// Register creates a new account and returns the profile with a token pair.
// Only student and teacher roles are accepted; admin accounts come from
// seeding, never registration.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := s.validateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := s.validatePassword(req.Password); err != nil {
		return nil, err
	}

	role := models.RoleStudent
	if req.Role != "" {
		role = models.Role(req.Role)
	}
	if role == models.RoleAdmin || !role.Valid() {
		return nil, fmt.Errorf("%w: role must be student or teacher", apperrors.ErrValidationFailed)
	}

	hashedPassword, err := authpkg.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	profile := &models.Profile{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hashedPassword,
		DisplayName:  strings.TrimSpace(req.DisplayName),
		School:       req.School,
		Major:        req.Major,
		Role:         role,
	}

	profileID, err := s.profileRepo.CreateProfile(ctx, profile)
	if err != nil {
		return nil, err
	}
	profile.ID = profileID

	s.logger.Info().Int64("profileID", profileID).Str("role", string(role)).Msg("Profile registered")

	return s.issueTokens(ctx, profile)
}

// Login authenticates by email and password. Unknown emails and bad
// passwords both report invalid credentials.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	profile, err := s.profileRepo.GetProfileByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrProfileNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !authpkg.CheckPassword(profile.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, profile)
}

// RefreshToken exchanges a valid refresh token for a fresh pair. The used
// token is revoked so each refresh token works exactly once.
func (s *AuthService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.AuthResponse, error) {
	profileID, _, err := s.tokenRepo.GetTokenByValue(ctx, req.RefreshToken)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetProfileByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.RevokeToken(ctx, req.RefreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, profile)
}

// GetProfile returns the profile for an authenticated user.
func (s *AuthService) GetProfile(ctx context.Context, profileID int64) (*models.Profile, error) {
	return s.profileRepo.GetProfileByID(ctx, profileID)
}

// UpdateProfile applies the provided fields to the actor's own profile.
func (s *AuthService) UpdateProfile(ctx context.Context, profileID int64, req *dto.UpdateProfileRequest) (*models.Profile, error) {
	profile, err := s.profileRepo.GetProfileByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		profile.DisplayName = strings.TrimSpace(*req.DisplayName)
	}
	if req.School != nil {
		profile.School = strings.TrimSpace(*req.School)
	}
	if req.Major != nil {
		profile.Major = strings.TrimSpace(*req.Major)
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = req.AvatarURL
	}

	if err := s.profileRepo.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("profileID", profileID).Msg("Profile updated")
	return profile, nil
}

// CleanupExpiredTokens purges refresh tokens that are expired or long
// revoked. Called periodically from a background job.
func (s *AuthService) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	return s.tokenRepo.CleanupExpiredTokens(ctx)
}

// Logout revokes every active refresh token of the profile.
func (s *AuthService) Logout(ctx context.Context, profileID int64) error {
	return s.tokenRepo.RevokeAllProfileTokens(ctx, profileID)
}

func (s *AuthService) issueTokens(ctx context.Context, profile *models.Profile) (*dto.AuthResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(profile)
	if err != nil {
		s.logger.Error().Err(err).Int64("profileID", profile.ID).Msg("Error generating token pair")
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	if err := s.tokenRepo.CreateToken(ctx, refreshToken, profile.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Tokens: dto.TokenResponse{
			AccessToken:      accessToken,
			RefreshToken:     refreshToken,
			TokenType:        "Bearer",
			ExpiresIn:        int64(expiresIn),
			RefreshExpiresIn: int64(refreshExpiresIn),
		},
		Profile: dto.FromProfile(profile),
	}, nil
}
