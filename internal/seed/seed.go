package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/hakif/knowforum/internal/app/models"
	appRepos "github.com/hakif/knowforum/internal/app/repositories"
	"github.com/hakif/knowforum/internal/config"
	"github.com/hakif/knowforum/internal/pkg/apperrors"
	"github.com/hakif/knowforum/internal/pkg/auth"
)

// CreateDefaultData provisions the default admin account on first startup.
// An already-seeded database is a no-op; the password is only required the
// first time around.
func CreateDefaultData(ctx context.Context, cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	profileRepo := appRepos.NewProfileRepository(dbPool)

	adminEmail := cfg.Seed.AdminEmail
	if adminEmail == "" {
		lgr.Info().Msg("No seed admin email configured, skipping admin seeding")
		return nil
	}

	_, err := profileRepo.GetProfileByEmail(ctx, adminEmail)
	if err == nil {
		lgr.Info().Str("email", adminEmail).Msg("Admin account already exists, skipping creation")
		return nil
	}
	if !errors.Is(err, apperrors.ErrProfileNotFound) {
		lgr.Error().Err(err).Msg("Error checking for existing admin account")
		return err
	}

	if cfg.Seed.AdminPassword == "" {
		lgr.Warn().Str("email", adminEmail).Msg("Admin account missing and no seed password configured, skipping creation")
		return nil
	}

	lgr.Info().Str("email", adminEmail).Msg("Creating default admin account...")

	hashedPassword, err := auth.HashPassword(cfg.Seed.AdminPassword)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &appModels.Profile{
		Email:        adminEmail,
		PasswordHash: hashedPassword,
		DisplayName:  "Administrator",
		Role:         appModels.RoleAdmin,
	}

	adminID, err := profileRepo.CreateProfile(ctx, admin)
	if err != nil {
		// Lost a race with a concurrent boot; the account exists either way
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			lgr.Info().Str("email", adminEmail).Msg("Admin account created concurrently, skipping")
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating admin account")
		return err
	}

	lgr.Info().Int64("adminID", adminID).Msg("Default admin account created successfully")
	return nil
}
