package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/alijimale/institute-backend/internal/app/models"
	appRepos "github.com/alijimale/institute-backend/internal/app/repositories"
	"github.com/alijimale/institute-backend/internal/pkg/apperrors"
	pkgAuth "github.com/alijimale/institute-backend/internal/pkg/auth"
)

// DefaultAdminEmail is the bootstrap administrator account created on first
// startup so the portal is reachable before any registration.
const (
	DefaultAdminEmail    = "admin@institute.local"
	defaultAdminName     = "Portal Administrator"
	defaultAdminPassword = "ChangeMe123!"
)

// CreateDefaultData seeds the bootstrap admin account if it doesn't exist.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	exists, err := userRepo.EmailExists(ctx, DefaultAdminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking for default admin account")
		return err
	}
	if exists {
		return nil
	}

	hash, err := pkgAuth.HashPassword(defaultAdminPassword)
	if err != nil {
		return err
	}

	admin := &appModels.User{
		Email:        DefaultAdminEmail,
		Name:         defaultAdminName,
		Role:         appModels.RoleAdmin,
		PasswordHash: hash,
	}
	if _, err := userRepo.CreateUser(ctx, admin); err != nil {
		// Lost a race with a concurrent startup; fine.
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating default admin account")
		return err
	}

	lgr.Info().Str("email", DefaultAdminEmail).Msg("Default admin account created, change its password")
	return nil
}
