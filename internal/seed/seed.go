package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/mkaplan/schoolpanel/internal/app/models"
	"github.com/mkaplan/schoolpanel/internal/app/repositories"
	"github.com/mkaplan/schoolpanel/internal/pkg/auth"
)

// defaultAdminPassword is the first-run password of the bootstrap admin.
// Operators are expected to change it after initial setup.
const defaultAdminPassword = "admin"

// CreateBootstrapAdmin seeds the protected admin account. The seed is
// idempotent: it is skipped whenever the admin username already exists, so
// exactly one bootstrap admin exists after initialization.
func CreateBootstrapAdmin(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	accountRepo := repositories.NewAccountRepository(dbPool)

	exists, err := accountRepo.UsernameExists(ctx, models.ProtectedAdminUsername)
	if err != nil {
		return fmt.Errorf("error checking for bootstrap admin: %w", err)
	}
	if exists {
		lgr.Info().Msg("Bootstrap admin already exists, skipping seed")
		return nil
	}

	lgr.Info().Msg("Creating bootstrap admin account...")
	hash, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return fmt.Errorf("error hashing bootstrap admin password: %w", err)
	}

	admin := &models.Account{
		Username:     models.ProtectedAdminUsername,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}

	id, err := accountRepo.Create(ctx, admin)
	if err != nil {
		return fmt.Errorf("error creating bootstrap admin: %w", err)
	}

	lgr.Info().Int64("adminID", id).Msg("Bootstrap admin account created")
	return nil
}
