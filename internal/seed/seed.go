package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/studenthub/backend/internal/app/models"
	appRepos "github.com/studenthub/backend/internal/app/repositories"
	"github.com/studenthub/backend/internal/config"
	"github.com/studenthub/backend/internal/pkg/apperrors"
	"github.com/studenthub/backend/internal/pkg/auth"
)

// CreateDefaultData creates the default admin and faculty reviewer accounts
// if they do not exist. Self-registration never grants the admin role, so
// the first admin has to come from here.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	var finalErr error

	if cfg.Seed.AdminPassword != "" {
		err := createAccount(ctx, userRepo, "Administrator", cfg.Seed.AdminEmail,
			cfg.Seed.AdminPassword, appModels.RoleAdmin, lgr)
		finalErr = errors.Join(finalErr, err)
	} else {
		lgr.Info().Msg("No seed admin password configured, skipping admin seeding")
	}

	if cfg.Seed.FacultyPassword != "" {
		err := createAccount(ctx, userRepo, "Faculty Reviewer", cfg.Seed.FacultyEmail,
			cfg.Seed.FacultyPassword, appModels.RoleFaculty, lgr)
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

func createAccount(ctx context.Context, userRepo *appRepos.UserRepository,
	name, email, password string, role appModels.RoleType, lgr zerolog.Logger) error {
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	user := &appModels.User{
		Name:     name,
		Email:    email,
		Password: hashed,
		Role:     role,
	}

	_, err = userRepo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			lgr.Debug().Str("email", email).Msg("Seed account already exists")
			return nil
		}
		lgr.Error().Err(err).Str("email", email).Msg("Error creating seed account")
		return err
	}

	lgr.Info().Str("email", email).Str("role", string(role)).Msg("Seed account created")
	return nil
}
