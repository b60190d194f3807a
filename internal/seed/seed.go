package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/mentorium/internal/app/models"
	"github.com/yigit/mentorium/internal/pkg/apperrors"
	"github.com/yigit/mentorium/internal/pkg/helpers"
)

// UserStore is the part of the user repository the seed needs.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
}

// AdminAccount describes the bootstrap administrator.
type AdminAccount struct {
	Email string
	Name  string
}

// CreateDefaultData creates the bootstrap admin account when it does not exist yet.
// An existing account is left untouched, whatever its role.
func CreateDefaultData(ctx context.Context, users UserStore, admin AdminAccount, lgr zerolog.Logger) error {
	email := helpers.NormalizeEmail(admin.Email)
	if email == "" {
		lgr.Info().Msg("No seed admin email configured, skipping default data")
		return nil
	}

	_, err := users.GetUserByEmail(ctx, email)
	if err == nil {
		lgr.Debug().Str("email", email).Msg("Seed admin already exists")
		return nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return fmt.Errorf("failed to look up seed admin: %w", err)
	}

	err = users.CreateUser(ctx, &models.User{
		Email: email,
		Name:  admin.Name,
		Role:  models.RoleAdmin,
	})
	if err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		return fmt.Errorf("failed to create seed admin: %w", err)
	}

	lgr.Info().Str("email", email).Msg("Seed admin created")
	return nil
}
