// Package seed creates the data a fresh installation needs to be usable.
package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/repositories"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/apperrors"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/auth"
)

// Admin describes the bootstrap administrator
type Admin struct {
	Username    string
	Password    string
	FullName    string
	PhoneNumber string
}

// EnsureAdmin creates the bootstrap admin unless an account with that username exists.
// It reports whether an account was created.
func EnsureAdmin(ctx context.Context, accounts repositories.AccountRepository, admin Admin, lgr zerolog.Logger) (bool, error) {
	if admin.Username == "" {
		return false, nil
	}

	_, err := accounts.FindByUsername(ctx, admin.Username)
	if err == nil {
		lgr.Debug().Str("username", admin.Username).Msg("Admin account already exists")
		return false, nil
	}
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		return false, fmt.Errorf("error checking admin account: %w", err)
	}

	if admin.Password == "" {
		lgr.Warn().Str("username", admin.Username).Msg("No admin password configured, skipping admin seed")
		return false, nil
	}

	hash, err := auth.HashPassword(admin.Password)
	if err != nil {
		return false, fmt.Errorf("error hashing admin password: %w", err)
	}

	account := &models.Account{
		Username:    admin.Username,
		Password:    hash,
		Role:        models.RoleAdmin,
		FullName:    admin.FullName,
		PhoneNumber: admin.PhoneNumber,
		Actor:       "system",
	}
	if err := accounts.Create(ctx, account); err != nil {
		// Another instance may have seeded concurrently
		if apperrors.Is(err, apperrors.ErrConflict) {
			return false, nil
		}
		return false, fmt.Errorf("error creating admin account: %w", err)
	}

	lgr.Info().Str("username", admin.Username).Msg("Admin account created")
	return true, nil
}
