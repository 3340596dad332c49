package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models/dto"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/repositories"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/apperrors"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/auth"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/validation"
)

// AccountService defines admin account operations
type AccountService interface {
	List(ctx context.Context) ([]*models.Account, error)
	Get(ctx context.Context, id string) (*models.Account, error)
	Create(ctx context.Context, req *dto.CreateAccountRequest) (*models.Account, error)
	Update(ctx context.Context, id string, req *dto.UpdateAccountRequest) (*models.Account, error)
	ChangePassword(ctx context.Context, id, newPassword string) error
	// Delete removes an account. An account cannot delete itself.
	Delete(ctx context.Context, id, actingAccountID string) error
}

type accountService struct {
	accounts repositories.AccountRepository
	logger   zerolog.Logger
}

// NewAccountService creates an AccountService
func NewAccountService(repos *repositories.Repositories, logger zerolog.Logger) AccountService {
	return &accountService{
		accounts: repos.Accounts,
		logger:   logger.With().Str("service", "account").Logger(),
	}
}

func (s *accountService) List(ctx context.Context) ([]*models.Account, error) {
	return s.accounts.FindAll(ctx)
}

func (s *accountService) Get(ctx context.Context, id string) (*models.Account, error) {
	return s.accounts.FindByID(ctx, id)
}

// checkPassword applies the password policy to a plaintext password
func checkPassword(password string) error {
	if err := validation.ValidatePassword(password); err != nil {
		return apperrors.NewCustomError(apperrors.ErrValidation, err.Error()).
			WithDetails(map[string]interface{}{"password": err.Error()})
	}
	return nil
}

func (s *accountService) Create(ctx context.Context, req *dto.CreateAccountRequest) (*models.Account, error) {
	account := req.ToModel()
	if err := account.Validate(); err != nil {
		return nil, err
	}
	if err := checkPassword(account.Password); err != nil {
		return nil, err
	}

	if _, err := s.accounts.FindByUsername(ctx, account.Username); err == nil {
		return nil, apperrors.NewConflictError("username already exists")
	} else if !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(account.Password)
	if err != nil {
		return nil, apperrors.NewInternalError("hash password", err)
	}
	account.Password = hash

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", account.ID).Str("username", account.Username).Msg("Account created")
	return account, nil
}

func (s *accountService) Update(ctx context.Context, id string, req *dto.UpdateAccountRequest) (*models.Account, error) {
	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.ApplyTo(account)
	if err := account.Validate(); err != nil {
		return nil, err
	}
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *accountService) ChangePassword(ctx context.Context, id, newPassword string) error {
	if err := checkPassword(newPassword); err != nil {
		return err
	}
	if _, err := s.accounts.FindByID(ctx, id); err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.NewInternalError("hash password", err)
	}
	if err := s.accounts.UpdatePassword(ctx, id, hash); err != nil {
		return err
	}

	s.logger.Info().Str("id", id).Msg("Password changed")
	return nil
}

func (s *accountService) Delete(ctx context.Context, id, actingAccountID string) error {
	if id == actingAccountID {
		return apperrors.NewValidationError("you cannot delete your own account")
	}
	if err := s.accounts.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("id", id).Str("by", actingAccountID).Msg("Account deleted")
	return nil
}
