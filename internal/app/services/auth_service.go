package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models/dto"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/repositories"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/apperrors"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/auth"
)

// AuthService handles admin authentication
type AuthService struct {
	accounts   repositories.AccountRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(repos *repositories.Repositories, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		accounts:   repos.Accounts,
		jwtService: jwtService,
		logger:     logger.With().Str("service", "auth").Logger(),
	}
}

func invalidCredentials() error {
	return apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "invalid username or password")
}

// Authenticate checks the credentials of an admin account. Unknown users, non-admin
// accounts and wrong passwords all produce the same error.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.Account, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, invalidCredentials()
	}

	account, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			s.logger.Debug().Str("username", username).Msg("Login for unknown username")
			return nil, invalidCredentials()
		}
		return nil, err
	}

	if !account.IsAdmin() || !auth.CheckPassword(account.Password, password) {
		s.logger.Warn().Str("username", username).Msg("Login rejected")
		return nil, invalidCredentials()
	}
	return account, nil
}

// Login authenticates and issues an access token
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	account, err := s.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	token, expiresIn, err := s.jwtService.GenerateAccessToken(account.ID, account.Username, string(account.Role))
	if err != nil {
		return nil, apperrors.NewInternalError("generate access token", err)
	}

	s.logger.Info().Str("accountID", account.ID).Msg("Admin logged in")
	return &dto.AuthResponse{
		AccessToken: token,
		ExpiresIn:   expiresIn,
		TokenType:   "Bearer",
		Account:     account,
	}, nil
}

// Profile returns the account behind a token
func (s *AuthService) Profile(ctx context.Context, accountID string) (*models.Account, error) {
	return s.accounts.FindByID(ctx, accountID)
}
