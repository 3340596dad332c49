package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/repositories"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/apperrors"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/auth"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/metrics"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/sms"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/validation"
)

// PasswordResetService resets account passwords with codes sent by SMS
type PasswordResetService interface {
	// SendVerificationCode sends a new code to phone. It succeeds without sending
	// anything when no account uses that phone number.
	SendVerificationCode(ctx context.Context, phone string) error
	// VerifyCode checks a code without consuming it
	VerifyCode(ctx context.Context, phone, code string) error
	// ResetPassword verifies the code, stores the new password and consumes the code
	ResetPassword(ctx context.Context, phone, code, newPassword string) error
}

type passwordResetService struct {
	accounts repositories.AccountRepository
	codes    repositories.VerificationCodeRepository
	sender   sms.Sender
	metrics  *metrics.Metrics
	logger   zerolog.Logger

	now      func() time.Time
	generate func() (string, error)
}

// NewPasswordResetService creates a PasswordResetService. codes may be the Redis store
// or the repository of the configured storage driver.
func NewPasswordResetService(accounts repositories.AccountRepository, codes repositories.VerificationCodeRepository, sender sms.Sender, m *metrics.Metrics, logger zerolog.Logger) PasswordResetService {
	return &passwordResetService{
		accounts: accounts,
		codes:    codes,
		sender:   sender,
		metrics:  m,
		logger:   logger.With().Str("service", "password_reset").Logger(),
		now:      time.Now,
		generate: generateCode,
	}
}

// generateCode returns a uniformly random 6-digit code
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func invalidCode() error {
	return apperrors.NewCustomError(
		fmt.Errorf("%w: %w", apperrors.ErrValidation, apperrors.ErrInvalidVerificationCode),
		"invalid or expired code",
	)
}

func normalizePhone(phone string) (string, error) {
	phone = strings.ReplaceAll(strings.TrimSpace(phone), " ", "")
	if !validation.CompiledPatterns.Phone.MatchString(phone) {
		return "", apperrors.NewCustomError(apperrors.ErrValidation, "phoneNumber is not a valid phone number").
			WithDetails(map[string]interface{}{"phoneNumber": "invalid format"})
	}
	return phone, nil
}

func (s *passwordResetService) SendVerificationCode(ctx context.Context, phone string) error {
	phone, err := normalizePhone(phone)
	if err != nil {
		return err
	}

	if _, err := s.accounts.FindByPhoneNumber(ctx, phone); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			s.logger.Info().Str("phone", phone).Msg("Verification code requested for unknown phone number")
			return nil
		}
		return err
	}

	code, err := s.generate()
	if err != nil {
		return apperrors.NewInternalError("generate verification code", err)
	}
	hash, err := auth.HashPassword(code)
	if err != nil {
		return apperrors.NewInternalError("hash verification code", err)
	}

	now := s.now().UTC()
	record := &models.VerificationCode{
		PhoneNumber: phone,
		CodeHash:    hash,
		ExpiresAt:   now.Add(models.VerificationCodeTTL),
		CreatedAt:   now,
	}
	if err := s.codes.Save(ctx, record); err != nil {
		return err
	}

	body := fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, int(models.VerificationCodeTTL.Minutes()))
	err = s.sender.Send(ctx, phone, body)
	s.metrics.ObserveExternal("sms", err)
	if err != nil {
		s.logger.Error().Err(err).Str("phone", phone).Msg("Failed to send verification code")
		if delErr := s.codes.Delete(ctx, phone); delErr != nil && !apperrors.Is(delErr, apperrors.ErrNotFound) {
			s.logger.Warn().Err(delErr).Str("phone", phone).Msg("Failed to delete unsent verification code")
		}
		return apperrors.NewUpstreamError("failed to send verification code", err)
	}

	s.logger.Info().Str("phone", phone).Msg("Verification code sent")
	return nil
}

func (s *passwordResetService) VerifyCode(ctx context.Context, phone, code string) error {
	phone, err := normalizePhone(phone)
	if err != nil {
		return err
	}
	return s.verify(ctx, phone, code)
}

func (s *passwordResetService) verify(ctx context.Context, phone, code string) error {
	record, err := s.codes.Find(ctx, phone)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return invalidCode()
		}
		return err
	}

	if record.Expired(s.now()) {
		if err := s.codes.Delete(ctx, phone); err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
			s.logger.Warn().Err(err).Str("phone", phone).Msg("Failed to delete expired verification code")
		}
		return invalidCode()
	}

	if !auth.CheckPassword(record.CodeHash, strings.TrimSpace(code)) {
		return invalidCode()
	}
	return nil
}

func (s *passwordResetService) ResetPassword(ctx context.Context, phone, code, newPassword string) error {
	phone, err := normalizePhone(phone)
	if err != nil {
		return err
	}
	if err := checkPassword(newPassword); err != nil {
		return err
	}
	if err := s.verify(ctx, phone, code); err != nil {
		return err
	}

	account, err := s.accounts.FindByPhoneNumber(ctx, phone)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return invalidCode()
		}
		return err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.NewInternalError("hash password", err)
	}
	if err := s.accounts.UpdatePassword(ctx, account.ID, hash); err != nil {
		return err
	}

	if err := s.codes.Delete(ctx, phone); err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
		s.logger.Warn().Err(err).Str("phone", phone).Msg("Failed to delete used verification code")
	}

	s.logger.Info().Str("accountID", account.ID).Msg("Password reset")
	return nil
}
