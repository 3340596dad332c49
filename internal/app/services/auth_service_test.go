package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models/dto"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/apperrors"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/auth"
)

func newAuthFixture(t *testing.T) (*fixture, *AuthService, *auth.JWTService) {
	f := newFixture(t)
	accounts := NewAccountService(f.repos, testLogger)

	_, err := accounts.Create(f.ctx, &dto.CreateAccountRequest{Username: "admin", Password: "Passw0rd1", FullName: "Admin", PhoneNumber: "0901234567"})
	require.NoError(t, err)
	_, err = accounts.Create(f.ctx, &dto.CreateAccountRequest{Username: "staff", Password: "Passw0rd1", Role: "staff"})
	require.NoError(t, err)

	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "test"})
	return f, NewAuthService(f.repos, jwtService, testLogger), jwtService
}

func TestLoginIssuesToken(t *testing.T) {
	f, svc, jwtService := newAuthFixture(t)

	resp, err := svc.Login(f.ctx, &dto.LoginRequest{Username: "admin", Password: "Passw0rd1"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, "admin", resp.Account.Username)

	claims, err := jwtService.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.Account.ID, claims.AccountID)
	assert.Equal(t, "admin", claims.Role)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	f, svc, _ := newAuthFixture(t)

	cases := []dto.LoginRequest{
		{Username: "nobody", Password: "Passw0rd1"},
		{Username: "admin", Password: "wrong-password1"},
		{Username: "staff", Password: "Passw0rd1"},
		{Username: "Admin", Password: "Passw0rd1"},
		{Username: "", Password: ""},
	}
	for _, c := range cases {
		c := c
		_, err := svc.Login(f.ctx, &c)
		require.Error(t, err, c.Username)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCredentials), c.Username)
		assert.EqualError(t, err, "invalid username or password")
	}
}

func TestAccountServiceRules(t *testing.T) {
	f := newFixture(t)
	svc := NewAccountService(f.repos, testLogger)

	_, err := svc.Create(f.ctx, &dto.CreateAccountRequest{Username: "admin", Password: "short"})
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

	created, err := svc.Create(f.ctx, &dto.CreateAccountRequest{Username: "admin", Password: "Passw0rd1"})
	require.NoError(t, err)
	assert.NotEqual(t, "Passw0rd1", created.Password)
	assert.True(t, auth.CheckPassword(created.Password, "Passw0rd1"))

	_, err = svc.Create(f.ctx, &dto.CreateAccountRequest{Username: "admin", Password: "Passw0rd2"})
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))

	updated, err := svc.Update(f.ctx, created.ID, &dto.UpdateAccountRequest{FullName: strPtr("Co Lan")})
	require.NoError(t, err)
	assert.Equal(t, "Co Lan", updated.FullName)

	require.NoError(t, svc.ChangePassword(f.ctx, created.ID, "NewPassw0rd"))
	stored, err := f.repos.Accounts.FindByID(f.ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(stored.Password, "NewPassw0rd"))
	assert.Equal(t, "Co Lan", stored.FullName)

	assert.True(t, apperrors.Is(svc.Delete(f.ctx, created.ID, created.ID), apperrors.ErrValidation))
	require.NoError(t, svc.Delete(f.ctx, created.ID, "someone-else"))
}
