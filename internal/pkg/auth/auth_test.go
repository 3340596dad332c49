package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/apperrors"
)

func newTestJWT(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{SecretKey: "test-secret", AccessTokenExp: exp, TokenIssuer: "kindergarten.test"})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWT(time.Hour)

	token, expiresIn, err := svc.GenerateAccessToken("acc-1", "admin", "admin")
	require.NoError(t, err)
	assert.Equal(t, int64(3600), expiresIn)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.AccountID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateTokenRejectsExpiredAndForeign(t *testing.T) {
	expired, _, err := newTestJWT(-time.Minute).GenerateAccessToken("acc-1", "admin", "admin")
	require.NoError(t, err)
	_, err = newTestJWT(time.Hour).ValidateToken(expired)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)

	other := NewJWTService(JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour, TokenIssuer: "kindergarten.test"})
	foreign, _, err := other.GenerateAccessToken("acc-1", "admin", "admin")
	require.NoError(t, err)
	_, err = newTestJWT(time.Hour).ValidateToken(foreign)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	_, err = newTestJWT(time.Hour).ValidateToken("")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestExtractBearerToken(t *testing.T) {
	tok, err := ExtractBearerToken("Bearer a.b.c")
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", tok)

	tok, err = ExtractBearerToken("\"a.b.c\"")
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", tok)

	_, err = ExtractBearerToken("Basic Zm9v")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestPasswordHashing(t *testing.T) {
	BcryptCost = bcrypt.MinCost
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, CheckPassword(hash, "s3cret-pass"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("not-a-hash", "s3cret-pass"))
	assert.False(t, CheckPassword("", ""))
}

func TestHashPasswordRejectsLongSecret(t *testing.T) {
	BcryptCost = bcrypt.MinCost
	_, err := HashPassword(strings.Repeat("x", 73))
	assert.ErrorIs(t, err, ErrSecretTooLong)

	hash, err := HashPassword(strings.Repeat("x", 72))
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, strings.Repeat("x", 72)))
}
