package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the hashing cost for admin passwords and SMS verification codes.
// Tests lower it to bcrypt.MinCost.
var BcryptCost = bcrypt.DefaultCost

// ErrSecretTooLong is returned for secrets bcrypt would otherwise refuse
var ErrSecretTooLong = errors.New("secret exceeds 72 bytes")

// HashPassword returns the bcrypt hash stored in place of a password or reset code
func HashPassword(secret string) (string, error) {
	if len(secret) > 72 {
		return "", ErrSecretTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash secret: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether secret matches a stored hash. An empty or malformed hash never matches.
func CheckPassword(hash, secret string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
