package models

import "time"

// VerificationCodeTTL is how long an SMS code stays valid
const VerificationCodeTTL = 10 * time.Minute

// VerificationCode is a pending password-reset code keyed by phone number
type VerificationCode struct {
	PhoneNumber string    `json:"phoneNumber" db:"phone_number"`
	CodeHash    string    `json:"-" db:"code_hash"` // bcrypt hash of the 6-digit code
	ExpiresAt   time.Time `json:"expiresAt" db:"expires_at"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// Expired reports whether the code is no longer usable at now
func (v *VerificationCode) Expired(now time.Time) bool {
	return !now.Before(v.ExpiresAt)
}
