package models

import "time"

// Account defines the admin account based on the 'accounts' table
type Account struct {
	ID          string    `json:"id" db:"id"`
	Username    string    `json:"username" db:"username"`
	Password    string    `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	Role        Role      `json:"role" db:"role"`
	FullName    string    `json:"fullName" db:"full_name"`
	PhoneNumber string    `json:"phoneNumber" db:"phone_number"`
	Actor       string    `json:"actor" db:"actor"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// IsAdmin reports whether the account may use the administration API
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}
