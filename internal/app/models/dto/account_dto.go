package dto

import "github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"

// CreateAccountRequest represents the request body for creating an account
type CreateAccountRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=50" example:"admin"`
	Password    string `json:"password" binding:"required,min=8" example:"Passw0rd1"`
	Role        string `json:"role" binding:"omitempty,oneof=admin staff" example:"admin"`
	FullName    string `json:"fullName" binding:"max=150"`
	PhoneNumber string `json:"phoneNumber" binding:"max=20" example:"+84901234567"`
	Actor       string `json:"actor"`
}

// UpdateAccountRequest carries the profile fields to change. Passwords change through
// the reset flow or ChangePasswordRequest.
type UpdateAccountRequest struct {
	FullName    *string `json:"fullName" binding:"omitempty,max=150"`
	PhoneNumber *string `json:"phoneNumber" binding:"omitempty,max=20"`
	Role        *string `json:"role" binding:"omitempty,oneof=admin staff"`
	Actor       *string `json:"actor"`
}

// ChangePasswordRequest changes the password of an account
type ChangePasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// ToModel builds an account from the request. Password is still plaintext here.
func (r *CreateAccountRequest) ToModel() *models.Account {
	role := models.Role(r.Role)
	if role == "" {
		role = models.RoleAdmin
	}
	return &models.Account{
		Username:    r.Username,
		Password:    r.Password,
		Role:        role,
		FullName:    r.FullName,
		PhoneNumber: r.PhoneNumber,
		Actor:       r.Actor,
	}
}

// ApplyTo copies the set fields onto a
func (r *UpdateAccountRequest) ApplyTo(a *models.Account) {
	if r.FullName != nil {
		a.FullName = *r.FullName
	}
	if r.PhoneNumber != nil {
		a.PhoneNumber = *r.PhoneNumber
	}
	if r.Role != nil {
		a.Role = models.Role(*r.Role)
	}
	if r.Actor != nil {
		a.Actor = *r.Actor
	}
}
