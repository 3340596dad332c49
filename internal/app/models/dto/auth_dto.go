package dto

import "github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"

// LoginRequest represents the login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"Passw0rd1"`
}

// AuthResponse is returned after a successful login
type AuthResponse struct {
	AccessToken string          `json:"accessToken"`
	ExpiresIn   int64           `json:"expiresIn" example:"3600"`
	TokenType   string          `json:"tokenType" example:"Bearer"`
	Account     *models.Account `json:"account"`
}

// SendCodeRequest asks for a verification code by SMS
type SendCodeRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required" example:"+84901234567"`
}

// VerifyCodeRequest checks a verification code
type VerifyCodeRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Code        string `json:"code" binding:"required,len=6,numeric" example:"123456"`
}

// ResetPasswordRequest sets a new password using a verification code
type ResetPasswordRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Code        string `json:"code" binding:"required,len=6,numeric"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}
