package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models/dto"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/services"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/middleware"
)

// TwilioController drives the SMS password reset flow
type TwilioController struct {
	resetService services.PasswordResetService
}

// NewTwilioController creates a new TwilioController
func NewTwilioController(resetService services.PasswordResetService) *TwilioController {
	return &TwilioController{resetService: resetService}
}

// SendCode texts a verification code to the phone number of an account
// @Summary Send a verification code
// @Description Always answers success for a well-formed number, whether or not an account uses it.
// @Tags twilio
// @Accept json
// @Produce json
// @Param request body dto.SendCodeRequest true "Phone number"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse "SMS provider failed"
// @Router /twilio/send-code [post]
func (c *TwilioController) SendCode(ctx *gin.Context) {
	var req dto.SendCodeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.resetService.SendVerificationCode(ctx.Request.Context(), req.PhoneNumber); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil, "Verification code sent")
}

// VerifyCode checks a code without consuming it
// @Summary Verify a code
// @Tags twilio
// @Accept json
// @Produce json
// @Param request body dto.VerifyCodeRequest true "Phone number and code"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid or expired code"
// @Router /twilio/verify-code [post]
func (c *TwilioController) VerifyCode(ctx *gin.Context) {
	var req dto.VerifyCodeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.resetService.VerifyCode(ctx.Request.Context(), req.PhoneNumber, req.Code); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil, "Code verified")
}

// ResetPassword sets a new password using a verification code
// @Summary Reset password
// @Tags twilio
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Phone number, code and new password"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid or expired code, or weak password"
// @Router /twilio/reset-password [post]
func (c *TwilioController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.resetService.ResetPassword(ctx.Request.Context(), req.PhoneNumber, req.Code, req.NewPassword); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil, "Password reset successfully")
}
