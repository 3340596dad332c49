package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models/dto"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/services"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/middleware"
)

// AccountController manages admin accounts
type AccountController struct {
	accountService services.AccountService
}

// NewAccountController creates a new AccountController
func NewAccountController(accountService services.AccountService) *AccountController {
	return &AccountController{accountService: accountService}
}

// GetAccounts lists accounts
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Account}
// @Router /account [get]
func (c *AccountController) GetAccounts(ctx *gin.Context) {
	accounts, err := c.accountService.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondList(ctx, accounts)
}

// GetAccount retrieves an account
// @Summary Get an account
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Success 200 {object} dto.APIResponse{data=models.Account}
// @Failure 404 {object} dto.ErrorResponse
// @Router /account/{id} [get]
func (c *AccountController) GetAccount(ctx *gin.Context) {
	account, err := c.accountService.Get(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, account, "")
}

// CreateAccount creates an account
// @Summary Create an account
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAccountRequest true "Account"
// @Success 201 {object} dto.APIResponse{data=models.Account}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Username already exists"
// @Router /account [post]
func (c *AccountController) CreateAccount(ctx *gin.Context) {
	var req dto.CreateAccountRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	account, err := c.accountService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, account, "Account created successfully")
}

// UpdateAccount changes profile fields
// @Summary Update an account
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Param request body dto.UpdateAccountRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Account}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /account/{id} [put]
func (c *AccountController) UpdateAccount(ctx *gin.Context) {
	var req dto.UpdateAccountRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	account, err := c.accountService.Update(ctx, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, account, "Account updated successfully")
}

// ChangePassword sets a new password
// @Summary Change an account password
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Param request body dto.ChangePasswordRequest true "New password"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /account/{id}/password [put]
func (c *AccountController) ChangePassword(ctx *gin.Context) {
	var req dto.ChangePasswordRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.accountService.ChangePassword(ctx, ctx.Param("id"), req.NewPassword); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil, "Password changed successfully")
}

// DeleteAccount deletes an account other than the caller's
// @Summary Delete an account
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Cannot delete your own account"
// @Failure 404 {object} dto.ErrorResponse
// @Router /account/{id} [delete]
func (c *AccountController) DeleteAccount(ctx *gin.Context) {
	if err := c.accountService.Delete(ctx, ctx.Param("id"), middleware.AccountID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil, "Account deleted successfully")
}
