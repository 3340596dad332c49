package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models/dto"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/apperrors"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	ContextAccountID = "accountID"
	ContextUsername  = "username"
	ContextRole      = "role"
)

// AuthMiddleware validates access tokens
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// JWTAuth rejects requests without a valid bearer token and stores the claims in the context
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			// Swagger UI sometimes sends the token as a query parameter
			header = c.Query("token")
		}
		if header == "" {
			abortWithError(c, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Authentication required")
			return
		}

		token, err := auth.ExtractBearerToken(header)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token format")
			return
		}

		claims, err := m.jwtService.ValidateToken(token)
		if err != nil {
			if errors.Is(err, apperrors.ErrTokenExpired) {
				abortWithError(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token has expired")
				return
			}
			abortWithError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")
			return
		}

		c.Set(ContextAccountID, claims.AccountID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RoleRequired allows only tokens carrying the given role. It must run after JWTAuth.
func (m *AuthMiddleware) RoleRequired(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, ok := c.Get(ContextRole)
		if !ok {
			abortWithError(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Authentication required")
			return
		}
		if value, _ := current.(string); value != string(role) {
			abortWithError(c, http.StatusForbidden, dto.ErrorCodeForbidden, "You don't have sufficient permissions for this operation")
			return
		}
		c.Next()
	}
}

// AccountID returns the authenticated account ID, or "" outside JWTAuth
func AccountID(c *gin.Context) string {
	return c.GetString(ContextAccountID)
}

// Username returns the authenticated username, or ""
func Username(c *gin.Context) string {
	return c.GetString(ContextUsername)
}
