package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models/dto"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/apperrors"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/logger"
)

// errorMapping links a taxonomy sentinel to its HTTP status and error code.
// Order matters: the first match wins.
type errorMapping struct {
	target   error
	status   int
	code     dto.ErrorCode
	fallback string
}

var errorMappings = []errorMapping{
	{apperrors.ErrInvalidVerificationCode, http.StatusBadRequest, dto.ErrorCodeInvalidCode, "Invalid or expired code"},
	{apperrors.ErrValidation, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},
	{apperrors.ErrRosterConflict, http.StatusConflict, dto.ErrorCodeRosterConflict, "Roster conflict"},
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"},
	{apperrors.ErrUpstream, http.StatusBadGateway, dto.ErrorCodeExternalServiceError, "External service failed"},
}

// HandleAPIError maps an error from the service layer to the response envelope.
// Internal and unknown errors are logged and answered with a generic message.
func HandleAPIError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if !apperrors.Is(err, m.target) {
			continue
		}

		detail := dto.NewErrorDetail(m.code, apperrors.Message(err, m.fallback))
		if details := apperrors.Details(err); len(details) > 0 {
			detail.WithDetails(details)
		}
		if m.status == http.StatusBadGateway {
			logger.Warn().Err(err).Str("path", c.FullPath()).Msg("Upstream failure")
		}
		c.JSON(m.status, dto.NewErrorResponse(detail))
		return
	}

	logger.Error().Err(err).
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Msg("Unhandled error")
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
	))
}

// abortWithError writes an error envelope and stops the chain
func abortWithError(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}
