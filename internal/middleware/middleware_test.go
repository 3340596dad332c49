package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models/dto"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/apperrors"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	return body
}

func TestHandleAPIErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    dto.ErrorCode
		message string
	}{
		{"not found", apperrors.NewNotFoundError("class not found"), http.StatusNotFound, dto.ErrorCodeResourceNotFound, "class not found"},
		{"validation", apperrors.NewValidationError("className is required"), http.StatusBadRequest, dto.ErrorCodeValidationFailed, "className is required"},
		{"duplicate", apperrors.NewConflictError("username already exists"), http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "username already exists"},
		{"roster", apperrors.NewRosterConflictError("students already in this class: An"), http.StatusConflict, dto.ErrorCodeRosterConflict, "students already in this class: An"},
		{"credentials", fmt.Errorf("login: %w", apperrors.ErrInvalidCredentials), http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
		{"upstream", apperrors.NewUpstreamError("failed to send verification code", errors.New("twilio down")), http.StatusBadGateway, dto.ErrorCodeExternalServiceError, "failed to send verification code"},
		{"code", apperrors.NewCustomError(fmt.Errorf("%w: %w", apperrors.ErrValidation, apperrors.ErrInvalidVerificationCode), "invalid or expired code"), http.StatusBadRequest, dto.ErrorCodeInvalidCode, "invalid or expired code"},
		{"internal hidden", apperrors.NewInternalError("update class", errors.New("connection reset")), http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			body := decodeError(t, w)
			assert.False(t, body.Success)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.Equal(t, tt.message, body.Error.Message)
		})
	}
}

func TestHandleAPIErrorIncludesDetails(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	err := apperrors.NewCustomError(apperrors.ErrValidation, "password is too weak").
		WithDetails(map[string]interface{}{"password": "must contain a digit"})
	HandleAPIError(c, err)

	body := decodeError(t, w)
	assert.Equal(t, map[string]interface{}{"password": "must contain a digit"}, body.Error.Details)
}

func newJWT() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "test"})
}

func protectedRouter(jwt *auth.JWTService) *gin.Engine {
	m := NewAuthMiddleware(jwt)
	r := gin.New()
	r.GET("/admin", m.JWTAuth(), m.RoleRequired(models.RoleAdmin), func(c *gin.Context) {
		c.String(http.StatusOK, AccountID(c)+":"+Username(c))
	})
	return r
}

func TestJWTAuth(t *testing.T) {
	jwt := newJWT()
	r := protectedRouter(jwt)

	adminToken, _, err := jwt.GenerateAccessToken("acc-1", "admin", string(models.RoleAdmin))
	require.NoError(t, err)
	staffToken, _, err := jwt.GenerateAccessToken("acc-2", "staff", string(models.RoleStaff))
	require.NoError(t, err)
	foreign, _, err := auth.NewJWTService(auth.JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour, TokenIssuer: "test"}).
		GenerateAccessToken("acc-1", "admin", string(models.RoleAdmin))
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
		code   dto.ErrorCode
	}{
		{"missing", "", http.StatusUnauthorized, dto.ErrorCodeTokenNotFound},
		{"malformed", "Token abc", http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
		{"wrong signature", "Bearer " + foreign, http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
		{"not admin", "Bearer " + staffToken, http.StatusForbidden, dto.ErrorCodeForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decodeError(t, w).Error.Code)
		})
	}

	t.Run("admin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+adminToken)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "acc-1:admin", w.Body.String())
	})
}

func TestJWTAuthExpiredToken(t *testing.T) {
	expired := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: -time.Minute, TokenIssuer: "test"})
	token, _, err := expired.GenerateAccessToken("acc-1", "admin", string(models.RoleAdmin))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	protectedRouter(newJWT()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrorCodeExpiredToken, decodeError(t, w).Error.Code)
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2024, 9, 5, 8, 0, 0, 0, time.UTC)
	l := NewRateLimiter(60, 2)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("1.2.3.4"))
	assert.True(t, l.Allow("1.2.3.4"))
	assert.False(t, l.Allow("1.2.3.4"))
	assert.True(t, l.Allow("5.6.7.8"))

	now = now.Add(1500 * time.Millisecond)
	assert.True(t, l.Allow("1.2.3.4"))
	assert.False(t, l.Allow("1.2.3.4"))
}

func TestRateLimiterForgetsIdleClients(t *testing.T) {
	now := time.Date(2024, 9, 5, 8, 0, 0, 0, time.UTC)
	l := NewRateLimiter(60, 1)
	l.now = func() time.Time { return now }

	for i := 0; i < 100; i++ {
		l.Allow(fmt.Sprintf("10.0.0.%d", i))
	}
	assert.Len(t, l.clients, 100)

	now = now.Add(l.idleTTL)
	assert.True(t, l.Allow("10.0.1.1"))
	assert.Len(t, l.clients, 1)

	// an evicted client starts over with a full bucket
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
}

func TestRateLimiterHandler(t *testing.T) {
	l := NewRateLimiter(1, 1)
	r := gin.New()
	r.Use(l.Handler())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, dto.ErrorCodeTooManyRequests, decodeError(t, w).Error.Code)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:3000"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestBindJSON(t *testing.T) {
	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var req dto.ChangeSemesterRequest
		if !BindJSON(c, &req) {
			return
		}
		c.String(http.StatusOK, req.SemesterID)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, dto.ErrorCodeValidationFailed, body.Error.Code)
	assert.Equal(t, "semesterID", body.Error.Field)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"semesterID":"s1"}`)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "s1", w.Body.String())
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(zerolog.Nop()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}
