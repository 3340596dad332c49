package dto

import (
	"time"

	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/helpers"
)

// APIResponse is the uniform envelope for every endpoint
type APIResponse struct {
	Success   bool         `json:"success" example:"true"`
	Data      interface{}  `json:"data,omitempty"`
	Message   string       `json:"message,omitempty" example:"Operation completed successfully"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewSuccessResponse wraps data in a success envelope
func NewSuccessResponse(data interface{}, message string) APIResponse {
	return APIResponse{
		Success:   true,
		Data:      data,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// SuccessResponse represents a message-only response body
type SuccessResponse struct {
	Message string `json:"message"`
}

// PaginatedResponse represents a paginated list with metadata
type PaginatedResponse struct {
	Items      interface{}            `json:"items"`
	Pagination helpers.PaginationInfo `json:"pagination"`
}
