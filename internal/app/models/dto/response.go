package dto

import "time"

// APIResponse is the standard response envelope for all endpoints.
// Either Data or Error is set, never both.
type APIResponse struct {
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewAPIResponse creates a success envelope
func NewAPIResponse(data interface{}) APIResponse {
	return APIResponse{
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewAPIError creates an error envelope
func NewAPIError(detail *ErrorDetail) APIResponse {
	return APIResponse{
		Error:     detail,
		Timestamp: time.Now(),
	}
}
