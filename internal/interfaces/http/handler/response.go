package handler

import "github.com/dentalcalc/backend/internal/interfaces/http/dto"

// These types exist only so swag can render typed response schemas in
// the generated docs; handlers answer with dto.Response at runtime.

// APIResponse is the documented shape of a successful response.
// @Description Standard API response wrapper with typed data field
type APIResponse[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data,omitempty"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
	Meta    *dto.Meta      `json:"meta,omitempty"`
}

// ErrorResponse is the documented shape of a failed response.
// @Description Standard error response
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
}

// SuccessResponse is the documented shape of a bodyless success, e.g.
// a delete.
// @Description Simple success response without data
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}
