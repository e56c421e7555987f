package dto

import "net/http"

// Wire-level error codes, format ERR_<CATEGORY>_<DESCRIPTION>. These are
// the codes clients switch on; changing one is a breaking API change.

// General
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation
const (
	ErrCodeValidation         = "ERR_VALIDATION"
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	ErrCodeValidationFormat   = "ERR_VALIDATION_FORMAT"
	ErrCodeValidationRange    = "ERR_VALIDATION_RANGE"
)

// Authentication and tenancy
const (
	ErrCodeUnauthorized       = "ERR_UNAUTHORIZED"
	ErrCodeForbidden          = "ERR_FORBIDDEN"
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrCodeAccountDeactivated = "ERR_ACCOUNT_DEACTIVATED"
	ErrCodeClinicInactive     = "ERR_CLINIC_INACTIVE"
	ErrCodeTokenExpired       = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid       = "ERR_TOKEN_INVALID"
)

// Resources
const (
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Costing business rules. These surface as 422 so the frontend can show
// a field-level explanation rather than a generic failure.
const (
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
	// Doctor percentage fee at or above 100% makes the price formula
	// divide by zero or go negative.
	ErrCodeInvalidDoctorPercentage = "ERR_INVALID_DOCTOR_PERCENTAGE"
	ErrCodeInvalidLifeYears        = "ERR_INVALID_LIFE_YEARS"
	ErrCodeInvalidPackDivisors     = "ERR_INVALID_PACK_DIVISORS"
)

// Input
const (
	ErrCodeBadRequest      = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput    = "ERR_INVALID_INPUT"
	ErrCodeInvalidLogoType = "ERR_INVALID_LOGO_TYPE"
	ErrCodeUploadFailed    = "ERR_UPLOAD_FAILED"
)

const ErrCodeRateLimited = "ERR_RATE_LIMITED"

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,
	ErrCodeValidationRange:    http.StatusBadRequest,

	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeAccountDeactivated: http.StatusForbidden,
	ErrCodeClinicInactive:     http.StatusForbidden,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeInvalidState:            http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:            http.StatusUnprocessableEntity,
	ErrCodeInvalidDoctorPercentage: http.StatusUnprocessableEntity,
	ErrCodeInvalidLifeYears:        http.StatusUnprocessableEntity,
	ErrCodeInvalidPackDivisors:     http.StatusUnprocessableEntity,

	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidLogoType: http.StatusBadRequest,
	ErrCodeUploadFailed:    http.StatusBadGateway,

	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the status for a wire code, defaulting to 500
// for anything unmapped.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to wire-level codes.
// Domain errors carry short codes (NOT_FOUND, SLUG_TAKEN); the HTTP
// surface publishes the ERR_-prefixed form.
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":                 ErrCodeNotFound,
	"ALREADY_EXISTS":            ErrCodeAlreadyExists,
	"INVALID_INPUT":             ErrCodeInvalidInput,
	"INVALID_STATE":             ErrCodeInvalidState,
	"UNAUTHORIZED":              ErrCodeUnauthorized,
	"FORBIDDEN":                 ErrCodeForbidden,
	"CONCURRENCY_CONFLICT":      ErrCodeConcurrencyConflict,
	"INVALID_DOCTOR_PERCENTAGE": ErrCodeInvalidDoctorPercentage,
	"INVALID_LIFE_YEARS":        ErrCodeInvalidLifeYears,
	"INVALID_PACK_DIVISORS":     ErrCodeInvalidPackDivisors,
	"INVALID_CREDENTIALS":       ErrCodeInvalidCredentials,
	"ACCOUNT_DEACTIVATED":       ErrCodeAccountDeactivated,
	"CLINIC_INACTIVE":           ErrCodeClinicInactive,
	"SLUG_TAKEN":                ErrCodeAlreadyExists,
	"EMAIL_TAKEN":               ErrCodeAlreadyExists,
	"INVALID_LOGO_TYPE":         ErrCodeInvalidLogoType,
	"UPLOAD_FAILED":             ErrCodeUploadFailed,
	"VALIDATION_ERROR":          ErrCodeValidation,
	"BAD_REQUEST":               ErrCodeBadRequest,
	"INTERNAL_ERROR":            ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the wire format.
// Codes already in the wire format, or unknown codes, pass through as-is.
func NormalizeErrorCode(code string) string {
	if wireCode, ok := DomainErrorCodeMapping[code]; ok {
		return wireCode
	}
	return code
}
