package shared

// DomainError is an error carrying a stable machine-readable code.
// Handlers map the code to an HTTP status; the message is safe to
// return to clients.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches by code, so a wrapped or reconstructed domain error still
// compares equal to the sentinel under errors.Is.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")

	// Pricing configuration errors. These mark inputs for which no finite
	// price exists, as opposed to degenerate-but-valid configurations
	// (zero effective hours, unset rounding) which fall back to defined values.
	ErrInvalidDoctorPercentage = NewDomainError("INVALID_DOCTOR_PERCENTAGE", "Doctor percentage must be below 100%")
	ErrInvalidLifeYears        = NewDomainError("INVALID_LIFE_YEARS", "Equipment useful life must be at least one year")
	ErrInvalidPackDivisors     = NewDomainError("INVALID_PACK_DIVISORS", "Cases per pack and units per case must be positive")
)
