package apperrors

import "errors"

// Error classes. Every storage and service failure is translated into one
// of these before it reaches the HTTP layer.
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")
	ErrValidationFailed = errors.New("validation failed")
	ErrStateViolation   = errors.New("state violation")
	ErrBadRequest       = errors.New("bad request")
	ErrUpstream         = errors.New("upstream service error")
)

// Donor, category and product errors
var (
	ErrDonorNotFound      = errors.New("donor not found")
	ErrDonorEmailExists   = errors.New("donor with this email already exists")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategoryNameExists = errors.New("category with this name already exists")
	ErrProductNotFound    = errors.New("product not found")
)

// Fridge errors
var (
	ErrFridgeNotFound     = errors.New("fridge not found")
	ErrFridgeNumberExists = errors.New("fridge with this number already exists")
	ErrFridgeNotAvailable = errors.New("fridge is not available for checkout")
	ErrFridgeHasHistory   = errors.New("fridge has checkout history and cannot be deleted")
	ErrNoActiveCheckout   = errors.New("no active checkout found")
)

// Verification errors
var (
	ErrCheckoutNotFound     = errors.New("checkout not found")
	ErrCheckoutItemNotFound = errors.New("checkout item not found")
)

// CustomError carries a class error with a caller-facing message and
// optional structured context.
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface.
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap.
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails adds context details to the error.
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewNotFoundError creates a not-found error with a message.
func NewNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewConflictError creates a conflict error with a message.
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewValidationError creates a validation error with a message.
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// NewStateViolationError creates a state-violation error with a message.
func NewStateViolationError(message string) error {
	return &CustomError{Err: ErrStateViolation, Message: message}
}

// NewUpstreamError wraps a failure from an external collaborator, such as
// the blob store, keeping the underlying message.
func NewUpstreamError(message string, cause error) error {
	return &CustomError{Err: errors.Join(ErrUpstream, cause), Message: message}
}
