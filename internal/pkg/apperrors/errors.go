package apperrors

import "errors"

// Sentinel errors for the scheduling core. Services resolve validation and
// conflict outcomes into these and never let raw storage errors cross the
// component boundary.
var (
	// Input errors
	ErrInvalidArgument = errors.New("invalid argument")

	// Resource errors
	ErrNotFound = errors.New("resource not found")

	// Conflict-resolution outcomes
	ErrDuplicateSlot       = errors.New("duplicate slot")
	ErrSlotTaken           = errors.New("slot taken")
	ErrSlotTakenSecondSlot = errors.New("slot taken, second-slot candidate")

	// Storage-level constraint violation not otherwise classified
	ErrConflict = errors.New("conflict")

	// Transport/connection failure talking to the store
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Authentication errors
var (
	ErrBadCredentials  = errors.New("bad credentials")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrTokenExpired    = errors.New("token expired")
	ErrTokenInvalid    = errors.New("invalid token")
)

// CustomError wraps a sentinel with request-level context. Details carries
// an optional payload for the error envelope, such as the occupant list on
// a rejected schedule request.
type CustomError struct {
	Err     error
	Message string
	Details interface{}
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

// Unwrap exposes the sentinel for errors.Is.
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with an underlying sentinel.
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{Err: err, Message: message}
}

// WithDetails attaches context details to the error.
func (e *CustomError) WithDetails(details interface{}) *CustomError {
	e.Details = details
	return e
}

// NewNotFoundError creates a not-found error with a message.
func NewNotFoundError(message string) error {
	return &CustomError{Err: ErrNotFound, Message: message}
}

// NewInvalidArgumentError creates an invalid-argument error with a message.
func NewInvalidArgumentError(message string) error {
	return &CustomError{Err: ErrInvalidArgument, Message: message}
}

// NewConflictError creates a conflict error with a message.
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}
