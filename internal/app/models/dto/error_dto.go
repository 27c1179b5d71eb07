package dto

import "time"

// ReasonCode is a stable, enumerable failure reason. Callers (including
// tests and the frontend) branch on these instead of parsing messages.
type ReasonCode string

// Reason codes for the API surface.
const (
	// Input and lookup failures
	ReasonInvalidArgument ReasonCode = "invalid_argument"
	ReasonNotFound        ReasonCode = "not_found"

	// Conflict-resolution outcomes
	ReasonDuplicateSlot       ReasonCode = "duplicate_slot"
	ReasonSlotTaken           ReasonCode = "slot_taken"
	ReasonSlotTakenSecondSlot ReasonCode = "slot_taken_second_slot"

	// Storage-level failures
	ReasonConflict           ReasonCode = "conflict"
	ReasonStorageUnavailable ReasonCode = "storage_unavailable"

	// Authentication
	ReasonBadCredentials  ReasonCode = "bad_credentials"
	ReasonUnauthenticated ReasonCode = "unauthenticated"

	// Fallback
	ReasonServerError ReasonCode = "server_error"
)

// ErrorDetail carries the reason code plus human-readable context.
type ErrorDetail struct {
	Code    ReasonCode  `json:"code" example:"slot_taken"`
	Message string      `json:"message" example:"another class occupies this minute"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Success   bool         `json:"success" example:"false"`
	Error     *ErrorDetail `json:"error"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewErrorDetail creates an error detail.
func NewErrorDetail(code ReasonCode, message string) *ErrorDetail {
	return &ErrorDetail{Code: code, Message: message}
}

// WithDetails attaches additional payload, such as the occupant list on a
// rejected schedule request.
func (e *ErrorDetail) WithDetails(details interface{}) *ErrorDetail {
	e.Details = details
	return e
}

// NewErrorResponse creates a standard error response.
func NewErrorResponse(errorDetail *ErrorDetail) *ErrorResponse {
	return &ErrorResponse{
		Success:   false,
		Error:     errorDetail,
		Timestamp: time.Now(),
	}
}
