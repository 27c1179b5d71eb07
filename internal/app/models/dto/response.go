package dto

import "time"

// APIResponse is the standard success envelope.
type APIResponse struct {
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewAPIResponse wraps data in the success envelope.
func NewAPIResponse(data interface{}) APIResponse {
	return APIResponse{Data: data, Timestamp: time.Now()}
}

// SuccessResponse carries a bare confirmation message.
type SuccessResponse struct {
	Message string `json:"message"`
}
