package types

import "errors"

var (
	// ErrNotFound covers both missing documents and documents owned by someone else.
	ErrNotFound = errors.New("not found")
	// ErrValidation marks input rejected before any generation or storage call.
	ErrValidation = errors.New("validation failed")
)

// Response represents a generic API response for success or error messages.
type Response struct {
	Success   bool   `json:"success" example:"false"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty" example:"Itinerary not found"`
	RequestID string `json:"request_id,omitempty"`
}
