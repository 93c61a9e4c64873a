package generativeAI

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// ErrOverloaded marks a failure the caller may retry after a pause.
var ErrOverloaded = errors.New("generation service overloaded")

// IsOverloaded reports whether err signals temporary unavailability.
// Structured API codes are checked first; message matching covers errors
// that reach us without one.
func IsOverloaded(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrOverloaded) {
		return true
	}
	if code, status, ok := apiErrorCode(err); ok {
		return code == http.StatusServiceUnavailable || status == "UNAVAILABLE"
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "503") ||
		strings.Contains(msg, "overloaded") ||
		strings.Contains(msg, "unavailable")
}

func classify(err error) error {
	if IsOverloaded(err) {
		return fmt.Errorf("%w: %w", ErrOverloaded, err)
	}
	return err
}

func apiErrorCode(err error) (int, string, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, apiErr.Status, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, apiErrPtr.Status, true
	}
	return 0, "", false
}
