package rubikit

import (
	"fmt"
	"net/http"

	"github.com/go-faster/errors"
)

// Configuration errors
var (
	ErrMissingToken = errors.New("rubikit: bot token is required")
)

// Runtime errors
var (
	ErrAlreadyRunning = errors.New("rubikit: bot is already running")
	ErrEmptyRow       = errors.New("rubikit: keypad row needs at least one button")
)

// APIError is returned when the Bot API rejects a request, either with a
// non-2xx HTTP status or with a non-OK status in the response envelope.
type APIError struct {
	Method     string
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("rubikit: %s: api status %s", e.Method, e.Status)
	}
	return fmt.Sprintf("rubikit: %s: http %d: %s", e.Method, e.StatusCode, e.Body)
}

// Temporary reports whether retrying the request may succeed.
func (e *APIError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// IsAPIError reports whether err wraps an *APIError and returns it.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
