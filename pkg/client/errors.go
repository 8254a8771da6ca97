package client

import (
	"errors"
	"fmt"
	"time"
)

// HTTPError represents a non-2xx HTTP response from the API.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// NotReadyError is returned when the API accepted a request for a document
// that has not finished converting. RetryAfter is the server's suggested wait.
type NotReadyError struct {
	DocumentID string
	RetryAfter time.Duration
}

func (e *NotReadyError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("document %s not ready, retry after %s", e.DocumentID, e.RetryAfter)
	}
	return fmt.Sprintf("document %s not ready", e.DocumentID)
}

// IsNotReady returns the NotReadyError wrapped in err, if any.
func IsNotReady(err error) (*NotReadyError, bool) {
	var nr *NotReadyError
	if errors.As(err, &nr) {
		return nr, true
	}
	return nil, false
}
