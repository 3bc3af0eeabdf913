package core

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is reported when the platform answers 404 for a resource.
// Match with errors.Is.
var ErrNotFound = errors.New("resource not found")

// APIError reports a non-2xx answer from a FIWARE component. The response
// body is kept verbatim because Orion and the IoT agents put their error
// details in a JSON body rather than the status line.
type APIError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Status is the HTTP status line.
	Status string

	// Body is the raw response body, truncated to a sane length.
	Body string

	// Operation names the client call that failed.
	Operation string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s: %s: %s", e.Operation, e.Status, e.Body)
	}
	return fmt.Sprintf("%s: %s", e.Operation, e.Status)
}

// Is maps 404 answers onto ErrNotFound.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}
