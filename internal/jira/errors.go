package jira

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is returned when a requested issue does not exist.
var ErrNotFound = errors.New("issue not found")

// APIError is a non-2xx response from the Jira REST API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("jira returned %d: %s", e.StatusCode, e.Body)
}

// IsAuthError reports whether err is a Jira authorization failure (401/403).
func IsAuthError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}
