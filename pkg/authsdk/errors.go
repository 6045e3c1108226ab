package authsdk

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx answer from the service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("passgate: http %d", e.StatusCode)
	}
	return fmt.Sprintf("passgate: http %d: %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// IsUnauthorized reports whether the session was missing or rejected.
func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}
