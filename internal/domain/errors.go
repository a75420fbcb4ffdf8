package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for client operations
var (
	// ErrSessionExpired indicates the refresh token was rejected and the
	// user must sign in again
	ErrSessionExpired = errors.New("session expired, sign in again")

	// ErrUnauthorized indicates the request lacked valid credentials
	ErrUnauthorized = errors.New("bad credentials")

	// ErrForbidden indicates the account lacks the required role
	ErrForbidden = errors.New("operation not permitted")

	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = errors.New("resource not found")

	// ErrServerOffline indicates the backend is unreachable
	ErrServerOffline = errors.New("server is unreachable")
)

// APIError carries a server-provided error message and status code.
// Conflict (409) messages are surfaced to the user verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// IsConflict reports whether the error is a 409 conflict (duplicate
// username/email and the like).
func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == 409
}
