package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthenticated is returned before any request is sent when an
	// operation needs a session token and none is stored.
	ErrUnauthenticated = errors.New("no authentication token found")

	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// APIError is a non-2xx response. Message is the server's message when it
// sent one, otherwise "HTTP Error: <status>".
type APIError struct {
	StatusCode int
	Message    string
	Method     string
	Path       string
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return target == ErrUnauthorized
	case http.StatusForbidden:
		return target == ErrForbidden
	case http.StatusNotFound:
		return target == ErrNotFound
	case http.StatusConflict:
		return target == ErrConflict
	default:
		return false
	}
}

// AuthError wraps register and login failures.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Message is the server-supplied text when there is one.
func (e *AuthError) Message() string {
	var apiErr *APIError
	if errors.As(e.Err, &apiErr) {
		return apiErr.Message
	}
	return e.Err.Error()
}
