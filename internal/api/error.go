package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized is matched via errors.Is when the remote rejects the
// bearer token. Callers branch on it to trigger a re-login.
var ErrUnauthorized = errors.New("unauthorized")

// Error is a non-2xx response from the remote service. Detail carries the
// backend's {"detail": ...} envelope when present.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Detail, e.Status)
	}
	return fmt.Sprintf("api: request failed with status %d", e.Status)
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses.
func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// IsNotFound reports whether err is a 404 from the remote service.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
