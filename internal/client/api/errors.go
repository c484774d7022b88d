package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnreachable marks a transport failure: no HTTP response was obtained at
// all. It is the only error without a status code.
var ErrUnreachable = errors.New("server unreachable, check that the BookGenie backend is running")

// StatusError is returned for any response outside the 2xx range. It carries
// the HTTP status and the decoded body so callers can branch on either.
type StatusError struct {
	Status int
	Body   map[string]any
}

func (e *StatusError) Error() string {
	return e.Message()
}

// Message returns the server's human-readable error text: the body's "error"
// field, then "message", then a generic "HTTP <status>" fallback.
func (e *StatusError) Message() string {
	if s, ok := e.Body["error"].(string); ok && s != "" {
		return s
	}
	if s, ok := e.Body["message"].(string); ok && s != "" {
		return s
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

// IsUnauthorized reports whether err is a 401 response.
func IsUnauthorized(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == http.StatusUnauthorized
}
