package jira

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is a non-2xx response from the Jira API. It carries the HTTP
// status so callers can distinguish authentication problems from transient
// transport failures.
type StatusError struct {
	Code      int
	Operation string
}

func (e *StatusError) Error() string {
	switch e.Code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Sprintf("jira %s: authentication failed (%d), check the stored credentials", e.Operation, e.Code)
	case http.StatusNotFound:
		return fmt.Sprintf("jira %s: not found (404)", e.Operation)
	case http.StatusTooManyRequests:
		return fmt.Sprintf("jira %s: rate limit exceeded (429)", e.Operation)
	default:
		return fmt.Sprintf("jira %s: unexpected status %d", e.Operation, e.Code)
	}
}

// IsAuthError reports whether err is a 401/403 response.
func IsAuthError(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && (se.Code == http.StatusUnauthorized || se.Code == http.StatusForbidden)
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}
