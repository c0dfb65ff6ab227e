package client

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a non-2xx answer from the account API.
type APIError struct {
	Status int
	// Message is the server's "message" field, empty when absent.
	Message string
	// Details are the "msg" entries of an "errors" array, in order.
	Details []string
	// Lockout is set when the server signals that login attempts are
	// temporarily suspended.
	Lockout bool
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	case len(e.Details) > 0:
		return fmt.Sprintf("api error %d: %s", e.Status, strings.Join(e.Details, "; "))
	default:
		return fmt.Sprintf("api error %d", e.Status)
	}
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == 401
}

// UserMessage returns the text to show the user: the server message, else
// the joined details, else fallback.
func (e *APIError) UserMessage(fallback string) string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.Details) > 0 {
		return strings.Join(e.Details, "\n")
	}
	return fallback
}

// AsAPIError unwraps err into an *APIError when it holds one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
