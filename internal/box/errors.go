package box

import (
	"fmt"
	"net/http"
)

// ValidationError reports malformed caller input. It is returned
// synchronously, before any request is issued.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// TransportError reports a network-level failure reaching the Box API.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError is a non-success response from the Box API. ContextInfo carries
// the provider-supplied diagnostic payload verbatim.
type APIError struct {
	Status      int
	Code        string
	Message     string
	RequestID   string
	ContextInfo map[string]any
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("box API error (status %d, code %s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("box API error (status %d): %s", e.Status, e.Message)
}

// authExpired reports whether the response indicates an expired or invalid
// access token, i.e. whether a refresh-and-retry is worth attempting.
func (e *APIError) authExpired() bool {
	return e.Status == http.StatusUnauthorized
}

// AuthError reports a failed token exchange or refresh.
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
