package errors

import (
	"errors"
	"fmt"
)

// Common error values for the HR console client
var (
	// Credential errors
	ErrUnauthenticated = errors.New("not authenticated")
	ErrSessionExpired  = errors.New("session expired")
	ErrNoTokenIssued   = errors.New("no token issued")

	// Request errors
	ErrMissingID = errors.New("id is required")
)

// SessionExpiredMessage is shown to the user when the server rejects the session
const SessionExpiredMessage = "Session expired. Please login again."

// SessionExpiredError is returned when the server answered 401. The session has
// already been cleared by the time a caller sees it.
type SessionExpiredError struct {
	Path string
}

func (e *SessionExpiredError) Error() string {
	return SessionExpiredMessage
}

func (e *SessionExpiredError) Unwrap() error {
	return ErrSessionExpired
}

// APIError is any other non-2xx response
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// NetworkError wraps a transport failure (connection refused, timeout, ...)
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ValidationError is a client-side rejection of input, raised before any request is made
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// AuthenticationError is returned by login when the server did not establish a session
type AuthenticationError struct {
	Message string
	Err     error
}

func (e *AuthenticationError) Error() string {
	if e.Message != "" {
		return "authentication failed: " + e.Message
	}
	return "authentication failed"
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// NewValidationError builds a ValidationError for a single field
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// MissingID rejects a resource call made without an identifier
func MissingID() error {
	return &ValidationError{Field: "id", Message: "is required", Err: ErrMissingID}
}

// IsSessionExpired reports whether err came from a 401
func IsSessionExpired(err error) bool {
	return errors.Is(err, ErrSessionExpired)
}

// IsValidation reports whether err is a client-side validation failure
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StatusCode returns the HTTP status carried by err, or 0
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	if errors.Is(err, ErrSessionExpired) {
		return 401
	}
	return 0
}

// Message is the text to show a person: the server's own message when there is one,
// without the call-site prefixes added on the way up
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	var expired *SessionExpiredError
	if errors.As(err, &expired) {
		return expired.Error()
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	var authErr *AuthenticationError
	if errors.As(err, &authErr) {
		return authErr.Error()
	}
	if errors.Is(err, ErrUnauthenticated) {
		return "Please login to continue."
	}
	return err.Error()
}

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
