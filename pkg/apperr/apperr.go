// Package apperr defines the application error taxonomy.
//
// Services return these instead of raw gorm/driver errors so controllers
// can map failures to HTTP statuses without knowing where they came from:
//
//	ValidationError     → 400 (field-level errors)
//	AuthenticationError → 401
//	AuthorizationError  → 401/403
//	NotFoundError       → 404
package apperr

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed input or a failed field constraint.
type ValidationError struct {
	Message string
	// Fields maps field name → human-readable message. May be nil for
	// non-field failures (e.g. an unknown referenced entity).
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// Validation creates a ValidationError with a single message.
func Validation(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ValidationFields creates a ValidationError carrying field-level messages.
func ValidationFields(fields map[string]string) *ValidationError {
	return &ValidationError{Message: "validation failed", Fields: fields}
}

// NotFoundError reports an absent referenced entity.
type NotFoundError struct {
	Resource string // "product", "order", "order line item", …
}

func (e *NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return e.Resource + " not found"
}

// NotFound creates a NotFoundError for the named resource.
func NotFound(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// AuthenticationError reports bad credentials or a disabled account.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	if e.Message == "" {
		return "authentication failed"
	}
	return e.Message
}

// Authentication creates an AuthenticationError.
func Authentication(message string) *AuthenticationError {
	return &AuthenticationError{Message: message}
}

// AuthorizationError reports access to a resource the caller may not use.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	if e.Message == "" {
		return "forbidden"
	}
	return e.Message
}

// ── Classification helpers ───────────────────────────────────────────────────

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) (*NotFoundError, bool) {
	var nf *NotFoundError
	ok := errors.As(err, &nf)
	return nf, ok
}

// IsAuthentication reports whether err is (or wraps) an AuthenticationError.
func IsAuthentication(err error) (*AuthenticationError, bool) {
	var ae *AuthenticationError
	ok := errors.As(err, &ae)
	return ae, ok
}
