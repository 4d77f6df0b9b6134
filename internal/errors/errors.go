package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an error into the closed set of outcomes the client
// distinguishes. Every error produced by the API adapter carries exactly
// one Kind; downstream consumers switch on it instead of probing messages.
type Kind string

const (
	// KindNetworkUnreachable means no response was received at all.
	KindNetworkUnreachable Kind = "network_unreachable"
	// KindUnauthorized maps to HTTP 401; the session is invalid or expired.
	KindUnauthorized Kind = "unauthorized"
	// KindForbidden maps to HTTP 403.
	KindForbidden Kind = "forbidden"
	// KindNotFound maps to HTTP 404.
	KindNotFound Kind = "not_found"
	// KindServerError maps to HTTP 5xx.
	KindServerError Kind = "server_error"
	// KindValidation is raised client-side before any network call.
	KindValidation Kind = "validation"
	// KindUnclassified is the passthrough fallback.
	KindUnclassified Kind = "unclassified"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Transport errors (API-001 to API-099)
	ErrCodeBackendOffline ErrorCode = "API-001"
	ErrCodeUnauthorized   ErrorCode = "API-002"
	ErrCodeForbidden      ErrorCode = "API-003"
	ErrCodeNotFound       ErrorCode = "API-004"
	ErrCodeServerError    ErrorCode = "API-005"
	ErrCodeUnclassified   ErrorCode = "API-006"

	// Auth errors (AUTH-001 to AUTH-099)
	ErrCodeInvalidCredential ErrorCode = "AUTH-001"
	ErrCodeAlreadyExists     ErrorCode = "AUTH-002"
	ErrCodeNotLoggedIn       ErrorCode = "AUTH-003"
	ErrCodeRoleDenied        ErrorCode = "AUTH-004"

	// Validation errors (VALIDATE-001 to VALIDATE-099)
	ErrCodeFieldRequired ErrorCode = "VALIDATE-001"
	ErrCodeFieldInvalid  ErrorCode = "VALIDATE-002"

	// Credential store errors (STORE-001 to STORE-099)
	ErrCodeProfileCorrupt ErrorCode = "STORE-001"
	ErrCodeStoreWrite     ErrorCode = "STORE-002"
)

// Error is the client's coded error type with a closed classification,
// remediation suggestions and an optional cause.
type Error struct {
	Code        ErrorCode
	Kind        Kind
	Message     string
	Suggestions []string
	Cause       error
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error
func New(code ErrorCode, kind Kind, message string) *Error {
	return &Error{
		Code:    code,
		Kind:    kind,
		Message: message,
	}
}

// Wrap creates a new Error wrapping an existing error
func Wrap(code ErrorCode, kind Kind, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Kind:    kind,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *Error) WithSuggestion(suggestion string) *Error {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *Error) WithSuggestions(suggestions ...string) *Error {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// KindOf returns the Kind carried by err, or KindUnclassified when err is
// not a coded Error. A nil err has no kind and returns the empty string.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Kind
	}
	return KindUnclassified
}

// IsKind reports whether err carries the given Kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Common error constructors for frequently used errors

// NewBackendOfflineError creates a network-unreachable error with the
// remediation hint surfaced whenever a connection is refused.
func NewBackendOfflineError(baseURL string, cause error) *Error {
	return Wrap(ErrCodeBackendOffline, KindNetworkUnreachable,
		fmt.Sprintf("cannot connect to server at %s", baseURL), cause).
		WithSuggestion("Ensure the APeer backend is running on " + baseURL).
		WithSuggestion("Run 'apeer health' to re-check connectivity")
}

// NewUnauthorizedError creates a 401 error
func NewUnauthorizedError() *Error {
	return New(ErrCodeUnauthorized, KindUnauthorized, "session is invalid or expired").
		WithSuggestion("Run 'apeer login' to re-authenticate")
}

// NewForbiddenError creates a 403 error
func NewForbiddenError(detail string) *Error {
	msg := "access forbidden"
	if detail != "" {
		msg = detail
	}
	return New(ErrCodeForbidden, KindForbidden, msg).
		WithSuggestion("Check that your Google OAuth origin is allow-listed").
		WithSuggestion("Verify your account has the required role")
}

// NewNotFoundError creates a 404 error
func NewNotFoundError(path string) *Error {
	return New(ErrCodeNotFound, KindNotFound, fmt.Sprintf("resource not found: %s", path))
}

// NewServerError creates a 5xx error
func NewServerError(status int, detail string) *Error {
	msg := fmt.Sprintf("server error (status %d)", status)
	if detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, detail)
	}
	return New(ErrCodeServerError, KindServerError, msg).
		WithSuggestion("Try again in a moment").
		WithSuggestion("Check the backend logs if the problem persists")
}

// NewValidationError creates a client-side validation error that never
// reaches the network layer.
func NewValidationError(field, detail string) *Error {
	return New(ErrCodeFieldInvalid, KindValidation, fmt.Sprintf("%s: %s", field, detail))
}

// NewFieldRequiredError creates a missing-field validation error
func NewFieldRequiredError(field string) *Error {
	return New(ErrCodeFieldRequired, KindValidation, fmt.Sprintf("%s is required", field))
}

// NewNotLoggedInError is returned by role-scoped commands without a session
func NewNotLoggedInError() *Error {
	return New(ErrCodeNotLoggedIn, KindUnauthorized, "not logged in").
		WithSuggestion("Run 'apeer login --email <email>' to authenticate")
}

// NewRoleDeniedError is returned when the route guard denies a view
func NewRoleDeniedError(view, role string) *Error {
	return New(ErrCodeRoleDenied, KindForbidden,
		fmt.Sprintf("role %q may not open %s", role, view))
}

// NewProfileCorruptError is returned when the persisted profile fails to parse
func NewProfileCorruptError(cause error) *Error {
	return Wrap(ErrCodeProfileCorrupt, KindUnclassified,
		"stored profile is not valid JSON", cause).
		WithSuggestion("Log in again to recreate your session")
}
