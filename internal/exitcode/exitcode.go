package exitcode

import (
	"os"

	"github.com/apeerhq/apeer/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// ValidationError indicates the input was rejected before any request
	ValidationError = 3

	// AuthError indicates a missing or rejected session
	AuthError = 4

	// ForbiddenError indicates the session's role may not perform the action
	ForbiddenError = 5

	// NetworkError indicates the backend could not be reached
	NetworkError = 6

	// ServerError indicates the backend failed
	ServerError = 7

	// Interrupted indicates the run was cancelled by the user
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	Exit(DetermineExitCode(err))
}

// DetermineExitCode maps a classified error to its exit code. Errors that
// never went through classification fall back to GeneralError.
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	switch errors.KindOf(err) {
	case errors.KindValidation:
		return ValidationError
	case errors.KindUnauthorized:
		return AuthError
	case errors.KindForbidden:
		return ForbiddenError
	case errors.KindNetworkUnreachable:
		return NetworkError
	case errors.KindServerError:
		return ServerError
	default:
		return GeneralError
	}
}
