package exitcode

import (
	stderrors "errors"
	"testing"

	"github.com/apeerhq/apeer/internal/errors"
)

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil", nil, Success},
		{"plain error", stderrors.New("boom"), GeneralError},
		{"validation", errors.NewFieldRequiredError("email"), ValidationError},
		{"unauthorized", errors.NewUnauthorizedError(), AuthError},
		{"forbidden", errors.NewForbiddenError(""), ForbiddenError},
		{"offline", errors.NewBackendOfflineError("http://localhost:8080", nil), NetworkError},
		{"server", errors.NewServerError(502, "bad gateway"), ServerError},
		{"not found", errors.NewNotFoundError("/groups"), GeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineExitCode(tt.err); got != tt.expected {
				t.Errorf("DetermineExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}
