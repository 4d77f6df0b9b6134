package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	err := New(ErrCodeFieldRequired, KindValidation, "email is required")
	assert.Equal(t, "[VALIDATE-001] email is required", err.Error())

	wrapped := Wrap(ErrCodeBackendOffline, KindNetworkUnreachable,
		"cannot connect to server", fmt.Errorf("dial tcp: connection refused"))
	assert.Contains(t, wrapped.Error(), "[API-001] cannot connect to server")
	assert.Contains(t, wrapped.Error(), "connection refused")
}

func TestError_Suggestions(t *testing.T) {
	err := NewUnauthorizedError()
	require.NotEmpty(t, err.Suggestions)
	assert.Contains(t, err.Error(), "Suggestions:")
	assert.Contains(t, err.Error(), "apeer login")
}

func TestError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := Wrap(ErrCodeStoreWrite, KindUnclassified, "write failed", cause)
	assert.Equal(t, cause, stderrors.Unwrap(err))
	assert.True(t, stderrors.Is(err, cause))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, Kind("")},
		{"plain", fmt.Errorf("boom"), KindUnclassified},
		{"coded", NewNotFoundError("/groups"), KindNotFound},
		{"wrapped coded", fmt.Errorf("fetching: %w", NewForbiddenError("")), KindForbidden},
		{"validation", NewFieldRequiredError("name"), KindValidation},
		{"offline", NewBackendOfflineError("http://localhost:8080", nil), KindNetworkUnreachable},
		{"server", NewServerError(500, ""), KindServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestIsKind(t *testing.T) {
	err := NewUnauthorizedError()
	assert.True(t, IsKind(err, KindUnauthorized))
	assert.False(t, IsKind(err, KindForbidden))
}

func TestConstructorMessages(t *testing.T) {
	assert.Contains(t, NewServerError(502, "bad gateway").Message, "bad gateway")
	assert.Contains(t, NewValidationError("score", "must be between 1 and 5").Message, "score")
	assert.Contains(t, NewRoleDeniedError("admin-dashboard", "student").Message, `role "student"`)
	assert.Contains(t, NewBackendOfflineError("http://x", nil).Suggestions[0], "http://x")
}
