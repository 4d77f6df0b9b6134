package session

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apeerhq/apeer/internal/credentials"
	"github.com/apeerhq/apeer/internal/errors"
	"github.com/apeerhq/apeer/internal/log"
)

// fakeAuth scripts the auth façade. Each call optionally blocks until
// released so tests can interleave attempts deterministically.
type fakeAuth struct {
	mu       sync.Mutex
	identity Identity
	err      error
	gate     chan struct{}
	calls    int
}

func (f *fakeAuth) resolve() (Identity, error) {
	f.mu.Lock()
	f.calls++
	gate := f.gate
	identity, err := f.identity, f.err
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return identity, err
}

func (f *fakeAuth) Login(ctx context.Context, email string) (Identity, error) {
	return f.resolve()
}

func (f *fakeAuth) LoginWithGoogle(ctx context.Context, credential string) (Identity, error) {
	return f.resolve()
}

func (f *fakeAuth) Register(ctx context.Context, email, name, role string) (Identity, error) {
	return f.resolve()
}

func quietLogger() *log.Logger {
	return log.New(log.Config{Level: log.LevelError, Format: log.FormatText, Output: io.Discard})
}

func TestStore_LoginSuccess(t *testing.T) {
	creds := credentials.NewStore(t.TempDir())
	auth := &fakeAuth{identity: Identity{Email: "student@cit.edu", Name: "Student", Role: "STUDENT", Token: "tok-1"}}
	store := NewStore(auth, creds, quietLogger())

	identity, err := store.Login(context.Background(), "student@cit.edu")
	require.NoError(t, err)
	assert.Equal(t, "student", identity.Role, "role must be lowercased")
	assert.Equal(t, Authenticated, store.State())
	assert.Equal(t, "tok-1", store.Token())

	// Success persists profile and token together.
	profile, token, ok := creds.Load()
	require.True(t, ok)
	assert.Equal(t, "student@cit.edu", profile.Email)
	assert.Equal(t, "tok-1", token)
}

func TestStore_LoginFailureDoesNotTouchStorage(t *testing.T) {
	creds := credentials.NewStore(t.TempDir())
	require.NoError(t, creds.Save(credentials.Profile{Email: "old@cit.edu", Name: "Old", Role: "teacher"}, "old-tok"))

	auth := &fakeAuth{err: errors.NewUnauthorizedError()}
	store := NewStore(auth, creds, quietLogger())

	_, err := store.Login(context.Background(), "new@cit.edu")
	require.Error(t, err)
	assert.Equal(t, AuthFailed, store.State())
	assert.Equal(t, "Invalid credentials. Please try signing in again.", store.FailureReason())

	// The previously persisted session is untouched.
	profile, token, ok := creds.Load()
	require.True(t, ok)
	assert.Equal(t, "old@cit.edu", profile.Email)
	assert.Equal(t, "old-tok", token)
}

func TestStore_FailureReasons(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "network unreachable",
			err:  errors.NewBackendOfflineError("http://localhost:8080/api", nil),
			want: "Cannot connect to server. Please ensure the backend is running.",
		},
		{
			name: "forbidden",
			err:  errors.NewForbiddenError(""),
			want: "Access forbidden. Please check your Google OAuth configuration.",
		},
		{
			name: "unclassified passthrough",
			err:  errors.New(errors.ErrCodeUnclassified, errors.KindUnclassified, "user already exists"),
			want: "user already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(&fakeAuth{err: tt.err}, credentials.NewStore(t.TempDir()), quietLogger())
			_, err := store.Login(context.Background(), "a@b.c")
			require.Error(t, err)
			assert.Equal(t, tt.want, store.FailureReason())
		})
	}
}

func TestStore_LogoutIdempotent(t *testing.T) {
	creds := credentials.NewStore(t.TempDir())
	auth := &fakeAuth{identity: Identity{Email: "a@b.c", Name: "A", Role: "admin", Token: "tok"}}
	store := NewStore(auth, creds, quietLogger())

	_, err := store.Login(context.Background(), "a@b.c")
	require.NoError(t, err)

	store.Logout()
	assert.Equal(t, Unauthenticated, store.State())
	_, _, ok := creds.Load()
	assert.False(t, ok)

	// Second logout while already unauthenticated: same end state.
	store.Logout()
	assert.Equal(t, Unauthenticated, store.State())
	_, _, ok = creds.Load()
	assert.False(t, ok)
	assert.Empty(t, store.Token())
}

func TestStore_HydrationRoundTrip(t *testing.T) {
	dir := t.TempDir()
	creds := credentials.NewStore(dir)
	require.NoError(t, creds.Save(credentials.Profile{
		Email: "teacher@cit.edu", Name: "Prof", Role: "TEACHER", Token: "tok-9",
	}, "tok-9"))

	store := NewStore(&fakeAuth{}, credentials.NewStore(dir), quietLogger())
	identity, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, "teacher@cit.edu", identity.Email)
	assert.Equal(t, "teacher", identity.Role)
	assert.Equal(t, "tok-9", identity.Token)
}

func TestStore_HydrationMalformedProfile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "profile.json"), []byte(`{not json`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "token"), []byte("whatever"), 0o600))

	store := NewStore(&fakeAuth{}, credentials.NewStore(dir), quietLogger())
	assert.Equal(t, Unauthenticated, store.State())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "both storage keys must be removed after hydration")
}

// A slow first attempt must not overwrite the outcome of a faster second
// attempt: resolution order loses to start order.
func TestStore_SupersededAttemptDiscarded(t *testing.T) {
	creds := credentials.NewStore(t.TempDir())
	auth := &fakeAuth{
		identity: Identity{Email: "slow@cit.edu", Name: "Slow", Role: "teacher", Token: "slow-tok"},
		gate:     make(chan struct{}),
	}
	store := NewStore(auth, creds, quietLogger())

	done := make(chan struct{})
	go func() {
		defer close(done)
		store.Login(context.Background(), "slow@cit.edu")
	}()

	// Wait for the first attempt to be in flight.
	require.Eventually(t, func() bool {
		auth.mu.Lock()
		defer auth.mu.Unlock()
		return auth.calls == 1
	}, 2*time.Second, time.Millisecond)

	// Second attempt starts and resolves immediately.
	auth.mu.Lock()
	slowGate := auth.gate
	auth.identity = Identity{Email: "fast@cit.edu", Name: "Fast", Role: "student", Token: "fast-tok"}
	auth.gate = nil
	auth.mu.Unlock()

	_, err := store.Login(context.Background(), "fast@cit.edu")
	require.NoError(t, err)

	// Release the slow attempt; its resolution must be discarded.
	close(slowGate)
	<-done

	identity, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, "fast@cit.edu", identity.Email)
	assert.Equal(t, "fast-tok", store.Token())
}

func TestStore_ValidationBeforeNetwork(t *testing.T) {
	auth := &fakeAuth{}
	store := NewStore(auth, credentials.NewStore(t.TempDir()), quietLogger())

	_, err := store.Login(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, errors.KindValidation, errors.KindOf(err))
	assert.Zero(t, auth.calls, "validation errors must not reach the network layer")

	_, err = store.Register(context.Background(), "a@b.c", "", "student")
	require.Error(t, err)
	assert.Equal(t, errors.KindValidation, errors.KindOf(err))
	assert.Zero(t, auth.calls)
}
