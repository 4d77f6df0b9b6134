package credentials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	in := Profile{Email: "alice@cit.edu", Name: "Alice", Role: "student", Token: "tok-1"}
	require.NoError(t, store.Save(in, "tok-1"))

	profile, token, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, in, profile)
	assert.Equal(t, "tok-1", token)
}

func TestStore_LoadEmpty(t *testing.T) {
	store := NewStore(t.TempDir())
	_, _, ok := store.Load()
	assert.False(t, ok)
}

func TestStore_MalformedProfileClearsBoth(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "profile.json"), []byte(`{not json`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "token"), []byte("tok-1"), 0o600))

	store := NewStore(dir)
	_, _, ok := store.Load()
	assert.False(t, ok)

	_, err := os.Stat(filepath.Join(dir, "profile.json"))
	assert.True(t, os.IsNotExist(err), "profile entry must be removed")
	_, err = os.Stat(filepath.Join(dir, "token"))
	assert.True(t, os.IsNotExist(err), "token entry must be removed")
}

func TestStore_MismatchReadsAsNoSession(t *testing.T) {
	tests := []struct {
		name  string
		write func(t *testing.T, dir string)
	}{
		{
			name: "profile without token",
			write: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "profile.json"),
					[]byte(`{"email":"a@b.c","name":"A","role":"student"}`), 0o600))
			},
		},
		{
			name: "token without profile",
			write: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "token"), []byte("tok-1"), 0o600))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tt.write(t, dir)

			store := NewStore(dir)
			_, _, ok := store.Load()
			assert.False(t, ok)

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Empty(t, entries, "both entries must be cleared on mismatch")
		})
	}
}

func TestStore_ClearIdempotent(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Save(Profile{Email: "a@b.c", Name: "A", Role: "admin"}, "tok"))

	store.Clear()
	store.Clear()

	_, _, ok := store.Load()
	assert.False(t, ok)
}
