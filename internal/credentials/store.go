package credentials

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/apeerhq/apeer/internal/errors"
)

const (
	profileFile = "profile.json"
	tokenFile   = "token"
)

// Profile is the persisted identity blob. Role is stored lowercased.
type Profile struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Token string `json:"token,omitempty"`
}

// Store persists the session as two independent entries under one
// directory: a JSON profile blob and a raw bearer token. The two must be
// written and cleared together; a mismatch between them reads as "no
// session" and removes both.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created lazily
// on the first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save persists the profile and token together. When either write fails
// both entries are cleared so a later Load cannot see half a session.
func (s *Store) Save(profile Profile, token string) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, errors.KindUnclassified,
			"failed to create credentials directory", err)
	}

	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, errors.KindUnclassified,
			"failed to encode profile", err)
	}

	if err := os.WriteFile(filepath.Join(s.dir, profileFile), data, 0o600); err != nil {
		s.Clear()
		return errors.Wrap(errors.ErrCodeStoreWrite, errors.KindUnclassified,
			"failed to write profile", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0o600); err != nil {
		s.Clear()
		return errors.Wrap(errors.ErrCodeStoreWrite, errors.KindUnclassified,
			"failed to write token", err)
	}
	return nil
}

// Load reads the persisted session. ok is false when no valid session is
// stored. A malformed profile, or one entry present without the other,
// clears both entries and reads as no session.
func (s *Store) Load() (Profile, string, bool) {
	profileData, profileErr := os.ReadFile(filepath.Join(s.dir, profileFile))
	tokenData, tokenErr := os.ReadFile(filepath.Join(s.dir, tokenFile))

	if profileErr != nil && tokenErr != nil {
		return Profile{}, "", false
	}
	if profileErr != nil || tokenErr != nil {
		// Half a session is no session.
		s.Clear()
		return Profile{}, "", false
	}

	var profile Profile
	if err := json.Unmarshal(profileData, &profile); err != nil {
		s.Clear()
		return Profile{}, "", false
	}

	token := string(tokenData)
	if profile.Email == "" || token == "" {
		s.Clear()
		return Profile{}, "", false
	}

	return profile, token, true
}

// Clear removes both persisted entries. Always succeeds locally; missing
// files are not an error, which makes Clear (and logout) idempotent.
func (s *Store) Clear() {
	os.Remove(filepath.Join(s.dir, profileFile))
	os.Remove(filepath.Join(s.dir, tokenFile))
}
