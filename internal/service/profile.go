package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/apeerhq/apeer/internal/api"
)

// ProfileService reads and updates the signed-in user's profile.
type ProfileService struct {
	client *api.Client
	mock   bool
}

// NewProfileService creates the profile façade.
func NewProfileService(client *api.Client, mock bool) *ProfileService {
	return &ProfileService{client: client, mock: mock}
}

// Get fetches the current profile.
func (s *ProfileService) Get(ctx context.Context) (Profile, error) {
	if s.mock {
		return Profile{
			ID:         "1",
			Name:       "Mock User",
			Email:      "mock@example.com",
			Role:       RoleStudent,
			JoinedDate: time.Now(),
		}, nil
	}

	var profile Profile
	err := s.client.DoJSON(ctx, api.Request{
		Method: http.MethodGet,
		Path:   "/user/profile",
	}, &profile)
	return profile, err
}

// Update changes the display name and, when avatarPath is non-empty,
// uploads a new avatar image. The payload is multipart so the transport
// sets the boundary; both fields are optional but at least one must be
// present for the call to be useful.
func (s *ProfileService) Update(ctx context.Context, name, avatarPath string) (Profile, error) {
	if s.mock {
		return Profile{
			ID:         "1",
			Name:       name,
			Email:      "mock@example.com",
			Role:       RoleStudent,
			JoinedDate: time.Now(),
		}, nil
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if name != "" {
		if err := mw.WriteField("name", name); err != nil {
			return Profile{}, fmt.Errorf("failed to build profile payload: %w", err)
		}
	}
	if avatarPath != "" {
		if err := attachFile(mw, "avatar", avatarPath); err != nil {
			return Profile{}, err
		}
	}
	if err := mw.Close(); err != nil {
		return Profile{}, fmt.Errorf("failed to finalize profile payload: %w", err)
	}

	var profile Profile
	err := s.client.DoJSON(ctx, api.Request{
		Method:      http.MethodPut,
		Path:        "/user/profile",
		Multipart:   &buf,
		ContentType: mw.FormDataContentType(),
	}, &profile)
	return profile, err
}

func attachFile(mw *multipart.Writer, field, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	part, err := mw.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("failed to build profile payload: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return nil
}
