package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/apeerhq/apeer/internal/api"
	"github.com/apeerhq/apeer/internal/errors"
)

// AdminService manages user accounts.
type AdminService struct {
	client *api.Client
	mock   bool
}

// NewAdminService creates the admin façade.
func NewAdminService(client *api.Client, mock bool) *AdminService {
	return &AdminService{client: client, mock: mock}
}

// Users returns all platform accounts.
func (s *AdminService) Users(ctx context.Context) ([]User, error) {
	if s.mock {
		return mockUsers(), nil
	}

	var users []User
	err := s.client.DoJSON(ctx, api.Request{
		Method: http.MethodGet,
		Path:   "/admin/users",
	}, &users)
	return users, err
}

type statusRequest struct {
	Status string `json:"status"`
}

// SetUserStatus activates or deactivates an account.
func (s *AdminService) SetUserStatus(ctx context.Context, userID, status string) (User, error) {
	if userID == "" {
		return User{}, errors.NewFieldRequiredError("user id")
	}
	if status == "" {
		return User{}, errors.NewFieldRequiredError("status")
	}

	if s.mock {
		for _, user := range mockUsers() {
			if user.ID == userID {
				user.Status = status
				return user, nil
			}
		}
		return User{}, errors.NewNotFoundError("/admin/users/" + userID)
	}

	var user User
	err := s.client.DoJSON(ctx, api.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/admin/users/%s/status", userID),
		Body:   statusRequest{Status: status},
	}, &user)
	return user, err
}
