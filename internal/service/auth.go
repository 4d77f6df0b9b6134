package service

import (
	"context"
	"net/http"
	"strings"

	"github.com/apeerhq/apeer/internal/api"
	"github.com/apeerhq/apeer/internal/session"
)

// AuthService handles sign-in, registration and the backend liveness
// check. It implements session.Authenticator.
type AuthService struct {
	client *api.Client
	mock   bool
}

// NewAuthService creates the auth façade.
func NewAuthService(client *api.Client, mock bool) *AuthService {
	return &AuthService{client: client, mock: mock}
}

type googleLoginRequest struct {
	Token string `json:"token"`
}

type registerRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type authResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func (r authResponse) identity() session.Identity {
	return session.Identity{
		Email: r.Email,
		Name:  r.Name,
		Role:  strings.ToLower(r.Role),
		Token: r.Token,
	}
}

// CheckHealth reports whether the backend answers its liveness endpoint.
func (s *AuthService) CheckHealth(ctx context.Context) bool {
	if s.mock {
		return true
	}
	resp, err := s.client.Do(ctx, api.Request{Method: http.MethodGet, Path: "/auth/health"})
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}

// LoginWithGoogle exchanges a Google ID token for a platform session.
func (s *AuthService) LoginWithGoogle(ctx context.Context, credential string) (session.Identity, error) {
	if s.mock {
		return session.Identity{
			Email: "mock@university.edu",
			Name:  "Mock User",
			Role:  RoleStudent,
			Token: mockToken(),
		}, nil
	}

	var resp authResponse
	err := s.client.DoJSON(ctx, api.Request{
		Method: http.MethodPost,
		Path:   "/auth/google",
		Body:   googleLoginRequest{Token: credential},
	}, &resp)
	if err != nil {
		return session.Identity{}, err
	}
	return resp.identity(), nil
}

// Login is the development fallback: the backend accepts a bare email on
// the Google endpoint and issues a session for it.
func (s *AuthService) Login(ctx context.Context, email string) (session.Identity, error) {
	if s.mock {
		return session.Identity{
			Email: email,
			Name:  mockNameFor(email),
			Role:  mockRoleFor(email),
			Token: mockToken(),
		}, nil
	}
	return s.LoginWithGoogle(ctx, email)
}

// Register creates a new account and signs it in.
func (s *AuthService) Register(ctx context.Context, email, name, role string) (session.Identity, error) {
	if s.mock {
		return session.Identity{
			Email: email,
			Name:  name,
			Role:  strings.ToLower(role),
			Token: mockToken(),
		}, nil
	}

	var resp authResponse
	err := s.client.DoJSON(ctx, api.Request{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Body:   registerRequest{Email: email, Name: name, Role: role},
	}, &resp)
	if err != nil {
		return session.Identity{}, err
	}
	return resp.identity(), nil
}
