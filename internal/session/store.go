package session

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"

	"github.com/apeerhq/apeer/internal/credentials"
	"github.com/apeerhq/apeer/internal/errors"
	"github.com/apeerhq/apeer/internal/log"
)

// State is the authentication lifecycle state.
type State int

const (
	// Unauthenticated means no session exists.
	Unauthenticated State = iota
	// Authenticating means one auth attempt is in flight.
	Authenticating
	// Authenticated means a session exists.
	Authenticated
	// AuthFailed means the last attempt failed; the reason is retained.
	AuthFailed
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case AuthFailed:
		return "auth_failed"
	default:
		return "unknown"
	}
}

// Identity is the authenticated user identity. Role is always lowercased.
type Identity struct {
	Email string
	Name  string
	Role  string
	Token string
}

// Authenticator is the slice of the auth façade the store drives.
type Authenticator interface {
	Login(ctx context.Context, email string) (Identity, error)
	LoginWithGoogle(ctx context.Context, credential string) (Identity, error)
	Register(ctx context.Context, email, name, role string) (Identity, error)
}

// Store owns the session: in-memory state mirrored to the credential
// store. It is constructed once at startup and injected into consumers;
// there is no ambient package-level session.
//
// All transitions are serialized under one mutex. Auth attempts carry a
// generation so a slow superseded attempt cannot overwrite the outcome of
// a newer one; the winner is decided by start order, not resolution order.
type Store struct {
	mu sync.Mutex

	state    State
	identity Identity
	failure  string

	// gen identifies the most recently started auth attempt.
	gen uint64

	auth   Authenticator
	creds  *credentials.Store
	logger *log.Logger
}

// NewStore creates the session store and hydrates it from persisted
// credentials. A malformed or half-present persisted session reads as
// Unauthenticated (the credential store clears both entries itself).
func NewStore(auth Authenticator, creds *credentials.Store, logger *log.Logger) *Store {
	s := &Store{
		state:  Unauthenticated,
		auth:   auth,
		creds:  creds,
		logger: logger,
	}

	if profile, token, ok := creds.Load(); ok {
		s.state = Authenticated
		s.identity = Identity{
			Email: profile.Email,
			Name:  profile.Name,
			Role:  strings.ToLower(profile.Role),
			Token: token,
		}
		logger.Debug("session hydrated", "email", profile.Email, "role", s.identity.Role)
	}

	return s
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Current returns the identity when authenticated.
func (s *Store) Current() (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Authenticated {
		return Identity{}, false
	}
	return s.identity, true
}

// Token returns the bearer token, or "" when logged out. Wired into the
// API client as its token source.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Authenticated {
		return ""
	}
	return s.identity.Token
}

// FailureReason returns the user-presentable reason of the last failed
// attempt, or "" when the store is not in AuthFailed.
func (s *Store) FailureReason() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != AuthFailed {
		return ""
	}
	return s.failure
}

// Login authenticates with an email identifier (development fallback; the
// backend accepts it on the Google endpoint).
func (s *Store) Login(ctx context.Context, email string) (Identity, error) {
	if email == "" {
		return Identity{}, errors.NewFieldRequiredError("email")
	}
	return s.attempt(func(ctx context.Context) (Identity, error) {
		return s.auth.Login(ctx, email)
	}, ctx)
}

// LoginWithGoogle authenticates with a Google ID token.
func (s *Store) LoginWithGoogle(ctx context.Context, credential string) (Identity, error) {
	if credential == "" {
		return Identity{}, errors.NewFieldRequiredError("credential")
	}
	return s.attempt(func(ctx context.Context) (Identity, error) {
		return s.auth.LoginWithGoogle(ctx, credential)
	}, ctx)
}

// Register creates an account and signs in.
func (s *Store) Register(ctx context.Context, email, name, role string) (Identity, error) {
	if email == "" {
		return Identity{}, errors.NewFieldRequiredError("email")
	}
	if name == "" {
		return Identity{}, errors.NewFieldRequiredError("name")
	}
	return s.attempt(func(ctx context.Context) (Identity, error) {
		return s.auth.Register(ctx, email, name, role)
	}, ctx)
}

// attempt runs one authentication call. Persisted storage is only touched
// on success; a failed attempt leaves whatever was stored before intact.
func (s *Store) attempt(call func(context.Context) (Identity, error), ctx context.Context) (Identity, error) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.state = Authenticating
	s.failure = ""
	s.mu.Unlock()

	identity, err := call(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		// A newer attempt (or a logout) superseded this one; its outcome
		// no longer matters.
		s.logger.Debug("discarding superseded auth attempt", "generation", gen)
		if err != nil {
			return Identity{}, err
		}
		return identity, nil
	}

	if err != nil {
		s.state = AuthFailed
		s.failure = presentableReason(err)
		s.logger.WithError(err).Warn("authentication failed")
		return Identity{}, err
	}

	identity.Role = strings.ToLower(identity.Role)
	s.state = Authenticated
	s.identity = identity

	if err := s.creds.Save(credentials.Profile{
		Email: identity.Email,
		Name:  identity.Name,
		Role:  identity.Role,
		Token: identity.Token,
	}, identity.Token); err != nil {
		// The in-memory session stands; persistence is a convenience.
		s.logger.WithError(err).Warn("failed to persist session")
	}

	s.logger.Info("authenticated", "email", identity.Email, "role", identity.Role)
	return identity, nil
}

// Logout clears the session locally. It never touches the network and is
// idempotent: calling it while already unauthenticated is a no-op that
// still leaves persisted storage empty.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++ // invalidate any in-flight attempt
	s.state = Unauthenticated
	s.identity = Identity{}
	s.failure = ""
	s.creds.Clear()
}

// ForceLogout is the 401 policy hook: clear everything, no questions
// asked. Identical to Logout today but kept separate so the global policy
// reads as such at the wiring site.
func (s *Store) ForceLogout() {
	s.Logout()
}

// presentableReason maps a classified error to the message shown on the
// login form.
func presentableReason(err error) string {
	switch errors.KindOf(err) {
	case errors.KindNetworkUnreachable:
		return "Cannot connect to server. Please ensure the backend is running."
	case errors.KindUnauthorized:
		return "Invalid credentials. Please try signing in again."
	case errors.KindForbidden:
		return "Access forbidden. Please check your Google OAuth configuration."
	default:
		var coded *errors.Error
		if stderrors.As(err, &coded) && coded.Message != "" {
			return coded.Message
		}
		return "Sign-in failed. Please try again."
	}
}
