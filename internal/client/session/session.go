// Package session owns the authentication lifecycle: the bearer token, the
// cached user identity, and the Unauthenticated/Verifying/Authenticated
// state machine. No other component may persist or clear the token.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"

	"github.com/bookgenie/bookgenie-cli/internal/client/api"
	"github.com/bookgenie/bookgenie-cli/internal/client/models"
	"github.com/bookgenie/bookgenie-cli/internal/logging"
)

type Status int

const (
	StatusUnauthenticated Status = iota
	StatusVerifying
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusVerifying:
		return "verifying"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// ErrLoginFailed is returned when the server reports a failure without a
// usable error message.
var ErrLoginFailed = errors.New("login failed")

// Doer is the API surface the session manager needs.
type Doer interface {
	Request(ctx context.Context, endpoint string, opts api.Options) (json.RawMessage, error)
}

// TokenStore persists the token across restarts.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

// Credentials is the login form.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Registration is the sign-up form. Field names on the wire follow the
// backend's registration endpoint.
type Registration struct {
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=6"`
	FirstName     string `json:"first_name" validate:"required"`
	LastName      string `json:"last_name"`
	AcademicLevel string `json:"academic_level"`
}

type authResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
	Error   string       `json:"error"`
}

// Manager is the process-wide session owner.
type Manager struct {
	api      Doer
	store    TokenStore
	log      logging.Logger
	validate *validator.Validate

	mu     sync.Mutex
	sf     singleflight.Group
	status Status
	token  string
	user   *models.User
}

func NewManager(apiClient Doer, store TokenStore, log logging.Logger) *Manager {
	return &Manager{
		api:      apiClient,
		store:    store,
		log:      log.With("component", "session"),
		validate: validator.New(),
	}
}

// Status returns the current lifecycle state.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// User returns the cached identity, nil unless authenticated.
func (m *Manager) User() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// Token returns the current bearer token, "" when logged out.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Login authenticates with the server. On success the returned token is
// persisted and the session becomes Authenticated. On failure the session is
// left unchanged and the server's error message is surfaced verbatim.
func (m *Manager) Login(ctx context.Context, creds Credentials) (*models.User, error) {
	if err := m.validate.Struct(creds); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", err)
	}

	raw, err := m.api.Request(ctx, "/auth/login", api.Options{Method: http.MethodPost, Body: creds})
	if err != nil {
		return nil, err
	}
	return m.adopt(ctx, raw)
}

// Register creates an account. Same contract as Login.
func (m *Manager) Register(ctx context.Context, form Registration) (*models.User, error) {
	if err := m.validate.Struct(form); err != nil {
		return nil, fmt.Errorf("invalid registration: %w", err)
	}

	raw, err := m.api.Request(ctx, "/auth/register", api.Options{Method: http.MethodPost, Body: form})
	if err != nil {
		return nil, err
	}
	return m.adopt(ctx, raw)
}

// adopt stores the token and user from a successful auth response. The user
// is optional on the wire; when it is omitted the identity is resolved with
// a follow-up verify call before any state is committed, so a failure here
// leaves the session untouched.
func (m *Manager) adopt(ctx context.Context, raw json.RawMessage) (*models.User, error) {
	var resp authResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decoding auth response: %w", err)
	}
	if !resp.Success || resp.Token == "" {
		if resp.Error != "" {
			return nil, errors.New(resp.Error)
		}
		return nil, ErrLoginFailed
	}

	user := resp.User
	if user == nil {
		var err error
		user, err = m.fetchUser(ctx, resp.Token)
		if err != nil {
			return nil, fmt.Errorf("resolving identity: %w", err)
		}
		if user == nil {
			return nil, ErrLoginFailed
		}
	}

	if err := m.store.SetToken(ctx, resp.Token); err != nil {
		return nil, fmt.Errorf("persisting token: %w", err)
	}

	m.mu.Lock()
	m.token = resp.Token
	m.user = user
	m.status = StatusAuthenticated
	m.mu.Unlock()

	m.log.Info(ctx, "session established", "user", user.Email, "role", user.Role)
	return user, nil
}

// fetchUser asks the verify endpoint who the token belongs to.
func (m *Manager) fetchUser(ctx context.Context, token string) (*models.User, error) {
	raw, err := m.api.Request(ctx, "/auth/verify", api.Options{Method: http.MethodPost, Token: token})
	if err != nil {
		return nil, err
	}

	var resp authResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decoding verify response: %w", err)
	}
	return resp.User, nil
}

// Verify reconciles a persisted token with the server at startup. It is
// silent on failure: an invalid or expired token (or an unreachable backend)
// clears the persisted token and leaves the session Unauthenticated without
// an error. Overlapping calls collapse to a single round trip.
func (m *Manager) Verify(ctx context.Context) (*models.User, error) {
	v, err, _ := m.sf.Do("verify", func() (any, error) {
		return m.verifyOnce(ctx), nil
	})
	if err != nil {
		return nil, err
	}
	user, _ := v.(*models.User)
	return user, nil
}

func (m *Manager) verifyOnce(ctx context.Context) *models.User {
	token, err := m.store.Token(ctx)
	if err != nil {
		m.log.Warn(ctx, "reading persisted token", "err", err)
		return nil
	}
	if token == "" {
		return nil
	}

	m.mu.Lock()
	m.status = StatusVerifying
	m.mu.Unlock()

	raw, err := m.api.Request(ctx, "/auth/verify", api.Options{Method: http.MethodPost, Token: token})
	if err != nil {
		m.log.Info(ctx, "token verification failed, clearing token", "err", err)
		m.reset(ctx)
		return nil
	}

	var resp authResponse
	if err := json.Unmarshal(raw, &resp); err != nil || resp.User == nil {
		m.reset(ctx)
		return nil
	}

	m.mu.Lock()
	m.token = token
	m.user = resp.User
	m.status = StatusAuthenticated
	m.mu.Unlock()

	m.log.Info(ctx, "session restored", "user", resp.User.Email)
	return resp.User
}

// Logout clears the persisted token and the cached identity. The token is
// self-contained, so no server call is needed.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.ClearToken(ctx); err != nil {
		return fmt.Errorf("clearing token: %w", err)
	}
	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.status = StatusUnauthenticated
	m.mu.Unlock()
	return nil
}

// RefreshUser re-fetches the identity after a profile or subscription
// mutation so the cached copy tracks the server.
func (m *Manager) RefreshUser(ctx context.Context) (*models.User, error) {
	token := m.Token()
	if token == "" {
		return nil, nil
	}

	user, err := m.fetchUser(ctx, token)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.user = user
	m.mu.Unlock()
	return user, nil
}

func (m *Manager) reset(ctx context.Context) {
	if err := m.store.ClearToken(ctx); err != nil {
		m.log.Warn(ctx, "clearing persisted token", "err", err)
	}
	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.status = StatusUnauthenticated
	m.mu.Unlock()
}
