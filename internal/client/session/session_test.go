package session

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bookgenie/bookgenie-cli/internal/client/api"
	"github.com/bookgenie/bookgenie-cli/internal/logging"
)

// ---- fakes ----

type fakeDoer struct {
	mu    sync.Mutex
	calls []string

	responses map[string]json.RawMessage
	errs      map[string]error

	requestCount atomic.Int32
	block        chan struct{} // when non-nil, Request waits until closed
}

func (f *fakeDoer) Request(ctx context.Context, endpoint string, opts api.Options) (json.RawMessage, error) {
	f.requestCount.Add(1)
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	f.calls = append(f.calls, endpoint)
	f.mu.Unlock()
	if err, ok := f.errs[endpoint]; ok {
		return nil, err
	}
	return f.responses[endpoint], nil
}

type fakeStore struct {
	mu    sync.Mutex
	token string
}

func (f *fakeStore) Token(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, nil
}

func (f *fakeStore) SetToken(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
	return nil
}

func (f *fakeStore) ClearToken(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	return nil
}

func testLogger() logging.Logger {
	return logging.NewDefault(io.Discard, "error")
}

// ---- tests ----

func TestLoginSuccessPersistsTokenAndAuthenticates(t *testing.T) {
	ctx := context.Background()
	doer := &fakeDoer{responses: map[string]json.RawMessage{
		"/auth/login": json.RawMessage(`{"success": true, "token": "t1", "user": {"id": 1, "email": "a@b.com", "role": "student"}}`),
	}}
	store := &fakeStore{}
	m := NewManager(doer, store, testLogger())

	user, err := m.Login(ctx, Credentials{Email: "a@b.com", Password: "secret"})
	require.NoError(t, err)
	require.Equal(t, int64(1), user.ID)

	require.Equal(t, StatusAuthenticated, m.Status())
	require.Equal(t, "t1", m.Token())
	require.Equal(t, "t1", store.token)
	require.Equal(t, "a@b.com", m.User().Email)
}

func TestLoginFailureSurfacesServerMessageVerbatim(t *testing.T) {
	ctx := context.Background()
	doer := &fakeDoer{errs: map[string]error{
		"/auth/login": &api.StatusError{Status: http.StatusUnauthorized, Body: map[string]any{"error": "Invalid credentials"}},
	}}
	store := &fakeStore{}
	m := NewManager(doer, store, testLogger())

	_, err := m.Login(ctx, Credentials{Email: "a@b.com", Password: "wrong"})
	require.Error(t, err)
	require.Equal(t, "Invalid credentials", err.Error())

	// state unchanged
	require.Equal(t, StatusUnauthenticated, m.Status())
	require.Empty(t, m.Token())
	require.Empty(t, store.token)
}

func TestLoginWithoutUserInResponseResolvesIdentity(t *testing.T) {
	ctx := context.Background()
	doer := &fakeDoer{responses: map[string]json.RawMessage{
		"/auth/login":  json.RawMessage(`{"success": true, "token": "t1"}`),
		"/auth/verify": json.RawMessage(`{"success": true, "user": {"id": 1, "email": "a@b.com", "role": "student"}}`),
	}}
	store := &fakeStore{}
	m := NewManager(doer, store, testLogger())

	require.NotPanics(t, func() {
		user, err := m.Login(ctx, Credentials{Email: "a@b.com", Password: "secret"})
		require.NoError(t, err)
		require.NotNil(t, user)
		require.Equal(t, "a@b.com", user.Email)
	})
	require.Equal(t, StatusAuthenticated, m.Status())
	require.Equal(t, "t1", store.token)
	require.Equal(t, []string{"/auth/login", "/auth/verify"}, doer.calls)
}

func TestLoginWithoutUserAnywhereFailsCleanly(t *testing.T) {
	ctx := context.Background()
	doer := &fakeDoer{responses: map[string]json.RawMessage{
		"/auth/login":  json.RawMessage(`{"success": true, "token": "t1"}`),
		"/auth/verify": json.RawMessage(`{"success": true}`),
	}}
	store := &fakeStore{}
	m := NewManager(doer, store, testLogger())

	_, err := m.Login(ctx, Credentials{Email: "a@b.com", Password: "secret"})
	require.ErrorIs(t, err, ErrLoginFailed)
	require.Equal(t, StatusUnauthenticated, m.Status())
	require.Empty(t, store.token, "nothing may be persisted on a half-failed login")
}

func TestLoginRejectsInvalidFormBeforeAnyCall(t *testing.T) {
	ctx := context.Background()
	doer := &fakeDoer{}
	m := NewManager(doer, &fakeStore{}, testLogger())

	_, err := m.Login(ctx, Credentials{Email: "not-an-email", Password: "x"})
	require.Error(t, err)
	require.Zero(t, doer.requestCount.Load())
}

func TestRegisterSuccess(t *testing.T) {
	ctx := context.Background()
	doer := &fakeDoer{responses: map[string]json.RawMessage{
		"/auth/register": json.RawMessage(`{"success": true, "token": "t9", "user": {"id": 4, "email": "new@u.edu", "role": "student"}}`),
	}}
	store := &fakeStore{}
	m := NewManager(doer, store, testLogger())

	user, err := m.Register(ctx, Registration{
		Email: "new@u.edu", Password: "secret1", FirstName: "New",
	})
	require.NoError(t, err)
	require.Equal(t, "new@u.edu", user.Email)
	require.Equal(t, "t9", store.token)
	require.Equal(t, StatusAuthenticated, m.Status())
}

func TestVerifyWithoutTokenStaysUnauthenticated(t *testing.T) {
	ctx := context.Background()
	doer := &fakeDoer{}
	m := NewManager(doer, &fakeStore{}, testLogger())

	user, err := m.Verify(ctx)
	require.NoError(t, err)
	require.Nil(t, user)
	require.Equal(t, StatusUnauthenticated, m.Status())
	require.Zero(t, doer.requestCount.Load())
}

func TestVerifyInvalidTokenClearsItSilently(t *testing.T) {
	ctx := context.Background()
	doer := &fakeDoer{errs: map[string]error{
		"/auth/verify": &api.StatusError{Status: http.StatusUnauthorized, Body: map[string]any{"error": "Invalid or expired token"}},
	}}
	store := &fakeStore{token: "stale"}
	m := NewManager(doer, store, testLogger())

	user, err := m.Verify(ctx)
	require.NoError(t, err, "background verification must never surface an error")
	require.Nil(t, user)
	require.Nil(t, m.User())
	require.Empty(t, store.token, "persisted token must be cleared")
	require.Equal(t, StatusUnauthenticated, m.Status())
}

func TestVerifyNetworkFailureClearsTokenSilently(t *testing.T) {
	ctx := context.Background()
	doer := &fakeDoer{errs: map[string]error{"/auth/verify": api.ErrUnreachable}}
	store := &fakeStore{token: "t1"}
	m := NewManager(doer, store, testLogger())

	user, err := m.Verify(ctx)
	require.NoError(t, err)
	require.Nil(t, user)
	require.Empty(t, store.token)
}

func TestVerifySuccessRestoresSession(t *testing.T) {
	ctx := context.Background()
	doer := &fakeDoer{responses: map[string]json.RawMessage{
		"/auth/verify": json.RawMessage(`{"success": true, "user": {"id": 2, "email": "x@y.edu", "role": "admin", "subscriptionLevel": "premium"}}`),
	}}
	store := &fakeStore{token: "t1"}
	m := NewManager(doer, store, testLogger())

	user, err := m.Verify(ctx)
	require.NoError(t, err)
	require.NotNil(t, user)
	require.True(t, user.IsAdmin())
	require.Equal(t, StatusAuthenticated, m.Status())
	require.Equal(t, "t1", m.Token())
}

func TestConcurrentVerifyCollapsesToOneRoundTrip(t *testing.T) {
	ctx := context.Background()
	doer := &fakeDoer{
		responses: map[string]json.RawMessage{
			"/auth/verify": json.RawMessage(`{"success": true, "user": {"id": 2, "email": "x@y.edu", "role": "student"}}`),
		},
		block: make(chan struct{}),
	}
	store := &fakeStore{token: "t1"}
	m := NewManager(doer, store, testLogger())

	var wg sync.WaitGroup
	verify := func() {
		defer wg.Done()
		user, err := m.Verify(ctx)
		require.NoError(t, err)
		require.NotNil(t, user)
	}

	wg.Add(1)
	go verify()

	// wait until the first verify is pinned in flight
	require.Eventually(t, func() bool { return doer.requestCount.Load() == 1 },
		time.Second, time.Millisecond)

	for range 4 {
		wg.Add(1)
		go verify()
	}
	time.Sleep(50 * time.Millisecond) // let the joiners reach the flight

	close(doer.block)
	wg.Wait()

	require.Equal(t, int32(1), doer.requestCount.Load())
}

func TestLogoutClearsEverythingWithoutServerCall(t *testing.T) {
	ctx := context.Background()
	doer := &fakeDoer{responses: map[string]json.RawMessage{
		"/auth/login": json.RawMessage(`{"success": true, "token": "t1", "user": {"id": 1, "email": "a@b.com", "role": "student"}}`),
	}}
	store := &fakeStore{}
	m := NewManager(doer, store, testLogger())

	_, err := m.Login(ctx, Credentials{Email: "a@b.com", Password: "secret"})
	require.NoError(t, err)

	before := doer.requestCount.Load()
	require.NoError(t, m.Logout(ctx))
	require.Equal(t, before, doer.requestCount.Load())
	require.Empty(t, store.token)
	require.Nil(t, m.User())
	require.Equal(t, StatusUnauthenticated, m.Status())
}
