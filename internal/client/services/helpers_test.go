package services

import (
	"context"
	"database/sql"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophaccount/internal/client/client"
	"github.com/dmitrijs2005/gophaccount/internal/client/repositories/localstorage"
	"github.com/dmitrijs2005/gophaccount/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testLog = logging.New("error", io.Discard)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func signedToken(t *testing.T, exp *time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{Subject: "user-1"}
	if exp != nil {
		claims.ExpiresAt = jwt.NewNumericDate(*exp)
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func timePtr(t time.Time) *time.Time { return &t }

// fixture wires every service against one in-memory database and clock.
type fixture struct {
	db      *sql.DB
	clock   *fakeClock
	storage localstorage.Repository
	creds   *CredentialStore
	session *SessionStore
	lockout *LockoutTimer
	guard   *RouteGuard
	api     *fakeClient
	auth    *AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{db: setupDB(t), clock: newFakeClock(), api: &fakeClient{}}
	f.storage = localstorage.NewSQLiteRepository(f.db)

	f.creds = NewCredentialStore(f.db, 72*time.Hour, testLog)
	f.creds.now = f.clock.Now

	f.session = NewSessionStore(f.creds, testLog)

	f.lockout = f.newLockout()

	f.guard = NewRouteGuard(f.creds, testLog)
	f.guard.now = f.clock.Now

	f.auth = NewAuthService(f.api, f.creds, f.session, f.lockout, 3*time.Second, testLog)
	return f
}

// newLockout builds a timer over the fixture's storage, as a restart would.
func (f *fixture) newLockout() *LockoutTimer {
	l := NewLockoutTimer(f.storage, time.Hour, testLog)
	l.now = f.clock.Now
	return l
}

func (f *fixture) storedValue(t *testing.T, key string) (string, bool) {
	t.Helper()
	v, ok, err := f.storage.Get(context.Background(), key)
	require.NoError(t, err)
	return v, ok
}

// fakeClient implements client.Client for service tests.
type fakeClient struct {
	mu sync.Mutex

	LoginRes *client.LoginResult
	Err      error
	Message  string

	// Block, when set, holds every call until it is closed. Started
	// receives one value per call that reached the fake.
	Block   chan struct{}
	Started chan struct{}

	Calls    map[string]int
	LastArgs []string
	LastReg  client.RegisterRequest
}

func (f *fakeClient) record(ctx context.Context, name string, args ...string) error {
	f.mu.Lock()
	if f.Calls == nil {
		f.Calls = map[string]int{}
	}
	f.Calls[name]++
	f.LastArgs = args
	f.mu.Unlock()

	if f.Started != nil {
		f.Started <- struct{}{}
	}
	if f.Block != nil {
		select {
		case <-f.Block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return f.Err
}

func (f *fakeClient) calls(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Calls[name]
}

func (f *fakeClient) msg() (*client.MessageResult, error) {
	return &client.MessageResult{Message: f.Message}, nil
}

func (f *fakeClient) Register(ctx context.Context, req client.RegisterRequest) (*client.MessageResult, error) {
	f.mu.Lock()
	f.LastReg = req
	f.mu.Unlock()
	if err := f.record(ctx, "register", req.Email); err != nil {
		return nil, err
	}
	return f.msg()
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*client.LoginResult, error) {
	if err := f.record(ctx, "login", email, password); err != nil {
		return nil, err
	}
	return f.LoginRes, nil
}

func (f *fakeClient) ConfirmEmail(ctx context.Context, token string) (*client.MessageResult, error) {
	if err := f.record(ctx, "confirm", token); err != nil {
		return nil, err
	}
	return f.msg()
}

func (f *fakeClient) RequestPasswordReset(ctx context.Context, email string) (*client.MessageResult, error) {
	if err := f.record(ctx, "reset-request", email); err != nil {
		return nil, err
	}
	return f.msg()
}

func (f *fakeClient) ResetPassword(ctx context.Context, token, newPassword string) (*client.MessageResult, error) {
	if err := f.record(ctx, "reset", token, newPassword); err != nil {
		return nil, err
	}
	return f.msg()
}

func (f *fakeClient) Verify2FA(ctx context.Context, email, code string) (*client.MessageResult, error) {
	if err := f.record(ctx, "verify", email, code); err != nil {
		return nil, err
	}
	return f.msg()
}

func (f *fakeClient) ResendCode(ctx context.Context, email string) (*client.MessageResult, error) {
	if err := f.record(ctx, "resend", email); err != nil {
		return nil, err
	}
	return f.msg()
}
