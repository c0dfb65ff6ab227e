package cli

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophaccount/internal/client/client"
	"github.com/dmitrijs2005/gophaccount/internal/client/config"
	"github.com/dmitrijs2005/gophaccount/internal/common"
	"github.com/dmitrijs2005/gophaccount/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI is an in-process account API.
type fakeAPI struct {
	mu     sync.Mutex
	calls  map[string]int
	bodies map[string]map[string]string

	loginStatus int
	loginBody   map[string]any
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	api := &fakeAPI{calls: map[string]int{}, bodies: map[string]map[string]string{}}

	e := echo.New()
	e.HideBanner = true
	handler := func(status int, body func() any) echo.HandlerFunc {
		return func(c echo.Context) error {
			in := map[string]string{}
			if err := c.Bind(&in); err != nil {
				return err
			}
			api.mu.Lock()
			api.calls[c.Path()]++
			api.bodies[c.Path()] = in
			api.mu.Unlock()
			return c.JSON(status, body())
		}
	}
	e.POST("/login", func(c echo.Context) error {
		return handler(api.loginStatus, func() any { return api.loginBody })(c)
	})
	e.POST("/register", handler(http.StatusCreated, func() any { return map[string]string{"message": "Registered"} }))
	e.POST("/request-password-reset", handler(http.StatusOK, func() any { return map[string]string{} }))
	e.POST("/verify-2fa", handler(http.StatusOK, func() any { return map[string]string{} }))
	e.POST("/confirm-email", handler(http.StatusOK, func() any { return map[string]string{} }))

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return api, srv
}

func (f *fakeAPI) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

func (f *fakeAPI) body(path string) map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bodies[path]
}

func testConfig(url string) *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.APIBaseURL = url
	return cfg
}

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// runApp runs a fresh App over db with the scripted input and returns its
// output.
func runApp(t *testing.T, db *sql.DB, url string, lines ...string) string {
	t.Helper()
	stubTerminal(t, false, nil, nil)
	stubSleep(t)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	app := newApp(db, testConfig(url), logging.New("error", io.Discard), in, &out)
	app.Run(ctx)
	return out.String()
}

func validToken(t *testing.T) string {
	t.Helper()
	return tokenExpiringIn(t, time.Hour)
}

func tokenExpiringIn(t *testing.T, d time.Duration) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(d)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	return tok
}

func TestApp_LoginProfileLogout(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.loginStatus = http.StatusOK
	api.loginBody = map[string]any{
		"token": validToken(t),
		"user":  map[string]any{"first_name": "Ada", "last_name": "Lovelace", "email": "ada@example.com"},
	}
	db := openDB(t)

	out := runApp(t, db, srv.URL,
		"profile",
		"login", " ada@example.com ", "password1",
		"profile",
		"logout",
		"profile",
		"exit",
	)

	assert.Equal(t, map[string]string{"email": "ada@example.com", "password": "password1"}, api.body("/login"))
	assert.Contains(t, out, "Login successful!")
	assert.Contains(t, out, "Hello, Ada Lovelace!")
	assert.Contains(t, out, "Email: ada@example.com")
	assert.Equal(t, 2, strings.Count(out, "Please log in to view your profile."))
	assert.Contains(t, out, "Logged out.")

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM cookies`).Scan(&n))
	assert.Zero(t, n)
}

func TestApp_SessionSurvivesRestart(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.loginStatus = http.StatusOK
	api.loginBody = map[string]any{"token": validToken(t), "user": map[string]any{"email": "a@b.com"}}
	db := openDB(t)

	runApp(t, db, srv.URL, "login", "a@b.com", "password1", "exit")

	out := runApp(t, db, srv.URL, "help", "profile", "storage", "exit")
	assert.Contains(t, out, helpUser)
	assert.Contains(t, out, "Email: a@b.com")
	assert.Contains(t, out, common.UserStorageKey)
	assert.Contains(t, out, "gophaccount (/ | a@b.com)> ")
}

func TestApp_GuestFormsSendSignedInUserHome(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.loginStatus = http.StatusOK
	api.loginBody = map[string]any{"token": validToken(t), "user": map[string]any{"email": "a@b.com"}}
	db := openDB(t)

	out := runApp(t, db, srv.URL,
		"login", "a@b.com", "password1",
		"login",
		"register",
		"exit",
	)

	assert.Equal(t, 2, strings.Count(out, msgAlreadySignedIn))
	assert.Contains(t, out, "gophaccount (/ | a@b.com)> ")
	assert.Equal(t, 1, api.count("/login"))
	assert.Zero(t, api.count("/register"))

	out = runApp(t, db, srv.URL, "register", "exit")
	assert.Contains(t, out, msgAlreadySignedIn)
	assert.Zero(t, api.count("/register"))
}

func TestApp_ExpiredTokenReopensLogin(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.loginStatus = http.StatusOK
	api.loginBody = map[string]any{"token": tokenExpiringIn(t, -time.Second), "user": map[string]any{"email": "a@b.com"}}
	db := openDB(t)

	out := runApp(t, db, srv.URL,
		"login", "a@b.com", "password1",
		"login", "a@b.com", "password1",
		"exit",
	)

	assert.NotContains(t, out, msgAlreadySignedIn)
	assert.Equal(t, 2, api.count("/login"))
}

func TestApp_LockoutBlocksLoginAndSurvivesRestart(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.loginStatus = http.StatusTooManyRequests
	api.loginBody = map[string]any{"message": "Too many attempts", "lockout": true}
	db := openDB(t)

	out := runApp(t, db, srv.URL,
		"login", "a@b.com", "password1",
		"login",
		"exit",
	)
	assert.Contains(t, out, "Too many attempts")
	assert.Contains(t, out, "Try again in")
	assert.Equal(t, 1, api.count("/login"))

	out = runApp(t, db, srv.URL, "login", "exit")
	assert.Contains(t, out, "Try again in")
	assert.Equal(t, 1, api.count("/login"))

	var raw string
	require.NoError(t, db.QueryRow(`SELECT value FROM local_storage WHERE key = ?`, common.LockoutStorageKey).Scan(&raw))
	assert.NotEmpty(t, raw)
}

func TestApp_ResetRequestCarriesEmailToVerify(t *testing.T) {
	api, srv := newFakeAPI(t)
	db := openDB(t)

	out := runApp(t, db, srv.URL,
		"forgot", "a@b.com",
		"verify", "123456",
		"exit",
	)

	assert.Contains(t, out, "Password reset code sent! Check your email.")
	assert.Contains(t, out, "2FA code verified successfully!")
	assert.Equal(t, map[string]string{"email": "a@b.com", "confirmationCode": "123456"}, api.body("/verify-2fa"))
}

func TestApp_ValidationNeverCallsAPI(t *testing.T) {
	api, srv := newFakeAPI(t)
	db := openDB(t)

	out := runApp(t, db, srv.URL,
		"register", "Ada", "Lovelace", "ada@example.com", "+100", "password1", "password2",
		"login", "not-an-email", "short",
		"exit",
	)

	assert.Contains(t, out, "Passwords must match")
	assert.Contains(t, out, "Email must be a valid email address")
	assert.Contains(t, out, "Password must be at least 8 characters")
	assert.Zero(t, api.count("/register"))
	assert.Zero(t, api.count("/login"))
}

func TestApp_ConfirmEmail(t *testing.T) {
	api, srv := newFakeAPI(t)
	db := openDB(t)

	out := runApp(t, db, srv.URL, "confirm tok-1", "exit")

	assert.Contains(t, out, "Email confirmed successfully! Redirecting...")
	assert.Contains(t, out, "Type 'login' to sign in.")
	assert.Equal(t, map[string]string{"token": "tok-1"}, api.body("/confirm-email"))
}
