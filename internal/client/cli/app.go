package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/gophaccount/internal/client/client"
	"github.com/dmitrijs2005/gophaccount/internal/client/config"
	"github.com/dmitrijs2005/gophaccount/internal/client/forms"
	"github.com/dmitrijs2005/gophaccount/internal/client/models"
	"github.com/dmitrijs2005/gophaccount/internal/client/repositories/localstorage"
	"github.com/dmitrijs2005/gophaccount/internal/client/services"
	"github.com/dmitrijs2005/gophaccount/internal/common"
	"github.com/dmitrijs2005/gophaccount/internal/filex"
	"github.com/dmitrijs2005/gophaccount/internal/logging"
)

type App struct {
	db     *sql.DB
	reader *bufio.Reader
	out    io.Writer
	log    logging.Logger

	storage  localstorage.Repository
	session  *services.SessionStore
	lockout  *services.LockoutTimer
	auth     *services.AuthService
	router   *Router
	notifier *Notifier
}

// NewApp opens the local database named in cfg and wires the client against
// stdin and stdout.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	if err := filex.EnsureParentDir(cfg.DBPath); err != nil {
		return nil, fmt.Errorf("error preparing database directory: %w", err)
	}
	db, err := client.InitDatabase(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}
	return newApp(db, cfg, log, os.Stdin, os.Stdout), nil
}

func newApp(db *sql.DB, cfg *config.Config, log logging.Logger, in io.Reader, out io.Writer) *App {
	creds := services.NewCredentialStore(db, cfg.CookieTTL, log)
	storage := localstorage.NewSQLiteRepository(db)
	api := client.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout, creds, log)

	session := services.NewSessionStore(creds, log)
	lockout := services.NewLockoutTimer(storage, cfg.LockoutDuration, log)
	guard := services.NewRouteGuard(creds, log)

	return &App{
		db:       db,
		reader:   bufio.NewReader(in),
		out:      out,
		log:      log,
		storage:  storage,
		session:  session,
		lockout:  lockout,
		auth:     services.NewAuthService(api, creds, session, lockout, cfg.RedirectDelay, log),
		router:   NewRouter(guard, common.RouteProfile).GuestOnly(common.RouteLogin, common.RouteRegister),
		notifier: NewNotifier(out),
	}
}

// Run restores the persisted session and lockout, then serves the REPL
// until the user exits, input ends or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	a.session.Initialize(ctx)
	if err := a.lockout.Restore(ctx); err != nil {
		a.log.Warn(ctx, "failed to restore lockout", "err", err)
	}
	a.watchLockout(ctx)

	fmt.Fprintln(a.out, "Welcome to gophaccount (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) Close() error {
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// watchLockout counts an active lockout down in the background.
func (a *App) watchLockout(ctx context.Context) {
	if a.lockout.State().Locked {
		go a.lockout.Run(ctx, a.notifier.Notify)
	}
}

func (a *App) status() string {
	parts := []string{a.router.Current()}
	if name := a.session.User().DisplayName(); name != "" {
		parts = append(parts, name)
	}
	if n := a.lockout.Remaining(); n > 0 {
		parts = append(parts, lockedMessage(n))
	}
	return "(" + strings.Join(parts, " | ") + ")"
}

const msgAlreadySignedIn = "You are already logged in. Type 'logout' to switch accounts."

func lockedMessage(seconds int) string {
	return fmt.Sprintf("Try again in %d seconds", seconds)
}

// enter moves to path unless the REPL is already there, so state carried
// into the route survives repeated commands on it.
func (a *App) enter(ctx context.Context, path string) error {
	if a.router.Current() == path {
		return nil
	}
	_, err := a.router.Navigate(ctx, models.Navigation{Path: path})
	return err
}

// enterGuestRoute enters a route for signed-out users. It reports false when
// the router sent a signed-in user home instead.
func (a *App) enterGuestRoute(ctx context.Context, path string) (bool, error) {
	landed, err := a.router.Navigate(ctx, models.Navigation{Path: path})
	if err != nil {
		a.reportError(ctx, err)
		return false, err
	}
	if landed == path {
		return true, nil
	}
	a.notifier.Notify(models.Info(msgAlreadySignedIn))
	a.render(landed)
	return false, nil
}

// handle surfaces a form outcome: notices first, then lockout, then
// navigation.
func (a *App) handle(ctx context.Context, out models.Outcome, err error) error {
	if err != nil {
		a.reportError(ctx, err)
		return err
	}

	for _, n := range out.Notices {
		a.notifier.Notify(n)
	}
	if out.Lockout {
		a.watchLockout(ctx)
	}
	if out.Navigate == nil {
		return nil
	}

	path, err := a.router.Navigate(ctx, *out.Navigate)
	if err != nil {
		return err
	}
	a.render(path)
	return nil
}

func (a *App) reportError(ctx context.Context, err error) {
	var invalid forms.ValidationErrors
	switch {
	case errors.As(err, &invalid):
		for _, e := range invalid {
			a.notifier.Notify(models.Error(e.Message))
		}
	case errors.Is(err, services.ErrLocked):
		a.notifier.Notify(models.Error(lockedMessage(a.lockout.Remaining())))
	case errors.Is(err, services.ErrSubmissionInFlight):
		a.notifier.Notify(models.Error("Please wait for the previous submission to finish."))
	case errors.Is(err, context.Canceled):
	default:
		a.log.Error(ctx, "command failed", "err", err)
		a.notifier.Notify(models.Error("Something went wrong. Please try again."))
	}
}

// render prints what the route shows on arrival.
func (a *App) render(path string) {
	var line string
	switch path {
	case common.RouteHome:
		if u := a.session.User(); u != nil {
			line = fmt.Sprintf("Hello, %s!", u.DisplayName())
		} else {
			line = "Welcome! Type 'login' or 'register' to get started."
		}
	case common.RouteLogin:
		line = "Type 'login' to sign in."
	case common.RouteVerify2FA:
		line = "Type 'verify' to enter the code we emailed you, or 'resend' for a new one."
	case common.RouteProfile:
		a.printProfile()
		return
	default:
		return
	}
	fmt.Fprintln(a.out, line)
}

func (a *App) printProfile() {
	u := a.session.User()
	if u == nil {
		fmt.Fprintln(a.out, "No profile loaded.")
		return
	}
	fmt.Fprintf(a.out, "Name:  %s %s\n", u.FirstName, u.LastName)
	fmt.Fprintf(a.out, "Email: %s\n", u.Email)
}
