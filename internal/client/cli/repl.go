package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL drives. *App satisfies it;
// tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Home(ctx context.Context) error
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	ForgotPassword(ctx context.Context) error
	ResetPassword(ctx context.Context, token string) error
	Verify2FA(ctx context.Context) error
	ResendCode(ctx context.Context) error
	ConfirmEmail(ctx context.Context, token string) error
	Profile(ctx context.Context) error
	Storage(ctx context.Context) error
	Logout(ctx context.Context) error
}

const (
	helpGuest = "Available commands: home, login, register, confirm [token], forgot, verify, resend, reset [token], profile, storage, exit"
	helpUser  = "Available commands: home, profile, logout, storage, exit"
)

// runREPL reads one command per line from reader and dispatches it to a.
//
// The prompt shows the current status (from statusFn). The first word is the
// command, an optional second word its argument:
//
//	help               show available commands
//	home               greeting
//	login              sign in
//	register           create an account
//	confirm [token]    confirm an email address
//	forgot             request a password reset code
//	verify             enter the emailed 2FA code
//	resend             resend the 2FA code
//	reset [token]      set a new password
//	profile            show the signed-in profile (protected)
//	storage            list local storage keys
//	logout             sign out
//	exit | quit        leave the program
//
// Handler errors are ignored here; handlers report their own failures. The
// loop ends on EOF, on exit/quit, or when ctx is cancelled.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for ctx.Err() == nil {
		fmt.Fprintf(w, "gophaccount %s> ", statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		var arg string
		if len(parts) > 1 {
			arg = parts[1]
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, helpUser)
			} else {
				fmt.Fprintln(w, helpGuest)
			}
		case "home":
			_ = a.Home(ctx)
		case "login":
			_ = a.Login(ctx)
		case "register":
			_ = a.Register(ctx)
		case "confirm":
			_ = a.ConfirmEmail(ctx, arg)
		case "forgot":
			_ = a.ForgotPassword(ctx)
		case "verify":
			_ = a.Verify2FA(ctx)
		case "resend":
			_ = a.ResendCode(ctx)
		case "reset":
			_ = a.ResetPassword(ctx, arg)
		case "profile":
			_ = a.Profile(ctx)
		case "storage":
			_ = a.Storage(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
