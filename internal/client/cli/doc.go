// Package cli provides the interactive gophaccount terminal client.
//
// App wires the local database, the account API client and the services,
// then runs a REPL. Each account form is a command that prompts for its
// fields and reports the result as styled notices. A Router tracks the
// current route; entering the protected /profile route runs the route guard,
// which sends an unauthenticated user to /login.
//
// While a login lockout is active the prompt shows the remaining seconds and
// the login command refuses to prompt. A background ticker announces the end
// of the lockout.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
