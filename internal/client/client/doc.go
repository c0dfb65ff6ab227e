// Package client talks to the remote account API and opens the local
// database.
//
// # Overview
//
//  1. Client is the transport-agnostic contract for the account endpoints:
//     Register, Login, ConfirmEmail, RequestPasswordReset, ResetPassword,
//     Verify2FA and ResendCode.
//  2. HTTPClient implements it with JSON over HTTP. Every request carries an
//     X-Request-ID and, when the TokenSource has one, an
//     "Authorization: Bearer <token>" header.
//  3. InitDatabase and RunMigrations open the client's SQLite file and apply
//     the embedded goose migrations.
//
// # Error Handling
//
// Non-2xx responses become *APIError, which carries the status, the server
// message, any per-field messages and the lockout flag. Transport failures
// wrap ErrUnavailable. Match with errors.As / errors.Is.
package client
