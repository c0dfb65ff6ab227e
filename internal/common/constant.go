// Package common contains constants and sentinel errors shared by the
// client layers.
package common

// Outbound request headers.
const (
	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "
	RequestIDHeader     = "X-Request-ID"
)

// Well-known names of persisted client state.
const (
	// TokenCookieName is the cookie holding the bearer token.
	TokenCookieName = "token"
	// UserStorageKey is the local storage entry holding the serialized profile.
	UserStorageKey = "user"
	// LockoutStorageKey is the local storage entry holding the lockout
	// deadline in epoch milliseconds.
	LockoutStorageKey = "lockoutEndTime"
)

// Client routes.
const (
	RouteHome          = "/"
	RouteLogin         = "/login"
	RouteRegister      = "/register"
	RouteConfirmEmail  = "/confirm-email"
	RouteResetRequest  = "/reset-password-request"
	RouteResetPassword = "/reset-password"
	RouteVerify2FA     = "/verify-2fa"
	RouteProfile       = "/profile"
)
