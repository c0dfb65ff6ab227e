package common

import "errors"

var (
	// Token errors (missing, malformed or past its exp claim).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
