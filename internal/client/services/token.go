package services

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophaccount/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// tokenExpiry decodes token without verifying its signature and returns the
// exp claim. ok is false when the token carries no exp.
func tokenExpiry(token string) (exp time.Time, ok bool, err error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false, nil
	}
	return claims.ExpiresAt.Time, true, nil
}
