package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophaccount/internal/client/models"
	"github.com/dmitrijs2005/gophaccount/internal/common"
	"github.com/dmitrijs2005/gophaccount/internal/logging"
)

// RouteGuard decides whether a protected route may be entered. It looks at
// the persisted token only.
type RouteGuard struct {
	creds *CredentialStore
	log   logging.Logger
	now   func() time.Time
}

func NewRouteGuard(creds *CredentialStore, log logging.Logger) *RouteGuard {
	return &RouteGuard{creds: creds, log: log, now: time.Now}
}

// Check returns nil when the route may be rendered, otherwise a redirect to
// the login route. An undecodable or expired token is removed first. The
// error is reserved for storage failures.
func (g *RouteGuard) Check(ctx context.Context) (*models.Navigation, error) {
	token, err := g.creds.Token(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return toLogin(), nil
	}

	exp, ok, err := tokenExpiry(token)
	if err == nil && ok && !exp.After(g.now()) {
		err = common.ErrTokenExpired
	}
	if err != nil {
		g.log.Debug(ctx, "rejecting stored token", "err", err)
		if err := g.creds.RemoveToken(ctx); err != nil {
			return nil, err
		}
		return toLogin(), nil
	}
	return nil, nil
}

func toLogin() *models.Navigation {
	return &models.Navigation{Path: common.RouteLogin}
}
