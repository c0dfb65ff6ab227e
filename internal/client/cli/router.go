package cli

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophaccount/internal/client/models"
	"github.com/dmitrijs2005/gophaccount/internal/common"
)

// guard is the part of services.RouteGuard the router needs.
type guard interface {
	Check(ctx context.Context) (*models.Navigation, error)
}

// sleepFn waits out delayed navigations; tests replace it.
var sleepFn = func(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Router tracks the current route and the state carried into it. Entering a
// protected route runs the guard first. Guest-only routes send a user whose
// token passes the guard to the home route.
type Router struct {
	guard     guard
	protected map[string]bool
	guestOnly map[string]bool

	current string
	state   map[string]string
}

func NewRouter(g guard, protected ...string) *Router {
	r := &Router{
		guard:     g,
		protected: make(map[string]bool),
		guestOnly: make(map[string]bool),
		current:   common.RouteHome,
	}
	for _, p := range protected {
		r.protected[p] = true
	}
	return r
}

// GuestOnly marks paths that only signed-out users may enter.
func (r *Router) GuestOnly(paths ...string) *Router {
	for _, p := range paths {
		r.guestOnly[p] = true
	}
	return r
}

// Navigate waits nav.After, then enters nav.Path, or the guard's redirect
// when the path is protected and the token is not valid, or home when the
// path is guest-only and the token is valid. It returns the route actually
// entered.
func (r *Router) Navigate(ctx context.Context, nav models.Navigation) (string, error) {
	if nav.After > 0 {
		if err := sleepFn(ctx, nav.After); err != nil {
			return r.current, err
		}
	}

	switch {
	case r.protected[nav.Path]:
		redirect, err := r.guard.Check(ctx)
		if err != nil {
			return r.current, err
		}
		if redirect != nil {
			nav = *redirect
		}
	case r.guestOnly[nav.Path]:
		redirect, err := r.guard.Check(ctx)
		if err != nil {
			return r.current, err
		}
		if redirect == nil {
			nav = models.Navigation{Path: common.RouteHome}
		}
	}

	r.current = nav.Path
	r.state = nav.State
	return r.current, nil
}

func (r *Router) Current() string { return r.current }

// State returns a value carried by the navigation into the current route.
func (r *Router) State(key string) string { return r.state[key] }
