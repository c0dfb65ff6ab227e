package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophaccount/internal/client/models"
	"github.com/dmitrijs2005/gophaccount/internal/common"
)

// Home shows the greeting route.
func (a *App) Home(ctx context.Context) error {
	path, err := a.router.Navigate(ctx, models.Navigation{Path: common.RouteHome})
	if err != nil {
		return err
	}
	a.render(path)
	return nil
}

// Profile enters the protected profile route. Without a valid token the
// router lands on the login route instead.
func (a *App) Profile(ctx context.Context) error {
	path, err := a.router.Navigate(ctx, models.Navigation{Path: common.RouteProfile})
	if err != nil {
		a.reportError(ctx, err)
		return err
	}
	if path != common.RouteProfile {
		a.notifier.Notify(models.Info("Please log in to view your profile."))
	}
	a.render(path)
	return nil
}

// Storage lists the keys held in local storage.
func (a *App) Storage(ctx context.Context) error {
	keys, err := a.storage.Keys(ctx)
	if err != nil {
		a.reportError(ctx, err)
		return err
	}
	if len(keys) == 0 {
		fmt.Fprintln(a.out, "Local storage is empty.")
		return nil
	}
	for _, k := range keys {
		fmt.Fprintln(a.out, k)
	}
	return nil
}
