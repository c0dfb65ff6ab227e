package cli

import (
	"context"

	"github.com/dmitrijs2005/gophaccount/internal/client/forms"
	"github.com/dmitrijs2005/gophaccount/internal/client/models"
	"github.com/dmitrijs2005/gophaccount/internal/client/services"
	"github.com/dmitrijs2005/gophaccount/internal/common"
)

// Login prompts for email and password and signs in. A signed-in user is
// sent home instead. While a lockout runs the form is not shown at all; the
// remaining time is reported instead.
func (a *App) Login(ctx context.Context) error {
	if ok, err := a.enterGuestRoute(ctx, common.RouteLogin); !ok {
		return err
	}
	if n := a.lockout.Remaining(); n > 0 {
		a.notifier.Notify(models.Error(lockedMessage(n)))
		return services.ErrLocked
	}

	values, err := fillForm(a.reader, a.out, forms.Login, nil)
	if err != nil {
		return err
	}
	out, err := a.auth.Login(ctx, values)
	return a.handle(ctx, out, err)
}

// Register prompts for the registration fields and creates the account.
// A signed-in user is sent home instead.
func (a *App) Register(ctx context.Context) error {
	if ok, err := a.enterGuestRoute(ctx, common.RouteRegister); !ok {
		return err
	}
	values, err := fillForm(a.reader, a.out, forms.Register, nil)
	if err != nil {
		return err
	}
	out, err := a.auth.Register(ctx, values)
	return a.handle(ctx, out, err)
}

// ForgotPassword requests a reset code for an email address.
func (a *App) ForgotPassword(ctx context.Context) error {
	if err := a.enter(ctx, common.RouteResetRequest); err != nil {
		return err
	}
	values, err := fillForm(a.reader, a.out, forms.ResetRequest, nil)
	if err != nil {
		return err
	}
	out, err := a.auth.RequestPasswordReset(ctx, values)
	return a.handle(ctx, out, err)
}

// ResetPassword sets a new password. token may be empty, in which case it is
// prompted for.
func (a *App) ResetPassword(ctx context.Context, token string) error {
	if err := a.enter(ctx, common.RouteResetPassword); err != nil {
		return err
	}
	values, err := fillForm(a.reader, a.out, forms.ResetPassword, preset(forms.FieldToken, token))
	if err != nil {
		return err
	}
	out, err := a.auth.ResetPassword(ctx, values)
	return a.handle(ctx, out, err)
}

// Verify2FA asks for the emailed code. The email comes from the reset request
// when the REPL got here through it.
func (a *App) Verify2FA(ctx context.Context) error {
	if err := a.enter(ctx, common.RouteVerify2FA); err != nil {
		return err
	}
	values, err := fillForm(a.reader, a.out, forms.Verify2FA, a.carriedEmail())
	if err != nil {
		return err
	}
	out, err := a.auth.Verify2FA(ctx, values)
	return a.handle(ctx, out, err)
}

// ResendCode requests a fresh code for the carried email.
func (a *App) ResendCode(ctx context.Context) error {
	if err := a.enter(ctx, common.RouteVerify2FA); err != nil {
		return err
	}
	values, err := fillForm(a.reader, a.out, forms.ResendCode, a.carriedEmail())
	if err != nil {
		return err
	}
	out, err := a.auth.ResendCode(ctx, values[forms.FieldEmail])
	return a.handle(ctx, out, err)
}

// ConfirmEmail confirms an address with the token from the confirmation
// link.
func (a *App) ConfirmEmail(ctx context.Context, token string) error {
	if err := a.enter(ctx, common.RouteConfirmEmail); err != nil {
		return err
	}
	values, err := fillForm(a.reader, a.out, forms.ConfirmEmail, preset(forms.FieldToken, token))
	if err != nil {
		return err
	}
	out, err := a.auth.ConfirmEmail(ctx, values[forms.FieldToken])
	return a.handle(ctx, out, err)
}

func (a *App) Logout(ctx context.Context) error {
	return a.handle(ctx, a.auth.Logout(ctx), nil)
}

func (a *App) carriedEmail() map[string]string {
	return preset(forms.FieldEmail, a.router.State(forms.FieldEmail))
}

func preset(field, value string) map[string]string {
	if value == "" {
		return nil
	}
	return map[string]string{field: value}
}
