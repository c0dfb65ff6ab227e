package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophaccount/internal/client/client"
	"github.com/dmitrijs2005/gophaccount/internal/client/forms"
	"github.com/dmitrijs2005/gophaccount/internal/client/models"
	"github.com/dmitrijs2005/gophaccount/internal/common"
	"github.com/dmitrijs2005/gophaccount/internal/logging"
)

// User-facing texts used when the server does not supply one.
const (
	MsgLoginSuccess     = "Login successful!"
	MsgLoginFailed      = "Login failed. Please check your credentials and try again."
	MsgLockedOut        = "Too many failed login attempts. Please try again later."
	MsgRegisterSuccess  = "Registration successful! Please check your email to confirm your account."
	MsgRegisterFailed   = "Registration failed. Please try again."
	MsgResetRequestSent = "Password reset code sent! Check your email."
	MsgResetRequestFail = "Failed to send password reset request. Please try again."
	MsgResetSuccess     = "Password reset successful! You can now log in."
	MsgResetFailed      = "Failed to reset password. Please try again."
	MsgInvalidToken     = "Invalid or expired token"
	MsgVerifySuccess    = "2FA code verified successfully!"
	MsgVerifyFailed     = "Failed to verify 2FA code. Please try again."
	MsgResendSuccess    = "Verification code resent! Check your email."
	MsgResendFailed     = "Failed to resend verification code. Please try again."
	MsgConfirmSuccess   = "Email confirmed successfully! Redirecting..."
	MsgConfirmFailed    = "An error occurred during email confirmation."
)

// AuthService runs the account forms: it validates input, calls the API once
// and turns the answer into an Outcome.
//
// Returned errors mean the submission never reached the API
// (forms.ValidationErrors, ErrLocked, ErrSubmissionInFlight), was cancelled,
// or local state could not be saved. API failures are reported as error
// notices in the Outcome instead.
type AuthService struct {
	api           client.Client
	creds         *CredentialStore
	session       *SessionStore
	lockout       *LockoutTimer
	redirectDelay time.Duration
	log           logging.Logger

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewAuthService(
	api client.Client,
	creds *CredentialStore,
	session *SessionStore,
	lockout *LockoutTimer,
	redirectDelay time.Duration,
	log logging.Logger,
) *AuthService {
	return &AuthService{
		api:           api,
		creds:         creds,
		session:       session,
		lockout:       lockout,
		redirectDelay: redirectDelay,
		log:           log,
		inFlight:      make(map[string]bool),
	}
}

// begin marks form as submitting. The returned func clears the mark.
func (a *AuthService) begin(form string) (func(), error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.inFlight[form] {
		return nil, fmt.Errorf("%s: %w", form, ErrSubmissionInFlight)
	}
	a.inFlight[form] = true
	return func() {
		a.mu.Lock()
		delete(a.inFlight, form)
		a.mu.Unlock()
	}, nil
}

// failure maps a failed call to a single error notice. Cancellation is
// passed through as an error.
func (a *AuthService) failure(ctx context.Context, form string, err error, fallback string) (models.Outcome, error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return models.Outcome{}, err
	}
	a.log.Warn(ctx, "form submission failed", "form", form, "err", err)

	msg := fallback
	if apiErr, ok := client.AsAPIError(err); ok {
		msg = apiErr.UserMessage(fallback)
	}
	return notice(models.Error(msg)), nil
}

// genericFailure is failure for endpoints whose server messages are never
// shown to the user.
func (a *AuthService) genericFailure(ctx context.Context, form string, err error, msg string) (models.Outcome, error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return models.Outcome{}, err
	}
	a.log.Warn(ctx, "form submission failed", "form", form, "err", err)
	return notice(models.Error(msg)), nil
}

func notice(n models.Notice) models.Outcome {
	return models.Outcome{Notices: []models.Notice{n}}
}

func orDefault(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}

// Login signs the user in. A lockout answer starts the LockoutTimer; while
// it runs, Login fails with ErrLocked without calling the API.
func (a *AuthService) Login(ctx context.Context, in map[string]string) (models.Outcome, error) {
	if err := a.lockout.Allow(); err != nil {
		return models.Outcome{}, err
	}
	values, err := forms.Login.Validate(in)
	if err != nil {
		return models.Outcome{}, err
	}
	done, err := a.begin(forms.Login.Name)
	if err != nil {
		return models.Outcome{}, err
	}
	defer done()

	res, err := a.api.Login(ctx, values[forms.FieldEmail], values[forms.FieldPassword])
	if err != nil {
		if apiErr, ok := client.AsAPIError(err); ok && apiErr.Lockout {
			if lockErr := a.lockout.Lock(ctx); lockErr != nil {
				a.log.Warn(ctx, "lockout not persisted", "err", lockErr)
			}
			out := notice(models.Error(apiErr.UserMessage(MsgLockedOut)))
			out.Lockout = true
			return out, nil
		}
		return a.failure(ctx, forms.Login.Name, err, MsgLoginFailed)
	}

	if err := a.creds.SetToken(ctx, res.Token); err != nil {
		return models.Outcome{}, fmt.Errorf("failed to save token: %w", err)
	}
	a.session.Login(ctx, res.User)
	a.log.Info(ctx, "logged in", "email", res.User.Email)

	return models.Outcome{
		Notices:  []models.Notice{models.Success(orDefault(res.Message, MsgLoginSuccess))},
		Navigate: &models.Navigation{Path: common.RouteHome},
	}, nil
}

// Register creates an account. The user confirms it by email, so there is no
// navigation.
func (a *AuthService) Register(ctx context.Context, in map[string]string) (models.Outcome, error) {
	values, err := forms.Register.Validate(in)
	if err != nil {
		return models.Outcome{}, err
	}
	done, err := a.begin(forms.Register.Name)
	if err != nil {
		return models.Outcome{}, err
	}
	defer done()

	res, err := a.api.Register(ctx, client.RegisterRequest{
		FirstName:       values[forms.FieldFirstName],
		LastName:        values[forms.FieldLastName],
		Email:           values[forms.FieldEmail],
		Phone:           values[forms.FieldPhone],
		Password:        values[forms.FieldPassword],
		ConfirmPassword: values[forms.FieldConfirmPassword],
	})
	if err != nil {
		return a.failure(ctx, forms.Register.Name, err, MsgRegisterFailed)
	}
	return notice(models.Success(orDefault(res.Message, MsgRegisterSuccess))), nil
}

// RequestPasswordReset sends a reset code and moves on to code verification
// after the redirect delay, carrying the email along. Failures always use the
// generic text.
func (a *AuthService) RequestPasswordReset(ctx context.Context, in map[string]string) (models.Outcome, error) {
	values, err := forms.ResetRequest.Validate(in)
	if err != nil {
		return models.Outcome{}, err
	}
	done, err := a.begin(forms.ResetRequest.Name)
	if err != nil {
		return models.Outcome{}, err
	}
	defer done()

	email := values[forms.FieldEmail]
	if _, err := a.api.RequestPasswordReset(ctx, email); err != nil {
		return a.genericFailure(ctx, forms.ResetRequest.Name, err, MsgResetRequestFail)
	}

	out := notice(models.Success(MsgResetRequestSent))
	out.Navigate = &models.Navigation{
		Path:  common.RouteVerify2FA,
		State: map[string]string{forms.FieldEmail: email},
		After: a.redirectDelay,
	}
	return out, nil
}

// ResetPassword sets a new password using the emailed token.
func (a *AuthService) ResetPassword(ctx context.Context, in map[string]string) (models.Outcome, error) {
	values, err := forms.ResetPassword.Validate(in)
	if err != nil {
		return models.Outcome{}, err
	}
	done, err := a.begin(forms.ResetPassword.Name)
	if err != nil {
		return models.Outcome{}, err
	}
	defer done()

	res, err := a.api.ResetPassword(ctx, values[forms.FieldToken], values[forms.FieldNewPassword])
	if err != nil {
		if apiErr, ok := client.AsAPIError(err); ok && apiErr.Status == http.StatusUnauthorized {
			a.log.Warn(ctx, "reset token rejected", "err", err)
			return notice(models.Error(MsgInvalidToken)), nil
		}
		return a.failure(ctx, forms.ResetPassword.Name, err, MsgResetFailed)
	}

	out := notice(models.Success(orDefault(res.Message, MsgResetSuccess)))
	out.Navigate = &models.Navigation{Path: common.RouteLogin}
	return out, nil
}

// Verify2FA checks the emailed code.
func (a *AuthService) Verify2FA(ctx context.Context, in map[string]string) (models.Outcome, error) {
	values, err := forms.Verify2FA.Validate(in)
	if err != nil {
		return models.Outcome{}, err
	}
	done, err := a.begin(forms.Verify2FA.Name)
	if err != nil {
		return models.Outcome{}, err
	}
	defer done()

	if _, err := a.api.Verify2FA(ctx, values[forms.FieldEmail], values[forms.FieldCode]); err != nil {
		return a.failure(ctx, forms.Verify2FA.Name, err, MsgVerifyFailed)
	}
	return notice(models.Success(MsgVerifySuccess)), nil
}

// ResendCode asks for a new code. Failures always use the generic text.
func (a *AuthService) ResendCode(ctx context.Context, email string) (models.Outcome, error) {
	values, err := forms.ResendCode.Validate(map[string]string{forms.FieldEmail: email})
	if err != nil {
		return models.Outcome{}, err
	}
	done, err := a.begin(forms.ResendCode.Name)
	if err != nil {
		return models.Outcome{}, err
	}
	defer done()

	if _, err := a.api.ResendCode(ctx, values[forms.FieldEmail]); err != nil {
		return a.genericFailure(ctx, forms.ResendCode.Name, err, MsgResendFailed)
	}
	return notice(models.Success(MsgResendSuccess)), nil
}

// ConfirmEmail confirms the address with the emailed token, then sends the
// user to the login route after the redirect delay.
func (a *AuthService) ConfirmEmail(ctx context.Context, token string) (models.Outcome, error) {
	values, err := forms.ConfirmEmail.Validate(map[string]string{forms.FieldToken: token})
	if err != nil {
		return models.Outcome{}, err
	}
	done, err := a.begin(forms.ConfirmEmail.Name)
	if err != nil {
		return models.Outcome{}, err
	}
	defer done()

	if _, err := a.api.ConfirmEmail(ctx, values[forms.FieldToken]); err != nil {
		return a.failure(ctx, forms.ConfirmEmail.Name, err, MsgConfirmFailed)
	}

	out := notice(models.Success(MsgConfirmSuccess))
	out.Navigate = &models.Navigation{Path: common.RouteLogin, After: a.redirectDelay}
	return out, nil
}

// Logout ends the session and drops the stored credentials.
func (a *AuthService) Logout(ctx context.Context) models.Outcome {
	a.session.Logout(ctx)
	return models.Outcome{
		Notices:  []models.Notice{models.Info("Logged out.")},
		Navigate: &models.Navigation{Path: common.RouteLogin},
	}
}
