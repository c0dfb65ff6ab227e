package client

import (
	"context"

	"github.com/dmitrijs2005/gophaccount/internal/client/models"
)

type Client interface {
	Register(ctx context.Context, req RegisterRequest) (*MessageResult, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	ConfirmEmail(ctx context.Context, token string) (*MessageResult, error)
	RequestPasswordReset(ctx context.Context, email string) (*MessageResult, error)
	ResetPassword(ctx context.Context, token, newPassword string) (*MessageResult, error)
	Verify2FA(ctx context.Context, email, code string) (*MessageResult, error)
	ResendCode(ctx context.Context, email string) (*MessageResult, error)
}

// TokenSource yields the bearer token for outbound requests; "" means none.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type RegisterRequest struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type LoginResult struct {
	Token   string             `json:"token"`
	User    models.UserProfile `json:"user"`
	Message string             `json:"message"`
}

type MessageResult struct {
	Message string `json:"message"`
}
