package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophaccount/internal/common"
	"github.com/dmitrijs2005/gophaccount/internal/logging"
	"github.com/google/uuid"
)

const maxErrorBody = 64 << 10

// HTTPClient implements Client over JSON/HTTP.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger

	newRequestID func() string
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient returns a client for the API rooted at baseURL. tokens may be
// nil, in which case no Authorization header is sent.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		http:         &http.Client{Timeout: timeout},
		tokens:       tokens,
		log:          log,
		newRequestID: uuid.NewString,
	}
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) (*MessageResult, error) {
	var res MessageResult
	if err := c.post(ctx, "/register", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var res LoginResult
	if err := c.post(ctx, "/login", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) ConfirmEmail(ctx context.Context, token string) (*MessageResult, error) {
	return c.message(ctx, "/confirm-email", map[string]string{"token": token})
}

func (c *HTTPClient) RequestPasswordReset(ctx context.Context, email string) (*MessageResult, error) {
	return c.message(ctx, "/request-password-reset", map[string]string{"email": email})
}

func (c *HTTPClient) ResetPassword(ctx context.Context, token, newPassword string) (*MessageResult, error) {
	return c.message(ctx, "/reset-password", map[string]string{"token": token, "newPassword": newPassword})
}

func (c *HTTPClient) Verify2FA(ctx context.Context, email, code string) (*MessageResult, error) {
	return c.message(ctx, "/verify-2fa", map[string]string{"email": email, "confirmationCode": code})
}

func (c *HTTPClient) ResendCode(ctx context.Context, email string) (*MessageResult, error) {
	return c.message(ctx, "/resend-code", map[string]string{"email": email})
}

func (c *HTTPClient) message(ctx context.Context, path string, body any) (*MessageResult, error) {
	var res MessageResult
	if err := c.post(ctx, path, body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) post(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	requestID := c.newRequestID()
	req.Header.Set(common.RequestIDHeader, requestID)

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
		if token != "" {
			req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
		}
	}

	log := c.log.With("path", path, "request_id", requestID)
	log.Debug(ctx, "sending request")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		log.Warn(ctx, "request failed", "err", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	log.Debug(ctx, "response received", "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	// Some endpoints answer 200 with an empty body.
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

type errorBody struct {
	Message string `json:"message"`
	Errors  []struct {
		Msg string `json:"msg"`
	} `json:"errors"`
	Lockout bool `json:"lockout"`
}

// decodeAPIError builds an *APIError from a failed response. Bodies that are
// not JSON produce an error with only the status set.
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return apiErr
	}

	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return apiErr
	}
	apiErr.Message = body.Message
	apiErr.Lockout = body.Lockout
	for _, e := range body.Errors {
		if e.Msg != "" {
			apiErr.Details = append(apiErr.Details, e.Msg)
		}
	}
	return apiErr
}
