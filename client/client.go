package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/dmitrymomot/authsvc/modules/user"
)

const defaultTimeout = 30 * time.Second

// Client talks to the authentication API. Session cookies live in the
// client's cookie jar, mirroring how a browser holds them.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates an API client for the given base URL (scheme://host). The
// transport transparently refreshes the session once on a 401 and then
// retries the original request.
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("client: cookie jar: %w", err)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
	}
	c.http = &http.Client{
		Jar:     jar,
		Timeout: defaultTimeout,
		Transport: &retryTransport{
			inner:   http.DefaultTransport,
			refresh: c.refreshSession,
			jar:     jar,
		},
	}

	return c, nil
}

// SignUpParams carries the registration input.
type SignUpParams struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FirstName       string `json:"firstName,omitempty"`
	LastName        string `json:"lastName,omitempty"`
}

// SignUp registers a new account. No session is established; the user must
// sign in after verifying their email.
func (c *Client) SignUp(ctx context.Context, params SignUpParams) (*user.Profile, error) {
	var data struct {
		User user.Profile `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", params, &data); err != nil {
		return nil, err
	}
	return &data.User, nil
}

// SignIn exchanges credentials for a cookie session and returns the profile.
func (c *Client) SignIn(ctx context.Context, email, password string) (*user.Profile, error) {
	body := map[string]string{"email": email, "password": password}

	var data struct {
		User user.Profile `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", body, &data); err != nil {
		return nil, err
	}
	return &data.User, nil
}

// SignOut terminates the server session. Always idempotent.
func (c *Client) SignOut(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil)
}

// Me fetches the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*user.Profile, error) {
	var data struct {
		User user.Profile `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/auth/me", nil, &data); err != nil {
		return nil, err
	}
	return &data.User, nil
}

// Refresh rotates the session cookies.
func (c *Client) Refresh(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/v1/auth/refresh-token", nil, nil)
}

// ForgotPassword starts the password reset flow.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/api/v1/auth/forgot-password", map[string]string{"email": email}, nil)
}

// ResetPassword redeems a reset token.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword, confirmPassword string) error {
	body := map[string]string{
		"newPassword":     newPassword,
		"confirmPassword": confirmPassword,
	}
	return c.do(ctx, http.MethodPost, "/api/v1/auth/reset-password/"+token, body, nil)
}

// VerifyEmail redeems an email verification code.
func (c *Client) VerifyEmail(ctx context.Context, token string) (*user.Profile, error) {
	var data struct {
		User user.Profile `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/auth/verify-email/"+token, nil, &data); err != nil {
		return nil, err
	}
	return &data.User, nil
}

// ResendVerification asks for a fresh verification code.
func (c *Client) ResendVerification(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/api/v1/auth/resend-verification", map[string]string{"email": email}, nil)
}

// apiResponse is the server's JSON envelope.
type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("client: %w", err)
	}
	defer resp.Body.Close()

	var env apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &APIError{Status: resp.StatusCode, Message: "unexpected response"}
	}

	if resp.StatusCode >= 400 || !env.Success {
		return &APIError{
			Status:  resp.StatusCode,
			Code:    env.Error,
			Message: env.Message,
		}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("client: decode response: %w", err)
		}
	}
	return nil
}

// refreshSession is the hook the retry transport calls on a 401. The
// refresh endpoint itself is excluded from retries, so a failing refresh
// can never trigger another refresh.
func (c *Client) refreshSession(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/auth/refresh-token", bytes.NewReader(nil))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}
