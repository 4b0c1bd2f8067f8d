package taskapi

import (
	"context"
	"net/http"

	"taskman/internal/session"
)

// AuthClient implements session.Authenticator against /auth/login and
// /auth/register. It never sends a credential.
type AuthClient struct {
	t transport
}

var _ session.Authenticator = (*AuthClient)(nil)

// NewAuthClient creates an AuthClient for baseURL.
func NewAuthClient(baseURL string, opts ...Option) (*AuthClient, error) {
	t, err := newTransport(baseURL, opts)
	if err != nil {
		return nil, err
	}
	return &AuthClient{t: t}, nil
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// tokenResponse accepts {"token": ...} and the OAuth-style
// {"access_token": ..., "token_type": "bearer"}.
type tokenResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"access_token"`
}

// Login implements session.Authenticator.
func (c *AuthClient) Login(ctx context.Context, username, password string) (string, error) {
	return c.exchange(ctx, loginPath, username, password)
}

// Register implements session.Authenticator.
func (c *AuthClient) Register(ctx context.Context, username, password string) (string, error) {
	return c.exchange(ctx, registerPath, username, password)
}

func (c *AuthClient) exchange(ctx context.Context, path, username, password string) (string, error) {
	req, err := c.t.newRequest(ctx, session.Session{}, http.MethodPost, path, credentials{
		Username: username,
		Password: password,
	})
	if err != nil {
		return "", err
	}

	var resp tokenResponse
	if err := c.t.do(req, &resp); err != nil {
		return "", err
	}
	if resp.Token != "" {
		return resp.Token, nil
	}
	return resp.AccessToken, nil
}
