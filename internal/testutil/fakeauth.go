package testutil

import (
	"context"
	"errors"
	"sync"
)

// ErrInvalidCredentials is returned by FakeAuth for unknown users or wrong passwords.
var ErrInvalidCredentials = errors.New("invalid credentials")

// FakeAuth is an in-memory session.Authenticator. Tokens are "token-<username>".
type FakeAuth struct {
	mu    sync.Mutex
	users map[string]string

	// LoginErr and RegisterErr, when set, are returned instead.
	LoginErr    error
	RegisterErr error
}

// NewFakeAuth creates a FakeAuth with no users.
func NewFakeAuth() *FakeAuth {
	return &FakeAuth{users: make(map[string]string)}
}

// AddUser registers username with password.
func (a *FakeAuth) AddUser(username, password string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.users[username] = password
}

// TokenFor returns the token FakeAuth issues for username.
func TokenFor(username string) string {
	return "token-" + username
}

// Login implements session.Authenticator.
func (a *FakeAuth) Login(ctx context.Context, username, password string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.LoginErr != nil {
		return "", a.LoginErr
	}
	if pw, ok := a.users[username]; !ok || pw != password {
		return "", ErrInvalidCredentials
	}
	return TokenFor(username), nil
}

// Register implements session.Authenticator.
func (a *FakeAuth) Register(ctx context.Context, username, password string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.RegisterErr != nil {
		return "", a.RegisterErr
	}
	if _, ok := a.users[username]; ok {
		return "", errors.New("user already exists")
	}
	a.users[username] = password
	return TokenFor(username), nil
}
