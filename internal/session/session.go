// Package session holds the client's authentication state: the bearer token
// issued at login or registration, and its persisted copy.
package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/oauth2"

	"taskman/internal/logging"
)

var (
	// ErrNoAuthenticator is returned by Login and Register on a Store opened
	// without an Authenticator.
	ErrNoAuthenticator = errors.New("no authenticator configured")

	// ErrEmptyToken is returned when the backend accepts credentials but
	// answers without a token.
	ErrEmptyToken = errors.New("backend returned an empty token")
)

// Session is a snapshot of the authentication state.
// Authenticated is true exactly when Token is non-empty.
type Session struct {
	Token         string
	Authenticated bool
}

func newSession(token string) Session {
	return Session{Token: token, Authenticated: token != ""}
}

// Authorize sets the bearer Authorization header on req when the session
// has a token and removes any Authorization header otherwise.
func (s Session) Authorize(req *http.Request) {
	if !s.Authenticated {
		req.Header.Del("Authorization")
		return
	}
	tok := &oauth2.Token{AccessToken: s.Token, TokenType: "Bearer"}
	tok.SetAuthHeader(req)
}

// Authenticator exchanges credentials for a token.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, username, password string) (string, error)
}

// Credentials yields the session to use for the next request.
type Credentials interface {
	Current() Session
}

// Store is the process's authentication state. It is created once at start
// and passed explicitly to whatever needs it.
type Store struct {
	mu      sync.RWMutex
	token   string
	persist TokenStore
	auth    Authenticator
	log     *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for session events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = logging.OrDiscard(l) }
}

// Open rehydrates a Store from persist. A stored token is trusted as is:
// nothing checks its expiry or asks the backend about it.
// auth may be nil for callers that never log in.
func Open(persist TokenStore, auth Authenticator, opts ...Option) (*Store, error) {
	s := &Store{
		persist: persist,
		auth:    auth,
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	token, err := persist.Load()
	if err != nil {
		return nil, err
	}
	s.token = token
	s.log.Debug("session rehydrated", "authenticated", token != "")
	return s, nil
}

// Current implements Credentials.
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newSession(s.token)
}

// Authenticated reports whether a token is held.
func (s *Store) Authenticated() bool {
	return s.Current().Authenticated
}

// Login exchanges username and password for a token and makes it the
// current session. On failure the previous session is left as it was and
// the error is returned unchanged.
func (s *Store) Login(ctx context.Context, username, password string) error {
	if s.auth == nil {
		return ErrNoAuthenticator
	}
	token, err := s.auth.Login(ctx, username, password)
	if err != nil {
		s.log.Debug("login failed", "username", username, "error", err)
		return err
	}
	return s.set(token, "login")
}

// Register creates an account and makes the returned token the current
// session. Failure semantics match Login.
func (s *Store) Register(ctx context.Context, username, password string) error {
	if s.auth == nil {
		return ErrNoAuthenticator
	}
	token, err := s.auth.Register(ctx, username, password)
	if err != nil {
		s.log.Debug("register failed", "username", username, "error", err)
		return err
	}
	return s.set(token, "register")
}

// Logout removes the persisted copy and then drops the session. Logging
// out without a session succeeds. If the copy cannot be removed the
// session is kept and the error returned.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist.Clear(); err != nil {
		s.log.Debug("logout failed", "error", err)
		return err
	}
	s.token = ""
	s.log.Debug("session cleared")
	return nil
}

// set persists token and then swaps it in, so memory never holds a token
// the store failed to save.
func (s *Store) set(token, reason string) error {
	if token == "" {
		return ErrEmptyToken
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist.Save(token); err != nil {
		return err
	}
	s.token = token
	s.log.Debug("session stored", "via", reason)
	return nil
}
