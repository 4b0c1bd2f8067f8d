// Package taskapi talks to the task REST backend: the auth endpoints that
// issue tokens and the task endpoints that require one.
package taskapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"taskman/internal/config"
	"taskman/internal/logging"
	"taskman/internal/session"
)

const (
	loginPath    = "/auth/login"
	registerPath = "/auth/register"
	tasksPath    = "/tasks"

	// maxErrorBody caps how much of a failed response is read for its message.
	maxErrorBody = 64 << 10
)

// transport is the part shared by AuthClient and TaskClient: base URL,
// HTTP client and logger. It makes exactly one attempt per call.
type transport struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// Option configures a client.
type Option func(*transport)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(c *http.Client) Option {
	return func(t *transport) {
		if c != nil {
			t.httpClient = c
		}
	}
}

// WithLogger sets the debug logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *transport) { t.log = logging.OrDiscard(l) }
}

func newTransport(baseURL string, opts []Option) (transport, error) {
	normalized, err := config.NormalizeAPIURL(baseURL)
	if err != nil {
		return transport{}, err
	}
	t := transport{
		baseURL:    normalized,
		httpClient: http.DefaultClient,
		log:        logging.Discard(),
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t, nil
}

// newRequest builds a request for path with body encoded as JSON. The
// session passed in decides the Authorization header; nothing else does.
func (t transport) newRequest(ctx context.Context, sess session.Session, method, path string, body any) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, r)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	sess.Authorize(req)
	return req, nil
}

// do sends req once and decodes a 2xx JSON body into out (when out is
// non-nil). Any other outcome is an error matching ErrRequestFailed.
func (t transport) do(req *http.Request, out any) error {
	start := time.Now()
	resp, err := t.httpClient.Do(req)
	if err != nil {
		t.log.Debug("request failed", "method", req.Method, "path", req.URL.Path, "error", err)
		return fmt.Errorf("%w: %s %s: %v", ErrRequestFailed, req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	t.log.Debug("request done",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"authorized", req.Header.Get("Authorization") != "",
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &RequestError{
			Method:     req.Method,
			Path:       req.URL.Path,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	// An empty 2xx body leaves out untouched.
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %s %s: invalid response: %v", ErrRequestFailed, req.Method, req.URL.Path, err)
	}
	return nil
}
