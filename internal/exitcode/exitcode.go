// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error: bad args or flags, an invalid
	// --api-url or config.yaml, a missing title or cancelled input.
	UserError = 1

	// AuthError indicates an auth failure: not logged in, login rejected,
	// an unreadable token or a backend client that could not be built.
	AuthError = 2

	// BackendError indicates a failed task request (network or non-2xx response).
	BackendError = 3
)
