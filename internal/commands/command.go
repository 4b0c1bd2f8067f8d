// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"taskman/internal/config"
	"taskman/internal/service"
	"taskman/internal/session"
)

// Requirement is what a command needs the dispatcher to set up before Run.
type Requirement int

const (
	// RequiresNothing commands get neither a session store nor a service.
	RequiresNothing Requirement = iota

	// RequiresStore commands get a session store able to log in, but no
	// service. They run whether or not a session exists.
	RequiresStore

	// RequiresSession commands get a session store and a service, and only
	// run when a session exists.
	RequiresSession
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// Requires reports what the command needs before it can run.
	Requires() Requirement

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, paths).
	// sess is nil for RequiresNothing; svc is nil unless RequiresSession.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, sess *session.Store, svc service.Service, args []string, out, errOut io.Writer) int
}
