package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"taskman/internal/commands"
	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/logging"
	"taskman/internal/service"
	"taskman/internal/session"
)

// Backend creates the clients commands talk to.
// Used to inject the backend during dispatch.
type Backend interface {
	Authenticator(cfg *config.Config) (session.Authenticator, error)
	Tasks(cfg *config.Config, creds session.Credentials) (service.Service, error)
}

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	backend  Backend
}

// NewDispatcher creates a new dispatcher with the given registry and backend.
func NewDispatcher(registry *commands.Registry, backend Backend) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		backend:  backend,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> dispatch to "list" command with no args
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, out, errOut)
	}

	cmdName := args[0]

	// If first token starts with -, it's an error (flags require a command)
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

// commonFlags are accepted by every command.
type commonFlags struct {
	configDir string
	apiURL    string
	quiet     bool
	debug     bool
	timeout   time.Duration
}

func (f *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.configDir, "config", "", "")
	fs.StringVar(&f.apiURL, "api-url", "", "")
	fs.BoolVar(&f.quiet, "quiet", false, "")
	fs.BoolVar(&f.debug, "debug", false, "")
	fs.DurationVar(&f.timeout, "timeout", 0, "")
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	// Create flag set with custom error handling
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	var common commonFlags
	common.register(fs)
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", flagError(err))
		return exitcode.UserError
	}

	// Check if first positional arg starts with - (should have been parsed as flag)
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	if common.timeout < 0 {
		fmt.Fprintf(errOut, "error: invalid timeout: %s\n", common.timeout)
		return exitcode.UserError
	}

	cfg, err := config.New(common.configDir, common.apiURL)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = common.quiet
	cfg.Debug = common.debug
	cfg.Timeout = common.timeout
	cfg.Log = logging.New(errOut, common.debug)

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	cfg.Log.Debug("dispatch", "command", cmd.Name(), "api_url", cfg.APIURL, "config_dir", cfg.Dir)

	req := cmd.Requires()
	if req == commands.RequiresNothing {
		return cmd.Run(ctx, cfg, nil, nil, positionalArgs, out, errOut)
	}

	if d.backend == nil {
		fmt.Fprintln(errOut, "error: no backend configured")
		return exitcode.BackendError
	}

	// Only commands that log in get an authenticator.
	var auth session.Authenticator
	if req == commands.RequiresStore {
		auth, err = d.backend.Authenticator(cfg)
		if err != nil {
			fmt.Fprintf(errOut, "error: %s\n", err)
			return exitcode.AuthError
		}
	}

	tokens := session.NewFileStore(cfg.TokenPath())
	cfg.Log.Debug("opening session", "token_file", tokens.Path())
	sess, err := session.Open(tokens, auth, session.WithLogger(cfg.Log))
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to read token: %s\n", err)
		return exitcode.AuthError
	}

	var svc service.Service
	if req == commands.RequiresSession {
		if !sess.Authenticated() {
			fmt.Fprintln(errOut, "error: not logged in (run: taskman login)")
			return exitcode.AuthError
		}
		svc, err = d.backend.Tasks(cfg, sess)
		if err != nil {
			fmt.Fprintf(errOut, "error: %s\n", err)
			return exitcode.AuthError
		}
	}

	return cmd.Run(ctx, cfg, sess, svc, positionalArgs, out, errOut)
}

// flagError rewrites flag package parse errors in the CLI's own wording.
func flagError(err error) string {
	msg := err.Error()
	switch {
	case strings.HasPrefix(msg, "flag needs an argument:"):
		name := strings.TrimSpace(strings.TrimPrefix(msg, "flag needs an argument:"))
		return "flag needs an argument: " + name
	case strings.HasPrefix(msg, "flag provided but not defined:"):
		name := strings.TrimSpace(strings.TrimPrefix(msg, "flag provided but not defined:"))
		return "unknown flag: " + name
	}
	return msg
}
