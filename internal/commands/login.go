package commands

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/service"
	"taskman/internal/session"
)

// PasswordEnv supplies the password when -p is not given.
const PasswordEnv = "TASKMAN_PASSWORD"

var (
	errUsernameRequired = errors.New("username required")
	errPasswordRequired = errors.New("password required")
)

func init() {
	Register(&LoginCmd{})
	Register(&RegisterCmd{})
}

// credentialFlags are the flags shared by login and register.
type credentialFlags struct {
	username string
	password string
	input    io.Reader
}

func (f *credentialFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.username, "username", "", "")
	fs.StringVar(&f.username, "u", "", "")
	fs.StringVar(&f.password, "password", "", "")
	fs.StringVar(&f.password, "p", "", "")
}

// resolve returns the username and password. The password comes from the
// flag, then PasswordEnv, then the first line of input.
func (f *credentialFlags) resolve(args []string) (string, string, error) {
	username := strings.TrimSpace(f.username)
	if username == "" && len(args) > 0 {
		username = strings.TrimSpace(args[0])
	}
	if username == "" {
		return "", "", errUsernameRequired
	}

	password := f.password
	if password == "" {
		password = os.Getenv(PasswordEnv)
	}
	if password == "" {
		in := f.input
		if in == nil {
			in = os.Stdin
		}
		sc := bufio.NewScanner(in)
		if sc.Scan() {
			password = strings.TrimRight(sc.Text(), "\r")
		}
	}
	if password == "" {
		return "", "", errPasswordRequired
	}
	return username, password, nil
}

// LoginCmd implements the login command.
type LoginCmd struct {
	credentialFlags
}

// SetInput sets where the password is read from when no flag or env var
// gives one (for testing).
func (c *LoginCmd) SetInput(r io.Reader) { c.input = r }

// SetCredentials sets username and password as if passed by flag (for testing).
func (c *LoginCmd) SetCredentials(username, password string) {
	c.username, c.password = username, password
}

func (c *LoginCmd) Name() string          { return "login" }
func (c *LoginCmd) Aliases() []string     { return nil }
func (c *LoginCmd) Synopsis() string      { return "Log in and store the session token" }
func (c *LoginCmd) Usage() string         { return "taskman login [-u <username>] [-p <password>]" }
func (c *LoginCmd) Requires() Requirement { return RequiresStore }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) { c.credentialFlags.register(fs) }

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Store, svc service.Service, args []string, out, errOut io.Writer) int {
	return runCredentials(ctx, cfg, &c.credentialFlags, sess.Login, "login", args, out, errOut)
}

// RegisterCmd implements the register command.
type RegisterCmd struct {
	credentialFlags
}

// SetInput sets where the password is read from (for testing).
func (c *RegisterCmd) SetInput(r io.Reader) { c.input = r }

// SetCredentials sets username and password as if passed by flag (for testing).
func (c *RegisterCmd) SetCredentials(username, password string) {
	c.username, c.password = username, password
}

func (c *RegisterCmd) Name() string          { return "register" }
func (c *RegisterCmd) Aliases() []string     { return nil }
func (c *RegisterCmd) Synopsis() string      { return "Create an account and log in" }
func (c *RegisterCmd) Usage() string         { return "taskman register [-u <username>] [-p <password>]" }
func (c *RegisterCmd) Requires() Requirement { return RequiresStore }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) { c.credentialFlags.register(fs) }

func (c *RegisterCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Store, svc service.Service, args []string, out, errOut io.Writer) int {
	return runCredentials(ctx, cfg, &c.credentialFlags, sess.Register, "registration", args, out, errOut)
}

type exchangeFunc func(ctx context.Context, username, password string) error

// runCredentials is the shared implementation for login and register.
func runCredentials(ctx context.Context, cfg *config.Config, flags *credentialFlags, exchange exchangeFunc, action string, args []string, out, errOut io.Writer) int {
	if len(args) > 1 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return exitcode.UserError
	}

	username, password, err := flags.resolve(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if err := exchange(ctx, username, password); err != nil {
		fmt.Fprintf(errOut, "error: %s failed: %v\n", action, err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
