package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/service"
	"taskman/internal/session"
)

func init() {
	Register(&StatusCmd{})
}

// StatusCmd implements the status command. It reads the stored token only;
// the backend is not contacted.
type StatusCmd struct {
	now func() time.Time
}

// SetNow sets the clock used for the expiry check (for testing).
func (c *StatusCmd) SetNow(now func() time.Time) { c.now = now }

func (c *StatusCmd) Name() string          { return "status" }
func (c *StatusCmd) Aliases() []string     { return nil }
func (c *StatusCmd) Synopsis() string      { return "Show whether a session is stored" }
func (c *StatusCmd) Usage() string         { return "taskman status [common flags]" }
func (c *StatusCmd) Requires() Requirement { return RequiresStore }

func (c *StatusCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatusCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Store, svc service.Service, args []string, out, errOut io.Writer) int {
	current := sess.Current()
	if !current.Authenticated {
		fmt.Fprintln(out, "not logged in")
		return exitcode.Success
	}

	fmt.Fprintln(out, "logged in")
	fmt.Fprintf(out, "api:      %s\n", cfg.APIURL)

	claims, err := current.Claims()
	if err != nil {
		// Opaque tokens carry nothing more to show.
		return exitcode.Success
	}
	if claims.Subject != "" {
		fmt.Fprintf(out, "user:     %s\n", claims.Subject)
	}
	if !claims.ExpiresAt.IsZero() {
		now := time.Now
		if c.now != nil {
			now = c.now
		}
		line := claims.ExpiresAt.UTC().Format(time.RFC3339)
		if claims.Expired(now()) {
			line += " (expired)"
		}
		fmt.Fprintf(out, "expires:  %s\n", line)
	}
	return exitcode.Success
}
