package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/service"
	"taskman/internal/session"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string          { return "help" }
func (c *HelpCmd) Aliases() []string     { return nil }
func (c *HelpCmd) Synopsis() string      { return "Print usage" }
func (c *HelpCmd) Usage() string         { return "taskman help" }
func (c *HelpCmd) Requires() Requirement { return RequiresNothing }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Store, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprintf(out, helpText, service.StatusNames())
	return exitcode.Success
}

const helpText = `Usage:
  taskman                                          List tasks
  taskman list [common flags]                      List tasks (alias: ls)
  taskman show [common flags] <id>                 Show one task
  taskman add [common flags] [-d <description>] [-s <status>] <title...>
  taskman create ...                               Alias for add
  taskman edit [common flags] [-t <title>] [-d <description>] [-s <status>] <id>
  taskman rm [common flags] [--yes] <id>           Delete a task (alias: delete)
  taskman login [common flags] [-u <username>] [-p <password>]
  taskman register [common flags] [-u <username>] [-p <password>]
  taskman logout [common flags]
  taskman status [common flags]
  taskman help
  taskman version

Statuses: %s

The password is read from -p, then TASKMAN_PASSWORD, then one line of stdin.

Common flags:
  --config <dir>        Override config directory
  --api-url <url>       Backend base URL (default from TASKMAN_API_URL,
                        config.yaml api_url, or http://localhost:8000)
  --timeout <duration>  Give up on backend calls after this long
  --quiet               Suppress informational output
  --debug               Print debug logs to stderr
`
