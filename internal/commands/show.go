package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/output"
	"taskman/internal/service"
	"taskman/internal/session"
	"taskman/internal/views"
)

func init() {
	Register(&ShowCmd{})
}

// ShowCmd implements the show command.
type ShowCmd struct{}

func (c *ShowCmd) Name() string          { return "show" }
func (c *ShowCmd) Aliases() []string     { return nil }
func (c *ShowCmd) Synopsis() string      { return "Show one task" }
func (c *ShowCmd) Usage() string         { return "taskman show [common flags] <id>" }
func (c *ShowCmd) Requires() Requirement { return RequiresSession }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShowCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Store, svc service.Service, args []string, out, errOut io.Writer) int {
	id, code := taskID(args, errOut)
	if code != exitcode.Success {
		return code
	}

	task, err := svc.GetTask(ctx, id)
	if err != nil {
		return reportViewError(cfg, errOut, views.MsgFetchTaskFailed, err)
	}
	output.FormatTaskDetail(out, task)
	return exitcode.Success
}

// taskID takes the single <id> argument of show, edit and rm.
func taskID(args []string, errOut io.Writer) (string, int) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		fmt.Fprintln(errOut, "error: task id required")
		return "", exitcode.UserError
	}
	if len(args) > 1 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return "", exitcode.UserError
	}
	return strings.TrimSpace(args[0]), exitcode.Success
}
