package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/logging"
	"taskman/internal/output"
	"taskman/internal/service"
	"taskman/internal/session"
	"taskman/internal/views"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command. It also runs for `taskman` with no
// arguments.
type ListCmd struct{}

func (c *ListCmd) Name() string          { return "list" }
func (c *ListCmd) Aliases() []string     { return []string{"ls"} }
func (c *ListCmd) Synopsis() string      { return "List tasks" }
func (c *ListCmd) Usage() string         { return "taskman list [common flags]" }
func (c *ListCmd) Requires() Requirement { return RequiresSession }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Store, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	list := views.NewTaskList(svc)
	if !list.Refresh(ctx) {
		return reportViewError(cfg, errOut, list.Err, list.Cause)
	}
	printTaskList(cfg, list.Tasks, out)
	return exitcode.Success
}

// printTaskList writes tasks as a table, or "no tasks found".
func printTaskList(cfg *config.Config, tasks []service.Task, out io.Writer) {
	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return
	}
	output.FormatTaskTable(out, tasks)
}

// reportViewError prints a view's failure message and maps it to an exit
// code. The cause is logged at debug level only.
func reportViewError(cfg *config.Config, errOut io.Writer, msg string, cause error) int {
	logging.OrDiscard(cfg.Log).Debug("view failed", "message", msg, "error", cause)
	fmt.Fprintf(errOut, "error: %s\n", msg)
	if errors.Is(cause, views.ErrTitleRequired) {
		return exitcode.UserError
	}
	return exitcode.BackendError
}
