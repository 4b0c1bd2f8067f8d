package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/service"
	"taskman/internal/session"
	"taskman/internal/views"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct {
	yes   bool
	input io.Reader
}

// SetYes skips the confirmation prompt (for testing).
func (c *RmCmd) SetYes(yes bool) { c.yes = yes }

// SetInput sets where the confirmation answer is read from (for testing).
func (c *RmCmd) SetInput(r io.Reader) { c.input = r }

func (c *RmCmd) Name() string          { return "rm" }
func (c *RmCmd) Aliases() []string     { return []string{"delete"} }
func (c *RmCmd) Synopsis() string      { return "Delete a task" }
func (c *RmCmd) Usage() string         { return "taskman rm [common flags] [--yes] <id>" }
func (c *RmCmd) Requires() Requirement { return RequiresSession }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.yes, "yes", false, "")
	fs.BoolVar(&c.yes, "y", false, "")
}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Store, svc service.Service, args []string, out, errOut io.Writer) int {
	id, code := taskID(args, errOut)
	if code != exitcode.Success {
		return code
	}

	list := views.NewTaskList(svc)
	// The prompt shows the title when the list can be fetched; a failed
	// fetch falls back to the id.
	if list.Refresh(ctx) {
		if _, ok := list.Find(id); !ok {
			fmt.Fprintf(errOut, "error: task not found: %s\n", id)
			return exitcode.UserError
		}
	}

	confirmed := true
	confirm := func(task service.Task) bool {
		if c.yes {
			return true
		}
		confirmed = c.ask(task, errOut)
		return confirmed
	}

	if !list.Delete(ctx, id, confirm) {
		if !confirmed {
			fmt.Fprintln(out, "cancelled")
			return exitcode.Success
		}
		return reportViewError(cfg, errOut, list.Err, list.Cause)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	if list.Err != "" {
		// Deleted, but the re-fetch failed.
		return reportViewError(cfg, errOut, list.Err, list.Cause)
	}
	printTaskList(cfg, list.Tasks, out)
	return exitcode.Success
}

// ask prompts on errOut and reads one answer line. Only y or yes confirms.
func (c *RmCmd) ask(task service.Task, errOut io.Writer) bool {
	label := task.Title
	if strings.TrimSpace(label) == "" {
		label = task.ID
	}
	fmt.Fprintf(errOut, "delete task %q? [y/N] ", label)

	in := c.input
	if in == nil {
		in = os.Stdin
	}
	sc := bufio.NewScanner(in)
	if !sc.Scan() {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(sc.Text())) {
	case "y", "yes":
		return true
	}
	return false
}
