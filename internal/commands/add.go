package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/service"
	"taskman/internal/session"
	"taskman/internal/views"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	description string
	status      string
}

// SetFields sets description and status as if passed by flag (for testing).
func (c *AddCmd) SetFields(description, status string) {
	c.description, c.status = description, status
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskman add [common flags] [-d <description>] [-s <status>] <title...>"
}
func (c *AddCmd) Requires() Requirement { return RequiresSession }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "description", "", "")
	fs.StringVar(&c.description, "d", "", "")
	fs.StringVar(&c.status, "status", "", "")
	fs.StringVar(&c.status, "s", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Store, svc service.Service, args []string, out, errOut io.Writer) int {
	form := views.NewTaskForm(svc, "")
	form.Title = strings.Join(args, " ")
	form.Description = c.description

	if c.status != "" {
		st, err := service.ParseStatus(c.status)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		form.Status = st
	}

	if !form.Submit(ctx) {
		return reportViewError(cfg, errOut, form.Err, form.Cause)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "ok %s\n", form.Saved.ID)
	}
	return exitcode.Success
}
