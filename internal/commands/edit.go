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
	"taskman/internal/views"
)

func init() {
	Register(&EditCmd{})
}

// optionalString is a string flag that remembers whether it was given, so
// `-d ""` can clear a field while an absent -d leaves it alone.
type optionalString struct {
	value string
	set   bool
}

func (o *optionalString) String() string { return o.value }

func (o *optionalString) Set(s string) error {
	o.value, o.set = s, true
	return nil
}

// EditCmd implements the edit command.
type EditCmd struct {
	title       optionalString
	description optionalString
	status      optionalString
}

// SetTitle sets the -t flag (for testing).
func (c *EditCmd) SetTitle(s string) { _ = c.title.Set(s) }

// SetDescription sets the -d flag (for testing).
func (c *EditCmd) SetDescription(s string) { _ = c.description.Set(s) }

// SetStatus sets the -s flag (for testing).
func (c *EditCmd) SetStatus(s string) { _ = c.status.Set(s) }

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Change a task" }
func (c *EditCmd) Usage() string {
	return "taskman edit [common flags] [-t <title>] [-d <description>] [-s <status>] <id>"
}
func (c *EditCmd) Requires() Requirement { return RequiresSession }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	c.title, c.description, c.status = optionalString{}, optionalString{}, optionalString{}
	fs.Var(&c.title, "title", "")
	fs.Var(&c.title, "t", "")
	fs.Var(&c.description, "description", "")
	fs.Var(&c.description, "d", "")
	fs.Var(&c.status, "status", "")
	fs.Var(&c.status, "s", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Store, svc service.Service, args []string, out, errOut io.Writer) int {
	id, code := taskID(args, errOut)
	if code != exitcode.Success {
		return code
	}

	if !c.title.set && !c.description.set && !c.status.set {
		fmt.Fprintln(errOut, "error: nothing to change (use -t, -d or -s)")
		return exitcode.UserError
	}

	var status service.Status
	if c.status.set {
		st, err := service.ParseStatus(c.status.value)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		status = st
	}

	form := views.NewTaskForm(svc, id)
	if !form.Load(ctx) {
		return reportViewError(cfg, errOut, form.Err, form.Cause)
	}
	if c.title.set {
		form.Title = c.title.value
	}
	if c.description.set {
		form.Description = c.description.value
	}
	if c.status.set {
		form.Status = status
	}

	if !form.Submit(ctx) {
		return reportViewError(cfg, errOut, form.Err, form.Cause)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
