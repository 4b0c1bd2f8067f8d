package views

import (
	"context"
	"errors"
	"strings"

	"taskman/internal/service"
)

// Banner texts shown by TaskForm.
const (
	MsgFetchTaskFailed = "error fetching task"
	MsgSaveFailed      = "error saving task"
	MsgTitleRequired   = "title required"
)

// ErrTitleRequired is the Cause of a submit rejected for an empty title.
var ErrTitleRequired = errors.New("title required")

// TaskForm is the create/edit screen. With an ID it edits that task;
// without one it creates a new task.
type TaskForm struct {
	svc service.Service

	ID          string
	Title       string
	Description string
	Status      service.Status

	// Saved is the task returned by the last successful Submit.
	Saved service.Task

	Err   string
	Cause error
}

// NewTaskForm creates a form over svc. id may be empty for a new task.
// Fields start out empty with status pending.
func NewTaskForm(svc service.Service, id string) *TaskForm {
	return &TaskForm{
		svc:    svc,
		ID:     id,
		Status: service.StatusPending,
	}
}

// Editing reports whether Submit will update rather than create.
func (f *TaskForm) Editing() bool {
	return f.ID != ""
}

// Load fetches the task being edited and copies its fields into the form.
// On a form without an ID it does nothing and reports true.
func (f *TaskForm) Load(ctx context.Context) bool {
	if !f.Editing() {
		return true
	}
	f.clearError()
	task, err := f.svc.GetTask(ctx, f.ID)
	if err != nil {
		f.fail(MsgFetchTaskFailed, err)
		return false
	}
	f.Title = task.Title
	f.Description = task.Description
	if task.Status != "" {
		f.Status = task.Status
	}
	return true
}

// Input returns the request body the form would submit.
func (f *TaskForm) Input() service.TaskInput {
	return service.TaskInput{
		Title:       f.Title,
		Description: f.Description,
		Status:      f.Status,
	}
}

// Submit creates or updates the task. The form's fields are kept on
// failure so the caller can retry.
func (f *TaskForm) Submit(ctx context.Context) bool {
	f.clearError()
	if strings.TrimSpace(f.Title) == "" {
		f.fail(MsgTitleRequired, ErrTitleRequired)
		return false
	}

	var (
		task service.Task
		err  error
	)
	if f.Editing() {
		task, err = f.svc.UpdateTask(ctx, f.ID, f.Input())
	} else {
		task, err = f.svc.CreateTask(ctx, f.Input())
	}
	if err != nil {
		f.fail(MsgSaveFailed, err)
		return false
	}
	f.Saved = task
	return true
}

func (f *TaskForm) fail(msg string, err error) {
	f.Err = msg
	f.Cause = err
}

func (f *TaskForm) clearError() {
	f.Err = ""
	f.Cause = nil
}
