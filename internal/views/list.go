// Package views holds the state behind each screen of the client: the task
// list and the task form. Views never return errors to their callers;
// failures land in Err as text meant for the user, with the cause kept for
// debugging.
package views

import (
	"context"

	"taskman/internal/service"
)

// Banner texts shown by TaskList.
const (
	MsgFetchTasksFailed = "failed to fetch tasks, please try again later"
	MsgDeleteFailed     = "failed to delete task, please try again later"
)

// ConfirmFunc reports whether the user wants to go ahead with deleting task.
type ConfirmFunc func(task service.Task) bool

// TaskList is the list screen.
type TaskList struct {
	svc service.Service

	// Tasks is the last fetched collection. Empty after a failed fetch.
	Tasks []service.Task

	// Err is the banner text of the last failure, or "".
	Err string

	// Cause is the error behind Err.
	Cause error
}

// NewTaskList creates a list view over svc.
func NewTaskList(svc service.Service) *TaskList {
	return &TaskList{svc: svc}
}

// Refresh fetches all tasks. It reports whether the fetch succeeded.
func (v *TaskList) Refresh(ctx context.Context) bool {
	v.clearError()
	tasks, err := v.svc.ListTasks(ctx)
	if err != nil {
		v.Tasks = nil
		v.fail(MsgFetchTasksFailed, err)
		return false
	}
	v.Tasks = tasks
	return true
}

// Find returns the task with id from the last fetch.
func (v *TaskList) Find(id string) (service.Task, bool) {
	for _, t := range v.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// Delete asks confirm, deletes the task and re-fetches the list. It reports
// whether the task was deleted. A declined confirmation changes nothing.
// A failed delete keeps the current list and sets Err.
func (v *TaskList) Delete(ctx context.Context, id string, confirm ConfirmFunc) bool {
	task, ok := v.Find(id)
	if !ok {
		task = service.Task{ID: id}
	}
	if confirm != nil && !confirm(task) {
		return false
	}

	v.clearError()
	if err := v.svc.DeleteTask(ctx, id); err != nil {
		v.fail(MsgDeleteFailed, err)
		return false
	}
	v.Refresh(ctx)
	return true
}

func (v *TaskList) fail(msg string, err error) {
	v.Err = msg
	v.Cause = err
}

func (v *TaskList) clearError() {
	v.Err = ""
	v.Cause = nil
}
