// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task backend operations.
// Commands and views never talk HTTP directly.
type Service interface {
	// ListTasks returns every task visible to the session, in backend order.
	ListTasks(ctx context.Context) ([]Task, error)

	// GetTask returns a single task by id.
	GetTask(ctx context.Context, id string) (Task, error)

	// CreateTask creates a task and returns it as stored by the backend.
	CreateTask(ctx context.Context, in TaskInput) (Task, error)

	// UpdateTask replaces title, description and status of a task.
	UpdateTask(ctx context.Context, id string, in TaskInput) (Task, error)

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, id string) error
}
