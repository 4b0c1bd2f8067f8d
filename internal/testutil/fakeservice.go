// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskman/internal/service"
)

// ErrNotFound is returned when a task does not exist.
var ErrNotFound = errors.New("not found")

// Call records one FakeService method invocation.
type Call struct {
	Method string
	ID     string
	Input  service.TaskInput
}

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu    sync.RWMutex
	tasks []service.Task
	calls []Call

	// Now stamps created and updated tasks. Defaults to a fixed instant.
	Now func() time.Time

	// Error injection for testing
	ListTasksErr  error
	GetTaskErr    error
	CreateTaskErr error
	UpdateTaskErr error
	DeleteTaskErr error
}

// FixedTime is the default clock of FakeService.
var FixedTime = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		Now: func() time.Time { return FixedTime },
	}
}

// AddTask adds a task and returns it. The id is generated when empty.
func (f *FakeService) AddTask(id, title string, status service.Status) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id == "" {
		id = uuid.NewString()
	}
	now := service.Timestamp{Time: f.Now()}
	task := service.Task{
		ID:        id,
		Title:     title,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.tasks = append(f.tasks, task)
	return task
}

// Tasks returns a copy of the stored tasks.
func (f *FakeService) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Task, len(f.tasks))
	copy(result, f.tasks)
	return result
}

// Calls returns the recorded method calls in order.
func (f *FakeService) Calls() []Call {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]Call, len(f.calls))
	copy(result, f.calls)
	return result
}

func (f *FakeService) record(c Call) {
	f.calls = append(f.calls, c)
}

func (f *FakeService) indexOf(id string) int {
	for i, t := range f.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(Call{Method: "ListTasks"})
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	result := make([]service.Task, len(f.tasks))
	copy(result, f.tasks)
	return result, nil
}

// GetTask implements service.Service.
func (f *FakeService) GetTask(ctx context.Context, id string) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(Call{Method: "GetTask", ID: id})
	if f.GetTaskErr != nil {
		return service.Task{}, f.GetTaskErr
	}
	i := f.indexOf(id)
	if i < 0 {
		return service.Task{}, ErrNotFound
	}
	return f.tasks[i], nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, in service.TaskInput) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(Call{Method: "CreateTask", Input: in})
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	status := in.Status
	if status == "" {
		status = service.StatusPending
	}
	now := service.Timestamp{Time: f.Now()}
	task := service.Task{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.tasks = append(f.tasks, task)
	return task, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id string, in service.TaskInput) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(Call{Method: "UpdateTask", ID: id, Input: in})
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	i := f.indexOf(id)
	if i < 0 {
		return service.Task{}, ErrNotFound
	}
	t := &f.tasks[i]
	t.Title = in.Title
	t.Description = in.Description
	if in.Status != "" {
		t.Status = in.Status
	}
	t.UpdatedAt = service.Timestamp{Time: f.Now()}
	return *t, nil
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(Call{Method: "DeleteTask", ID: id})
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	i := f.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
	return nil
}
