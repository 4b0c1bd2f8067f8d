package taskapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"taskman/internal/service"
	"taskman/internal/session"
)

// TaskClient implements service.Service over the /tasks endpoints.
type TaskClient struct {
	t     transport
	creds session.Credentials
}

var _ service.Service = (*TaskClient)(nil)

// NewTaskClient creates a TaskClient for baseURL. creds is asked for the
// current session once per request.
func NewTaskClient(baseURL string, creds session.Credentials, opts ...Option) (*TaskClient, error) {
	t, err := newTransport(baseURL, opts)
	if err != nil {
		return nil, err
	}
	return &TaskClient{t: t, creds: creds}, nil
}

func (c *TaskClient) call(ctx context.Context, method, path string, body, out any) error {
	var sess session.Session
	if c.creds != nil {
		sess = c.creds.Current()
	}
	req, err := c.t.newRequest(ctx, sess, method, path, body)
	if err != nil {
		return err
	}
	return c.t.do(req, out)
}

func taskPath(id string) string {
	return tasksPath + "/" + url.PathEscape(id)
}

type taskListResponse struct {
	Tasks []service.Task `json:"tasks"`
}

// taskBody decodes either a bare task or one wrapped as {"task": {...}};
// both shapes are served by existing backends.
type taskBody struct {
	service.Task
}

func (b *taskBody) UnmarshalJSON(data []byte) error {
	var env struct {
		Task *service.Task `json:"task"`
	}
	if err := json.Unmarshal(data, &env); err == nil && env.Task != nil {
		b.Task = *env.Task
		return nil
	}
	return json.Unmarshal(data, &b.Task)
}

// ListTasks implements service.Service.
func (c *TaskClient) ListTasks(ctx context.Context) ([]service.Task, error) {
	var resp taskListResponse
	if err := c.call(ctx, http.MethodGet, tasksPath, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Tasks == nil {
		return []service.Task{}, nil
	}
	return resp.Tasks, nil
}

// GetTask implements service.Service.
func (c *TaskClient) GetTask(ctx context.Context, id string) (service.Task, error) {
	var body taskBody
	if err := c.call(ctx, http.MethodGet, taskPath(id), nil, &body); err != nil {
		return service.Task{}, err
	}
	return body.Task, nil
}

// CreateTask implements service.Service.
func (c *TaskClient) CreateTask(ctx context.Context, in service.TaskInput) (service.Task, error) {
	var body taskBody
	if err := c.call(ctx, http.MethodPost, tasksPath, in, &body); err != nil {
		return service.Task{}, err
	}
	return body.Task, nil
}

// UpdateTask implements service.Service.
func (c *TaskClient) UpdateTask(ctx context.Context, id string, in service.TaskInput) (service.Task, error) {
	var body taskBody
	if err := c.call(ctx, http.MethodPut, taskPath(id), in, &body); err != nil {
		return service.Task{}, err
	}
	return body.Task, nil
}

// DeleteTask implements service.Service.
func (c *TaskClient) DeleteTask(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, taskPath(id), nil, nil)
}
