package scheduler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/KasumiMercury/primind-alarm-scheduler/internal/observability/tracing"
)

const tasksRequestTimeout = 15 * time.Second

// TasksClient talks to a Cloud-Tasks-compatible HTTP task service.
type TasksClient struct {
	baseURL    string
	queueName  string
	httpClient *http.Client
	maxRetries int
}

func NewTasksClient(baseURL, queueName string, maxRetries int) *TasksClient {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	baseURL = strings.TrimRight(baseURL, "/")

	return &TasksClient{
		baseURL:    baseURL,
		queueName:  queueName,
		httpClient: newTasksHTTPClient(baseURL, tasksRequestTimeout),
		maxRetries: maxRetries,
	}
}

func (c *TasksClient) queueURL() string {
	if c.queueName != "" && c.queueName != "default" {
		return fmt.Sprintf("%s/tasks/%s", c.baseURL, url.PathEscape(c.queueName))
	}
	return fmt.Sprintf("%s/tasks", c.baseURL)
}

func (c *TasksClient) CreateTask(ctx context.Context, task *Task) error {
	if task == nil || task.Name == "" || task.CallbackURL == "" {
		return ErrInvalidTask
	}

	payload, err := json.Marshal(task.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal ring callback: %w", err)
	}

	tasksReq := TasksRequest{
		Task: TasksTask{
			Name: task.Name,
			HTTPRequest: TasksHTTPRequest{
				URL:        task.CallbackURL,
				HTTPMethod: http.MethodPost,
				Body:       base64.StdEncoding.EncodeToString(payload),
				Headers: map[string]string{
					"Content-Type": "application/json",
				},
			},
		},
	}
	if !task.ScheduleAt.IsZero() {
		tasksReq.Task.ScheduleTime = task.ScheduleAt.UTC().Format(time.RFC3339)
	}

	reqBody, err := json.Marshal(tasksReq)
	if err != nil {
		return fmt.Errorf("failed to marshal tasks request: %w", err)
	}

	return withRetry(ctx, c.maxRetries, "create", task.Name, func(ctx context.Context) error {
		return c.doCreate(ctx, reqBody, task.Name)
	})
}

func (c *TasksClient) doCreate(ctx context.Context, reqBody []byte, taskName string) error {
	endpoint := c.queueURL()
	slog.DebugContext(ctx, "registering alarm task",
		slog.String("url", endpoint),
		slog.String("task_name", taskName),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	tracing.InjectToHTTPRequest(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.WarnContext(ctx, "failed to send request to task service",
			slog.String("task_name", taskName),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		slog.WarnContext(ctx, "task service rejected alarm task",
			slog.String("task_name", taskName),
			slog.Int("status_code", resp.StatusCode),
		)
		return fmt.Errorf("%w: status %d", ErrScheduleRejected, resp.StatusCode)
	default:
		slog.WarnContext(ctx, "unexpected status code from task service",
			slog.String("task_name", taskName),
			slog.Int("status_code", resp.StatusCode),
		)
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var tasksResp TasksResponse
	if err := json.NewDecoder(resp.Body).Decode(&tasksResp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	slog.InfoContext(ctx, "alarm task registered",
		slog.String("task_name", tasksResp.Name),
		slog.String("schedule_time", tasksResp.ScheduleTime),
	)

	return nil
}

// DeleteTask treats an unknown task as already gone.
func (c *TasksClient) DeleteTask(ctx context.Context, name string) error {
	if name == "" {
		return ErrInvalidTask
	}

	return withRetry(ctx, c.maxRetries, "delete", name, func(ctx context.Context) error {
		return c.doDelete(ctx, name)
	})
}

func (c *TasksClient) doDelete(ctx context.Context, name string) error {
	endpoint := c.queueURL() + "/" + url.PathEscape(name)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	tracing.InjectToHTTPRequest(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		slog.InfoContext(ctx, "alarm task deleted", slog.String("task_name", name))
		return nil
	case http.StatusNotFound:
		slog.InfoContext(ctx, "alarm task not found (may have been processed)", slog.String("task_name", name))
		return nil
	default:
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return fmt.Errorf("%w: status %d", ErrScheduleRejected, resp.StatusCode)
		}
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
}
