//go:build gcloud

package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type CloudTasksClient struct {
	client         *cloudtasks.Client
	projectID      string
	locationID     string
	queueID        string
	serviceAccount string
	maxRetries     int
}

type CloudTasksConfig struct {
	ProjectID      string
	LocationID     string
	QueueID        string
	ServiceAccount string
	// EmulatorHost switches the client to an unauthenticated plaintext endpoint.
	EmulatorHost string
	MaxRetries   int
}

func NewCloudTasksClient(ctx context.Context, cfg CloudTasksConfig) (*CloudTasksClient, error) {
	var opts []option.ClientOption
	if cfg.EmulatorHost != "" {
		opts = append(opts,
			option.WithEndpoint(cfg.EmulatorHost),
			option.WithoutAuthentication(),
			option.WithGRPCDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
		)
	}

	client, err := cloudtasks.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud tasks client: %w", err)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	return &CloudTasksClient{
		client:         client,
		projectID:      cfg.ProjectID,
		locationID:     cfg.LocationID,
		queueID:        cfg.QueueID,
		serviceAccount: cfg.ServiceAccount,
		maxRetries:     maxRetries,
	}, nil
}

func (c *CloudTasksClient) queuePath() string {
	return fmt.Sprintf("projects/%s/locations/%s/queues/%s", c.projectID, c.locationID, c.queueID)
}

func (c *CloudTasksClient) CreateTask(ctx context.Context, task *Task) error {
	if task == nil || task.Name == "" || task.CallbackURL == "" {
		return ErrInvalidTask
	}

	payload, err := json.Marshal(task.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal ring callback: %w", err)
	}

	httpReq := &taskspb.HttpRequest{
		HttpMethod: taskspb.HttpMethod_POST,
		Url:        task.CallbackURL,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: payload,
	}
	if c.serviceAccount != "" {
		httpReq.AuthorizationHeader = &taskspb.HttpRequest_OidcToken{
			OidcToken: &taskspb.OidcToken{
				ServiceAccountEmail: c.serviceAccount,
				Audience:            audience(task.CallbackURL),
			},
		}
	}

	cloudTask := &taskspb.Task{
		Name: c.queuePath() + "/tasks/" + task.Name,
		MessageType: &taskspb.Task_HttpRequest{
			HttpRequest: httpReq,
		},
	}
	if !task.ScheduleAt.IsZero() {
		cloudTask.ScheduleTime = timestamppb.New(task.ScheduleAt)
	}

	req := &taskspb.CreateTaskRequest{
		Parent: c.queuePath(),
		Task:   cloudTask,
	}

	return withRetry(ctx, c.maxRetries, "create", task.Name, func(ctx context.Context) error {
		return c.createTask(ctx, req, task.Name)
	})
}

func (c *CloudTasksClient) createTask(ctx context.Context, req *taskspb.CreateTaskRequest, taskName string) error {
	slog.DebugContext(ctx, "registering alarm task to Cloud Tasks",
		slog.String("queue_path", req.Parent),
		slog.String("task_name", taskName),
	)

	createdTask, err := c.client.CreateTask(ctx, req)
	if err != nil {
		slog.WarnContext(ctx, "failed to create cloud task",
			slog.String("task_name", taskName),
			slog.String("error", err.Error()),
		)
		if rejected(err) {
			return fmt.Errorf("%w: %w", ErrScheduleRejected, err)
		}
		return fmt.Errorf("failed to create cloud task: %w", err)
	}

	slog.InfoContext(ctx, "alarm task registered to Cloud Tasks",
		slog.String("task_name", createdTask.Name),
	)

	return nil
}

func (c *CloudTasksClient) DeleteTask(ctx context.Context, name string) error {
	if name == "" {
		return ErrInvalidTask
	}
	taskPath := c.queuePath() + "/tasks/" + name

	return withRetry(ctx, c.maxRetries, "delete", name, func(ctx context.Context) error {
		return c.deleteTask(ctx, taskPath, name)
	})
}

func (c *CloudTasksClient) deleteTask(ctx context.Context, taskPath, name string) error {
	err := c.client.DeleteTask(ctx, &taskspb.DeleteTaskRequest{Name: taskPath})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			slog.InfoContext(ctx, "task not found in Cloud Tasks (may have been processed)",
				slog.String("task_name", name),
			)
			return nil
		}

		slog.WarnContext(ctx, "failed to delete cloud task",
			slog.String("task_name", name),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to delete cloud task: %w", err)
	}

	slog.InfoContext(ctx, "task deleted from Cloud Tasks", slog.String("task_name", name))
	return nil
}

func (c *CloudTasksClient) Close() error {
	return c.client.Close()
}

func rejected(err error) bool {
	switch status.Code(err) {
	case codes.InvalidArgument, codes.FailedPrecondition, codes.AlreadyExists, codes.PermissionDenied:
		return true
	default:
		return false
	}
}

// audience is the callback origin; Cloud Run validates tokens against the service URL.
func audience(callbackURL string) string {
	u, err := url.Parse(callbackURL)
	if err != nil || u.Host == "" {
		return callbackURL
	}
	return u.Scheme + "://" + u.Host
}
