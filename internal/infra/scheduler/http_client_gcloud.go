//go:build gcloud

package scheduler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"google.golang.org/api/idtoken"
)

// newTasksHTTPClient signs every request to the task service with an ID token for audience.
// Without credentials it degrades to an unauthenticated client so local emulators still work.
func newTasksHTTPClient(audience string, timeout time.Duration) *http.Client {
	client, err := idtoken.NewClient(context.Background(), audience)
	if err != nil {
		slog.Warn("tasks service client has no ID token credentials",
			slog.String("event", "scheduler.tasks.idtoken.fail"),
			slog.String("audience", audience),
			slog.String("error", err.Error()),
		)
		return &http.Client{Timeout: timeout}
	}
	client.Timeout = timeout

	return client
}
