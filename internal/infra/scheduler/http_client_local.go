//go:build !gcloud

package scheduler

import (
	"net/http"
	"time"
)

// newTasksHTTPClient returns a plain client; local task services run without auth.
func newTasksHTTPClient(_ string, timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
