//go:build gcloud

package config

import (
	"errors"
	"fmt"
)

func (c *SchedulerConfig) Validate() error {
	// Without a queue the service talks to a plain tasks endpoint.
	if c.GCloudQueueID == "" {
		if c.TasksURL == "" {
			return fmt.Errorf("scheduler configuration errors: %w",
				errors.New("either GCLOUD_QUEUE_ID or ALARM_TASKS_URL is required"))
		}
		return nil
	}

	var errs []error

	if c.GCloudProjectID == "" {
		errs = append(errs, errors.New("GCLOUD_PROJECT_ID is required"))
	}
	if c.GCloudLocationID == "" {
		errs = append(errs, errors.New("GCLOUD_LOCATION_ID is required"))
	}
	if c.CallbackBaseURL == "" {
		errs = append(errs, errors.New("ALARM_CALLBACK_BASE_URL is required"))
	}
	if c.GCloudServiceAccount == "" && c.EmulatorHost == "" {
		errs = append(errs, errors.New("GCLOUD_SERVICE_ACCOUNT is required outside the emulator"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("scheduler configuration errors: %w", errors.Join(errs...))
	}

	return nil
}
