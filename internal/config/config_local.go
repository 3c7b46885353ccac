//go:build !gcloud

package config

// Validate accepts an empty tasks URL; the service then runs with an in-memory scheduler.
func (c *SchedulerConfig) Validate() error {
	return nil
}
