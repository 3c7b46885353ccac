//go:build gcloud

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/KasumiMercury/primind-alarm-scheduler/internal/config"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/infra/scheduler"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/observability"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/observability/logging"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/observability/metrics"
)

func initScheduler(
	ctx context.Context,
	cfg *config.Config,
	index domain.TaskIndexRepository,
	alarmMetrics *metrics.AlarmMetrics,
) (scheduler.Scheduler, func() error, error) {
	if cfg.Scheduler.GCloudQueueID == "" {
		backend := scheduler.NewTasksClient(
			cfg.Scheduler.TasksURL,
			cfg.Scheduler.QueueName,
			cfg.Scheduler.MaxRetries,
		)

		slog.Info("scheduler initialized",
			slog.String("type", "tasks"),
			slog.String("url", cfg.Scheduler.TasksURL),
			slog.String("queue", cfg.Scheduler.QueueName),
		)

		return scheduler.NewTaskScheduler(backend, index, cfg.Scheduler.CallbackBaseURL, alarmMetrics), nil, nil
	}

	cloudTasksClient, err := scheduler.NewCloudTasksClient(ctx, scheduler.CloudTasksConfig{
		ProjectID:      cfg.Scheduler.GCloudProjectID,
		LocationID:     cfg.Scheduler.GCloudLocationID,
		QueueID:        cfg.Scheduler.GCloudQueueID,
		ServiceAccount: cfg.Scheduler.GCloudServiceAccount,
		EmulatorHost:   cfg.Scheduler.EmulatorHost,
		MaxRetries:     cfg.Scheduler.MaxRetries,
	})
	if err != nil {
		return nil, nil, err
	}

	slog.Info("scheduler initialized",
		slog.String("type", "cloud_tasks"),
		slog.String("project", cfg.Scheduler.GCloudProjectID),
		slog.String("location", cfg.Scheduler.GCloudLocationID),
		slog.String("queue", cfg.Scheduler.GCloudQueueID),
	)

	cleanup := func() error {
		if err := cloudTasksClient.Close(); err != nil {
			slog.Warn("failed to close cloud tasks client", slog.String("error", err.Error()))

			return err
		}

		return nil
	}

	return scheduler.NewTaskScheduler(cloudTasksClient, index, cfg.Scheduler.CallbackBaseURL, alarmMetrics), cleanup, nil
}

func initObservability(ctx context.Context, level slog.Leveler) (*observability.Resources, error) {
	cfg := observabilityConfig("K_SERVICE", logging.EnvProd, level)
	cfg.ServiceInfo.Revision = os.Getenv("K_REVISION")

	cfg.GCPProjectID = os.Getenv("GOOGLE_CLOUD_PROJECT")
	if cfg.GCPProjectID == "" {
		cfg.GCPProjectID = os.Getenv("GCLOUD_PROJECT_ID")
	}

	return observability.Init(ctx, cfg)
}
