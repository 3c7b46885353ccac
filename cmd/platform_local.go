//go:build !gcloud

package main

import (
	"context"
	"log/slog"

	"github.com/KasumiMercury/primind-alarm-scheduler/internal/config"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/infra/scheduler"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/observability"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/observability/logging"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/observability/metrics"
)

func initScheduler(
	_ context.Context,
	cfg *config.Config,
	index domain.TaskIndexRepository,
	alarmMetrics *metrics.AlarmMetrics,
) (scheduler.Scheduler, func() error, error) {
	if cfg.Scheduler.TasksURL == "" {
		slog.Warn("ALARM_TASKS_URL not set, alarms are scheduled in process memory only")

		return scheduler.NewMemoryScheduler(), nil, nil
	}

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

func initObservability(ctx context.Context, level slog.Leveler) (*observability.Resources, error) {
	return observability.Init(ctx, observabilityConfig("SERVICE_NAME", logging.EnvDev, level))
}
