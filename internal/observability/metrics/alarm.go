package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	alarmMeterName = "alarm.service"
)

type AlarmMetrics struct {
	lifecycleOperations   metric.Int64Counter
	schedulerCalls        metric.Int64Counter
	syncWrites            metric.Int64Counter
	bootReconcileDuration metric.Float64Histogram
	bootReconcileAlarms   metric.Int64Counter
	ringEvents            metric.Int64Counter
}

func NewAlarmMetrics() (*AlarmMetrics, error) {
	meter := otel.Meter(alarmMeterName)

	lifecycleOperations, err := meter.Int64Counter(
		"alarm_lifecycle_operations_total",
		metric.WithDescription("Total number of alarm lifecycle operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	schedulerCalls, err := meter.Int64Counter(
		"alarm_scheduler_calls_total",
		metric.WithDescription("Total number of native scheduler calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	syncWrites, err := meter.Int64Counter(
		"alarm_sync_writes_total",
		metric.WithDescription("Total number of alarm rows written by persistence sync"),
		metric.WithUnit("{alarm}"),
	)
	if err != nil {
		return nil, err
	}

	bootReconcileDuration, err := meter.Float64Histogram(
		"alarm_boot_reconcile_duration_seconds",
		metric.WithDescription("Boot reconciliation duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30,
		),
	)
	if err != nil {
		return nil, err
	}

	bootReconcileAlarms, err := meter.Int64Counter(
		"alarm_boot_reconcile_alarms_total",
		metric.WithDescription("Alarms re-scheduled during boot reconciliation"),
		metric.WithUnit("{alarm}"),
	)
	if err != nil {
		return nil, err
	}

	ringEvents, err := meter.Int64Counter(
		"alarm_ring_events_total",
		metric.WithDescription("Ring follow-up events handled"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, err
	}

	return &AlarmMetrics{
		lifecycleOperations:   lifecycleOperations,
		schedulerCalls:        schedulerCalls,
		syncWrites:            syncWrites,
		bootReconcileDuration: bootReconcileDuration,
		bootReconcileAlarms:   bootReconcileAlarms,
		ringEvents:            ringEvents,
	}, nil
}

func (m *AlarmMetrics) RecordLifecycleOperation(ctx context.Context, operation, outcome string) {
	m.lifecycleOperations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

func (m *AlarmMetrics) RecordSchedulerCall(ctx context.Context, operation, outcome string) {
	m.schedulerCalls.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

func (m *AlarmMetrics) RecordSyncWrites(ctx context.Context, count int, outcome string) {
	m.syncWrites.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func (m *AlarmMetrics) RecordBootReconcile(ctx context.Context, duration time.Duration, scheduled, failed int) {
	m.bootReconcileDuration.Record(ctx, duration.Seconds())
	m.bootReconcileAlarms.Add(ctx, int64(scheduled), metric.WithAttributes(attribute.String("outcome", "success")))
	m.bootReconcileAlarms.Add(ctx, int64(failed), metric.WithAttributes(attribute.String("outcome", "failed")))
}

func (m *AlarmMetrics) RecordRingEvent(ctx context.Context, kind, outcome string) {
	m.ringEvents.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("outcome", outcome),
	))
}

func Outcome(err error) string {
	if err != nil {
		return "failed"
	}
	return "success"
}
