//go:build !gcloud

package ringrecorder

import (
	"context"
	"log/slog"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/KasumiMercury/primind-alarm-scheduler/internal/domain"
)

const ringEventMeasurement = "alarm_ring_event"

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	bucket   string
	org      string
	timeout  time.Duration
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.RingEventRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "ring event recording disabled")
		return NewDiscardRecorder("disabled"), nil
	}

	if !cfg.influxConfigured() {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, ring event recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewDiscardRecorder("influxdb not configured"), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)
	writeAPI := client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket)

	slog.InfoContext(ctx, "ring event recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: writeAPI,
		bucket:   cfg.InfluxDBBucket,
		org:      cfg.InfluxDBOrg,
		timeout:  cfg.writeTimeout(),
	}, nil
}

func ringEventPoint(record domain.RingEventRecord) *write.Point {
	fields := map[string]any{
		"ring_at_unix":   record.RingAt.Unix(),
		"snooze_uses":    record.SnoozeUses,
		"snooze_minutes": record.SnoozeMinutes,
	}
	if !record.NextTrigger.IsZero() {
		fields["next_trigger_unix"] = record.NextTrigger.Unix()
	}

	return influxdb2.NewPoint(
		ringEventMeasurement,
		map[string]string{
			"alarm_id": record.AlarmID,
			"kind":     record.Kind.String(),
			"repeat":   boolTag(record.Repeat),
		},
		fields,
		record.HandledAt,
	)
}

func boolTag(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func (r *influxDBRecorder) RecordRingEvents(ctx context.Context, records []domain.RingEventRecord) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	for _, record := range records {
		if record.HandledAt.IsZero() {
			record.HandledAt = time.Now()
		}

		if err := r.writeAPI.WritePoint(ctx, ringEventPoint(record)); err != nil {
			slog.WarnContext(ctx, "failed to write ring event to InfluxDB",
				slog.String("error", err.Error()),
				slog.String("alarm_id", record.AlarmID),
				slog.String("kind", record.Kind.String()),
			)
		}
	}

	return nil
}

func (r *influxDBRecorder) Flush(ctx context.Context) error {
	return r.writeAPI.Flush(ctx)
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}
