//go:build gcloud

package ringrecorder

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/KasumiMercury/primind-alarm-scheduler/internal/domain"
)

type bigQueryRecord struct {
	RecordedAt    time.Time              `bigquery:"recorded_at"`
	AlarmID       string                 `bigquery:"alarm_id"`
	Kind          string                 `bigquery:"kind"`
	RingAt        time.Time              `bigquery:"ring_at"`
	Repeat        bool                   `bigquery:"repeat"`
	SnoozeUses    int64                  `bigquery:"snooze_uses"`
	SnoozeMinutes int64                  `bigquery:"snooze_minutes"`
	NextTrigger   bigquery.NullTimestamp `bigquery:"next_trigger"`
}

type bigQueryRecorder struct {
	client   *bigquery.Client
	inserter *bigquery.Inserter
	dataset  string
	table    string
	timeout  time.Duration
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.RingEventRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "ring event recording disabled")
		return NewDiscardRecorder("disabled"), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, ring event recording disabled")
		return NewDiscardRecorder("bigquery not configured"), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, ring event recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewDiscardRecorder("bigquery client unavailable"), nil
	}

	inserter := client.Dataset(cfg.BigQueryDataset).Table(cfg.BigQueryTable).Inserter()

	slog.InfoContext(ctx, "ring event recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
	)

	return &bigQueryRecorder{
		client:   client,
		inserter: inserter,
		dataset:  cfg.BigQueryDataset,
		table:    cfg.BigQueryTable,
		timeout:  cfg.writeTimeout(),
	}, nil
}

func (r *bigQueryRecorder) RecordRingEvents(ctx context.Context, records []domain.RingEventRecord) error {
	if len(records) == 0 {
		return nil
	}

	now := time.Now()
	bqRecords := make([]*bigQueryRecord, 0, len(records))
	for _, record := range records {
		recordedAt := record.HandledAt
		if recordedAt.IsZero() {
			recordedAt = now
		}
		bqRecords = append(bqRecords, &bigQueryRecord{
			RecordedAt:    recordedAt,
			AlarmID:       record.AlarmID,
			Kind:          record.Kind.String(),
			RingAt:        record.RingAt,
			Repeat:        record.Repeat,
			SnoozeUses:    int64(record.SnoozeUses),
			SnoozeMinutes: int64(record.SnoozeMinutes),
			NextTrigger: bigquery.NullTimestamp{
				Timestamp: record.NextTrigger,
				Valid:     !record.NextTrigger.IsZero(),
			},
		})
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.inserter.Put(ctx, bqRecords); err != nil {
		slog.WarnContext(ctx, "failed to insert ring events to BigQuery",
			slog.String("error", err.Error()),
			slog.Int("record_count", len(records)),
		)
	}

	return nil
}

func (r *bigQueryRecorder) Flush(context.Context) error {
	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
