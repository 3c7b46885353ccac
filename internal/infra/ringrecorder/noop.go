package ringrecorder

import (
	"context"
	"log/slog"

	"github.com/KasumiMercury/primind-alarm-scheduler/internal/domain"
)

// discardRecorder drops ring events. Reason says why nothing is recorded.
type discardRecorder struct {
	reason string
}

func NewDiscardRecorder(reason string) domain.RingEventRecorder {
	return &discardRecorder{reason: reason}
}

func (d *discardRecorder) RecordRingEvents(ctx context.Context, records []domain.RingEventRecord) error {
	slog.DebugContext(ctx, "ring events discarded",
		slog.String("reason", d.reason),
		slog.Int("record_count", len(records)),
	)
	return nil
}

func (d *discardRecorder) Flush(context.Context) error {
	return nil
}

func (d *discardRecorder) Close() error {
	return nil
}
