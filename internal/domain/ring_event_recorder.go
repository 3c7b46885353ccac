package domain

import (
	"context"
	"time"
)

type RingEventKind string

const (
	RingEventFire             RingEventKind = "fire"
	RingEventDismiss          RingEventKind = "dismiss"
	RingEventSnooze           RingEventKind = "snooze"
	RingEventDoubleCheckFire  RingEventKind = "double_check_fire"
	RingEventDoubleCheckClear RingEventKind = "double_check_dismiss"
)

func (k RingEventKind) String() string {
	return string(k)
}

type RingEventRecord struct {
	AlarmID       string
	Kind          RingEventKind
	RingAt        time.Time
	HandledAt     time.Time
	Repeat        bool
	SnoozeUses    int
	SnoozeMinutes int
	NextTrigger   time.Time
}

//go:generate mockgen -source=ring_event_recorder.go -destination=ring_event_recorder_mock.go -package=domain

type RingEventRecorder interface {
	RecordRingEvents(ctx context.Context, records []RingEventRecord) error
	Flush(ctx context.Context) error
	Close() error
}
