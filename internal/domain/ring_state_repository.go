package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=ring_state_repository.go -destination=ring_state_repository_mock.go -package=domain

type RingStateRepository interface {
	// GetSnooze returns ErrSnoozeStateNotFound when nothing is stored for the alarm.
	GetSnooze(ctx context.Context, alarmID string) (*SnoozeRecord, error)
	SaveSnooze(ctx context.Context, alarmID string, state SnoozeState) error
	DisableSnooze(ctx context.Context, alarmID string) error
	ClearSnooze(ctx context.Context, alarmID string) error

	// MarkEventProcessed returns false when key was already marked within ttl.
	MarkEventProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseEvent(ctx context.Context, key string) error
}

// TaskIndexRepository maps an alarm id to the name of its one pending scheduler task.
type TaskIndexRepository interface {
	// GetTaskName returns ErrTaskNotIndexed when no task is recorded for id.
	GetTaskName(ctx context.Context, id string) (string, error)
	SetTaskName(ctx context.Context, id, taskName string) error
	DeleteTaskName(ctx context.Context, id string) error
}
