package scheduler

import (
	"context"
	"errors"
	"time"
)

//go:generate mockgen -source=scheduler.go -destination=mock.go -package=scheduler

var (
	// ErrScheduleRejected is returned when the task service answers a request with a refusal.
	ErrScheduleRejected = errors.New("schedule rejected by task service")
	ErrInvalidTask      = errors.New("invalid task")
)

// Scheduler owns the native exact-alarm table. Every id maps to at most one pending fire.
type Scheduler interface {
	ScheduleAlarm(ctx context.Context, id string, at time.Time) error
	ModifyAlarm(ctx context.Context, id string, at time.Time) error
	DeleteAlarm(ctx context.Context, id string) error
	ScheduleDoubleCheck(ctx context.Context, id, callbackURL string, delay, grace time.Duration) error
}

// TaskBackend is a Cloud-Tasks-shaped queue that performs an HTTP callback at a given time.
type TaskBackend interface {
	CreateTask(ctx context.Context, task *Task) error
	DeleteTask(ctx context.Context, name string) error
}
