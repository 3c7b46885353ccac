package domain

import "context"

//go:generate mockgen -source=alarm_repository.go -destination=alarm_repository_mock.go -package=domain

type AlarmRepository interface {
	ListAlarms(ctx context.Context) ([]Alarm, error)
	ListEnabledAlarms(ctx context.Context) ([]Alarm, error)
	// SaveAlarms upserts all given alarms in a single transaction.
	SaveAlarms(ctx context.Context, alarms []Alarm) error
	DeleteAlarm(ctx context.Context, id string) error
}

// AlarmStore is an AlarmRepository bound to its own storage handle.
type AlarmStore interface {
	AlarmRepository
	Close() error
}

type AlarmStoreOpener interface {
	Open(ctx context.Context) (AlarmStore, error)
}
