package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-alarm-scheduler/internal/domain"
)

const (
	snoozeKeyPrefix    = "alarm:snooze:"
	processedKeyPrefix = "alarm:processed:"
	taskKeyPrefix      = "alarm:task:"

	// snoozeDisabledValue replaces the JSON state when the snooze limiter is off.
	snoozeDisabledValue = "disabled"

	snoozeStateTTL = 7 * 24 * time.Hour
)

type snoozeRecord struct {
	Uses           int       `json:"uses"`
	Decay          int       `json:"decay"`
	Duration       int       `json:"duration"`
	ExpectedFireAt time.Time `json:"expected_fire_at"`
}

type ringStateRepository struct {
	client *redis.Client
}

func NewRingStateRepository(client *redis.Client) domain.RingStateRepository {
	return &ringStateRepository{
		client: client,
	}
}

func (r *ringStateRepository) GetSnooze(ctx context.Context, alarmID string) (*domain.SnoozeRecord, error) {
	data, err := r.client.Get(ctx, snoozeKeyPrefix+alarmID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSnoozeStateNotFound
		}
		return nil, err
	}

	if string(data) == snoozeDisabledValue {
		return &domain.SnoozeRecord{Disabled: true}, nil
	}

	var record snoozeRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrInvalidSnoozeData
	}

	return &domain.SnoozeRecord{
		State: domain.SnoozeState{
			Uses:            record.Uses,
			DecayMinutes:    record.Decay,
			DurationMinutes: record.Duration,
			ExpectedFireAt:  record.ExpectedFireAt,
		},
	}, nil
}

func (r *ringStateRepository) SaveSnooze(ctx context.Context, alarmID string, state domain.SnoozeState) error {
	data, err := json.Marshal(snoozeRecord{
		Uses:           state.Uses,
		Decay:          state.DecayMinutes,
		Duration:       state.DurationMinutes,
		ExpectedFireAt: state.ExpectedFireAt,
	})
	if err != nil {
		return ErrInvalidSnoozeData
	}

	return r.client.Set(ctx, snoozeKeyPrefix+alarmID, data, snoozeStateTTL).Err()
}

func (r *ringStateRepository) DisableSnooze(ctx context.Context, alarmID string) error {
	return r.client.Set(ctx, snoozeKeyPrefix+alarmID, snoozeDisabledValue, snoozeStateTTL).Err()
}

func (r *ringStateRepository) ClearSnooze(ctx context.Context, alarmID string) error {
	return r.client.Del(ctx, snoozeKeyPrefix+alarmID).Err()
}

func (r *ringStateRepository) MarkEventProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return r.client.SetNX(ctx, processedKeyPrefix+key, time.Now().UnixMilli(), ttl).Result()
}

func (r *ringStateRepository) ReleaseEvent(ctx context.Context, key string) error {
	return r.client.Del(ctx, processedKeyPrefix+key).Err()
}

type taskIndexRepository struct {
	client *redis.Client
}

func NewTaskIndexRepository(client *redis.Client) domain.TaskIndexRepository {
	return &taskIndexRepository{
		client: client,
	}
}

func (r *taskIndexRepository) GetTaskName(ctx context.Context, id string) (string, error) {
	name, err := r.client.Get(ctx, taskKeyPrefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrTaskNotIndexed
		}
		return "", err
	}
	return name, nil
}

// SetTaskName keeps the entry without expiry; only a cancel or reschedule replaces it.
func (r *taskIndexRepository) SetTaskName(ctx context.Context, id, taskName string) error {
	return r.client.Set(ctx, taskKeyPrefix+id, taskName, 0).Err()
}

func (r *taskIndexRepository) DeleteTaskName(ctx context.Context, id string) error {
	return r.client.Del(ctx, taskKeyPrefix+id).Err()
}
