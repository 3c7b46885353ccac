package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-alarm-scheduler/internal/deeplink"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/keylock"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/observability/metrics"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/observability/tracing"
)

// TaskScheduler implements Scheduler on top of a task queue. The id to task-name index
// makes schedule and modify behave as upserts. Calls for one id are serialized so the
// cancel, create and index steps never interleave.
type TaskScheduler struct {
	backend         TaskBackend
	index           domain.TaskIndexRepository
	callbackBaseURL string
	alarmMetrics    *metrics.AlarmMetrics
	now             func() time.Time
	nonce           func() string
	locks           *keylock.Mutex
}

type TaskSchedulerOption func(*TaskScheduler)

func WithClock(now func() time.Time) TaskSchedulerOption {
	return func(s *TaskScheduler) {
		s.now = now
	}
}

// WithNonce replaces the generator of the per-schedule task name suffix.
func WithNonce(nonce func() string) TaskSchedulerOption {
	return func(s *TaskScheduler) {
		s.nonce = nonce
	}
}

func randomNonce() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func NewTaskScheduler(
	backend TaskBackend,
	index domain.TaskIndexRepository,
	callbackBaseURL string,
	alarmMetrics *metrics.AlarmMetrics,
	opts ...TaskSchedulerOption,
) *TaskScheduler {
	s := &TaskScheduler{
		backend:         backend,
		index:           index,
		callbackBaseURL: callbackBaseURL,
		alarmMetrics:    alarmMetrics,
		now:             time.Now,
		nonce:           randomNonce,
		locks:           keylock.New(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *TaskScheduler) ScheduleAlarm(ctx context.Context, id string, at time.Time) error {
	ctx, span := tracing.StartSchedulerSpan(ctx, "schedule", id)
	defer span.End()

	err := s.upsert(ctx, id, s.alarmTask(id, at))
	tracing.RecordResult(span, err)
	s.record(ctx, "schedule", err)

	return err
}

func (s *TaskScheduler) ModifyAlarm(ctx context.Context, id string, at time.Time) error {
	ctx, span := tracing.StartSchedulerSpan(ctx, "modify", id)
	defer span.End()

	err := s.upsert(ctx, id, s.alarmTask(id, at))
	tracing.RecordResult(span, err)
	s.record(ctx, "modify", err)

	return err
}

func (s *TaskScheduler) ScheduleDoubleCheck(ctx context.Context, id, callbackURL string, delay, grace time.Duration) error {
	checkID := domain.DoubleCheckID(id)

	ctx, span := tracing.StartSchedulerSpan(ctx, "double_check", checkID)
	defer span.End()

	at := s.now().Add(delay + grace)
	err := s.upsert(ctx, checkID, &Task{
		Name:        TaskName(checkID, at, s.nonce()),
		CallbackURL: callbackURL,
		ScheduleAt:  at,
		Payload:     RingCallback{AlarmID: id, RingAt: at.UnixMilli()},
	})
	tracing.RecordResult(span, err)
	s.record(ctx, "double_check", err)

	return err
}

// DeleteAlarm cancels the pending fire of id. An id with nothing scheduled is a no-op.
func (s *TaskScheduler) DeleteAlarm(ctx context.Context, id string) error {
	ctx, span := tracing.StartSchedulerSpan(ctx, "delete", id)
	defer span.End()

	unlock := s.locks.Lock(id)
	err := s.cancel(ctx, id)
	unlock()

	tracing.RecordResult(span, err)
	s.record(ctx, "delete", err)

	return err
}

func (s *TaskScheduler) alarmTask(id string, at time.Time) *Task {
	return &Task{
		Name:        TaskName(id, at, s.nonce()),
		CallbackURL: deeplink.RingURL(s.callbackBaseURL, id, at),
		ScheduleAt:  at,
		Payload:     RingCallback{AlarmID: id, RingAt: at.UnixMilli()},
	}
}

func (s *TaskScheduler) upsert(ctx context.Context, id string, task *Task) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	if err := s.cancel(ctx, id); err != nil {
		return err
	}

	if err := s.backend.CreateTask(ctx, task); err != nil {
		return fmt.Errorf("failed to schedule %s: %w", id, err)
	}

	if err := s.index.SetTaskName(ctx, id, task.Name); err != nil {
		return fmt.Errorf("failed to index task for %s: %w", id, err)
	}

	slog.InfoContext(ctx, "alarm scheduled",
		slog.String("event", "scheduler.schedule"),
		slog.String("id", id),
		slog.String("task_name", task.Name),
		slog.Time("at", task.ScheduleAt),
	)

	return nil
}

func (s *TaskScheduler) cancel(ctx context.Context, id string) error {
	name, err := s.index.GetTaskName(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotIndexed) {
			return nil
		}
		return fmt.Errorf("failed to look up task for %s: %w", id, err)
	}

	if err := s.backend.DeleteTask(ctx, name); err != nil {
		return fmt.Errorf("failed to cancel %s: %w", id, err)
	}

	if err := s.index.DeleteTaskName(ctx, id); err != nil {
		return fmt.Errorf("failed to drop task index for %s: %w", id, err)
	}

	return nil
}

func (s *TaskScheduler) record(ctx context.Context, operation string, err error) {
	if s.alarmMetrics != nil {
		s.alarmMetrics.RecordSchedulerCall(ctx, operation, metrics.Outcome(err))
	}
}
