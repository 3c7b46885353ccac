package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/KasumiMercury/primind-alarm-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/infra/scheduler"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/keylock"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/observability/metrics"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/observability/tracing"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/service/timecalc"
)

type Service struct {
	repo         domain.AlarmRepository
	scheduler    scheduler.Scheduler
	calculator   *timecalc.Calculator
	alarmMetrics *metrics.AlarmMetrics
	now          func() time.Time

	store *Store
	locks *keylock.Mutex

	syncMu         sync.Mutex
	baseline       time.Time
	pendingDeletes map[string]struct{}
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(
	repo domain.AlarmRepository,
	sched scheduler.Scheduler,
	calculator *timecalc.Calculator,
	alarmMetrics *metrics.AlarmMetrics,
	opts ...Option,
) *Service {
	s := &Service{
		repo:           repo,
		scheduler:      sched,
		calculator:     calculator,
		alarmMetrics:   alarmMetrics,
		now:            time.Now,
		store:          NewStore(),
		locks:          keylock.New(),
		pendingDeletes: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Load replaces the in-memory collection with the persisted rows and takes the sync baseline.
func (s *Service) Load(ctx context.Context) error {
	alarms, err := s.repo.ListAlarms(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load alarms",
			slog.String("event", "alarm.load.fail"),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to load alarms: %w", err)
	}

	s.syncMu.Lock()
	defer s.syncMu.Unlock()

	snap, baseline := s.store.Replace(alarms)
	s.baseline = baseline
	clear(s.pendingDeletes)

	slog.InfoContext(ctx, "alarms loaded",
		slog.String("event", "alarm.load"),
		slog.Int("count", snap.Len()),
		slog.Time("baseline", baseline),
	)

	return nil
}

func (s *Service) Get(_ context.Context, id string) (domain.Alarm, error) {
	a, ok := s.store.Snapshot().Get(id)
	if !ok {
		return domain.Alarm{}, domain.ErrAlarmNotFound
	}
	return a, nil
}

func (s *Service) List(_ context.Context) []domain.Alarm {
	return s.store.Snapshot().List()
}

// NextTrigger reports when an enabled alarm will ring next.
func (s *Service) NextTrigger(a domain.Alarm, now time.Time) time.Time {
	return s.calculator.Next(a, now)
}

func (s *Service) Create(ctx context.Context, patch AlarmPatch) (domain.Alarm, error) {
	now := s.now()

	a := domain.NewAlarm(time.Time{})
	patch.apply(&a)
	if err := a.Validate(); err != nil {
		s.record(ctx, "create", err)
		return domain.Alarm{}, err
	}

	ctx, span := tracing.StartLifecycleSpan(ctx, "create", a.ID)
	defer span.End()

	unlock := s.locks.Lock(a.ID)
	defer unlock()

	a, _ = s.store.Put(now, a)

	var nativeErr error
	if a.Enabled {
		next := s.calculator.Next(a, now)
		tracing.RecordScheduledTrigger(span, next)
		if err := s.scheduler.ScheduleAlarm(ctx, a.ID, next); err != nil {
			nativeErr = s.nativeFailure(ctx, "create", a.ID, err)
		}
	}

	s.syncAfterMutation(ctx, "create")

	slog.InfoContext(ctx, "alarm created",
		slog.String("event", "alarm.create"),
		slog.String("alarm_id", a.ID),
		slog.Bool("enabled", a.Enabled),
	)

	tracing.RecordResult(span, nativeErr)
	s.record(ctx, "create", nativeErr)

	return a, nativeErr
}

// Update merges patch into the alarm and, when it is enabled, moves its native schedule.
// A patch that disables the alarm cancels the schedule instead.
func (s *Service) Update(ctx context.Context, id string, patch AlarmPatch) (domain.Alarm, error) {
	now := s.now()

	ctx, span := tracing.StartLifecycleSpan(ctx, "update", id)
	defer span.End()

	unlock := s.locks.Lock(id)
	defer unlock()

	var wasEnabled bool
	a, _, err := s.store.Mutate(now, id, func(a *domain.Alarm) error {
		wasEnabled = a.Enabled
		patch.apply(a)
		return nil
	})
	if err != nil {
		tracing.RecordResult(span, err)
		s.record(ctx, "update", err)
		return domain.Alarm{}, err
	}

	var nativeErr error
	switch {
	case a.Enabled:
		next := s.calculator.Next(a, now)
		tracing.RecordScheduledTrigger(span, next)
		if err := s.scheduler.ModifyAlarm(ctx, id, next); err != nil {
			nativeErr = s.nativeFailure(ctx, "update", id, err)
		}
	case wasEnabled:
		if err := s.scheduler.DeleteAlarm(ctx, id); err != nil {
			nativeErr = s.nativeFailure(ctx, "update", id, err)
		}
	}

	s.syncAfterMutation(ctx, "update")

	tracing.RecordResult(span, nativeErr)
	s.record(ctx, "update", nativeErr)

	return a, nativeErr
}

// Delete cancels the native schedule first. A failed cancel is reported but the row and the
// in-memory entry are removed regardless.
func (s *Service) Delete(ctx context.Context, id string) error {
	ctx, span := tracing.StartLifecycleSpan(ctx, "delete", id)
	defer span.End()

	unlock := s.locks.Lock(id)
	defer unlock()

	if _, ok := s.store.Snapshot().Get(id); !ok {
		tracing.RecordResult(span, domain.ErrAlarmNotFound)
		s.record(ctx, "delete", domain.ErrAlarmNotFound)
		return domain.ErrAlarmNotFound
	}

	var nativeErr error
	if err := s.scheduler.DeleteAlarm(ctx, id); err != nil {
		nativeErr = s.nativeFailure(ctx, "delete", id, err)
	}

	s.store.Remove(id)

	s.syncMu.Lock()
	if err := s.repo.DeleteAlarm(ctx, id); err != nil {
		s.pendingDeletes[id] = struct{}{}
		slog.ErrorContext(ctx, "failed to delete persisted alarm, will retry on next sync",
			slog.String("event", "alarm.delete.persist.fail"),
			slog.String("alarm_id", id),
			slog.String("error", err.Error()),
		)
	}
	s.syncMu.Unlock()

	slog.InfoContext(ctx, "alarm deleted",
		slog.String("event", "alarm.delete"),
		slog.String("alarm_id", id),
	)

	tracing.RecordResult(span, nativeErr)
	s.record(ctx, "delete", nativeErr)

	return nativeErr
}

// Toggle drives the native schedule first and persists the flag only when that succeeds.
// Enabling an already enabled alarm reschedules it.
func (s *Service) Toggle(ctx context.Context, id string, enabled bool) (domain.Alarm, error) {
	now := s.now()

	ctx, span := tracing.StartLifecycleSpan(ctx, "toggle", id)
	defer span.End()

	unlock := s.locks.Lock(id)
	defer unlock()

	cur, ok := s.store.Snapshot().Get(id)
	if !ok {
		tracing.RecordResult(span, domain.ErrAlarmNotFound)
		s.record(ctx, "toggle", domain.ErrAlarmNotFound)
		return domain.Alarm{}, domain.ErrAlarmNotFound
	}

	if enabled {
		cur.Enabled = true
		next := s.calculator.Next(cur, now)
		tracing.RecordScheduledTrigger(span, next)
		if err := s.scheduler.ScheduleAlarm(ctx, id, next); err != nil {
			err = s.nativeFailure(ctx, "toggle", id, err)
			tracing.RecordResult(span, err)
			s.record(ctx, "toggle", err)
			return domain.Alarm{}, err
		}
	} else if err := s.scheduler.DeleteAlarm(ctx, id); err != nil {
		err = s.nativeFailure(ctx, "toggle", id, err)
		tracing.RecordResult(span, err)
		s.record(ctx, "toggle", err)
		return domain.Alarm{}, err
	}

	a, _, err := s.store.Mutate(now, id, func(a *domain.Alarm) error {
		a.Enabled = enabled
		return nil
	})
	if err != nil {
		tracing.RecordResult(span, err)
		s.record(ctx, "toggle", err)
		return domain.Alarm{}, err
	}

	s.syncAfterMutation(ctx, "toggle")

	slog.InfoContext(ctx, "alarm toggled",
		slog.String("event", "alarm.toggle"),
		slog.String("alarm_id", id),
		slog.Bool("enabled", enabled),
	)

	tracing.RecordResult(span, nil)
	s.record(ctx, "toggle", nil)

	return a, nil
}

// Disable clears the enabled flag without touching the native schedule. It is used once a
// one-shot alarm has been dismissed and its schedule is already consumed.
func (s *Service) Disable(ctx context.Context, id string) (domain.Alarm, error) {
	now := s.now()

	unlock := s.locks.Lock(id)
	defer unlock()

	a, _, err := s.store.Mutate(now, id, func(a *domain.Alarm) error {
		a.Enabled = false
		return nil
	})
	if err != nil {
		s.record(ctx, "disable", err)
		return domain.Alarm{}, err
	}

	s.syncAfterMutation(ctx, "disable")
	s.record(ctx, "disable", nil)

	return a, nil
}

// SaveAlarms writes every alarm modified after the baseline in one transaction and
// retries deletes that failed earlier. On failure the baseline stays put so the next
// call writes the same set again.
func (s *Service) SaveAlarms(ctx context.Context) (int, error) {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()

	ctx, span := tracing.StartSyncSpan(ctx, s.baseline)
	defer span.End()

	for id := range s.pendingDeletes {
		if err := s.repo.DeleteAlarm(ctx, id); err != nil {
			slog.ErrorContext(ctx, "failed to delete persisted alarm",
				slog.String("event", "alarm.sync.delete.fail"),
				slog.String("alarm_id", id),
				slog.String("error", err.Error()),
			)
			tracing.RecordSyncResult(span, 0, err)
			return 0, fmt.Errorf("failed to delete alarm %s: %w", id, err)
		}
		delete(s.pendingDeletes, id)
	}

	changed := s.store.Snapshot().ModifiedAfter(s.baseline)
	if len(changed) == 0 {
		tracing.RecordSyncResult(span, 0, nil)
		return 0, nil
	}

	if err := s.repo.SaveAlarms(ctx, changed); err != nil {
		slog.ErrorContext(ctx, "failed to save alarms",
			slog.String("event", "alarm.sync.fail"),
			slog.Int("count", len(changed)),
			slog.String("error", err.Error()),
		)
		tracing.RecordSyncResult(span, 0, err)
		if s.alarmMetrics != nil {
			s.alarmMetrics.RecordSyncWrites(ctx, len(changed), metrics.Outcome(err))
		}
		return 0, fmt.Errorf("failed to save alarms: %w", err)
	}

	s.baseline = changed[len(changed)-1].LastModified

	slog.DebugContext(ctx, "alarms saved",
		slog.String("event", "alarm.sync"),
		slog.Int("count", len(changed)),
		slog.Time("baseline", s.baseline),
	)
	tracing.RecordSyncResult(span, len(changed), nil)
	if s.alarmMetrics != nil {
		s.alarmMetrics.RecordSyncWrites(ctx, len(changed), metrics.Outcome(nil))
	}

	return len(changed), nil
}

// syncAfterMutation persists right away. Failures are already logged by SaveAlarms and
// the in-memory collection stays authoritative until a later sync succeeds.
func (s *Service) syncAfterMutation(ctx context.Context, operation string) {
	if _, err := s.SaveAlarms(ctx); err != nil {
		slog.WarnContext(ctx, "alarm persisted state is behind memory",
			slog.String("event", "alarm.sync.deferred"),
			slog.String("operation", operation),
		)
	}
}

func (s *Service) nativeFailure(ctx context.Context, operation, id string, err error) error {
	slog.ErrorContext(ctx, "native scheduler call failed",
		slog.String("event", "alarm."+operation+".native.fail"),
		slog.String("alarm_id", id),
		slog.String("error", err.Error()),
	)
	return fmt.Errorf("%w: %s %s: %w", domain.ErrNativeCall, operation, id, err)
}

func (s *Service) record(ctx context.Context, operation string, err error) {
	if s.alarmMetrics != nil {
		s.alarmMetrics.RecordLifecycleOperation(ctx, operation, metrics.Outcome(err))
	}
}
