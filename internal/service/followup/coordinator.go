package followup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/KasumiMercury/primind-alarm-scheduler/internal/deeplink"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/infra/scheduler"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/observability/metrics"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/observability/tracing"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/service/timecalc"
)

const (
	minSnoozeDuration = time.Minute

	outcomeDuplicate = "duplicate"
)

// AlarmSource is the part of the lifecycle service the coordinator depends on.
type AlarmSource interface {
	Get(ctx context.Context, id string) (domain.Alarm, error)
	Disable(ctx context.Context, id string) (domain.Alarm, error)
}

type Config struct {
	CallbackBaseURL string
	// DefaultSnooze applies when no snooze limiter is configured.
	DefaultSnooze time.Duration
	ProcessedTTL  time.Duration
}

type Coordinator struct {
	alarms       AlarmSource
	ringState    domain.RingStateRepository
	scheduler    scheduler.Scheduler
	calculator   *timecalc.Calculator
	recorder     domain.RingEventRecorder
	alarmMetrics *metrics.AlarmMetrics
	cfg          Config
	now          func() time.Time
	inflight     *inflight
}

type Option func(*Coordinator)

func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		c.now = now
	}
}

func NewCoordinator(
	alarms AlarmSource,
	ringState domain.RingStateRepository,
	sched scheduler.Scheduler,
	calculator *timecalc.Calculator,
	recorder domain.RingEventRecorder,
	alarmMetrics *metrics.AlarmMetrics,
	cfg Config,
	opts ...Option,
) *Coordinator {
	c := &Coordinator{
		alarms:       alarms,
		ringState:    ringState,
		scheduler:    sched,
		calculator:   calculator,
		recorder:     recorder,
		alarmMetrics: alarmMetrics,
		cfg:          cfg,
		now:          time.Now,
		inflight:     newInflight(cfg.ProcessedTTL),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Handle processes one ring event at most once per (alarm, kind, ring instance). A repeated
// delivery returns an Outcome with Duplicate set and changes nothing. When processing fails
// the key is released so the same event can be retried.
func (c *Coordinator) Handle(ctx context.Context, ev Event) (Outcome, error) {
	now := c.now()

	if ev.RingAt.IsZero() {
		if ev.Kind == deeplink.KindDismiss || ev.Kind == deeplink.KindSnooze {
			return Outcome{}, ErrMissingRingInstance
		}
		ev.RingAt = now.Truncate(time.Millisecond)
	}

	ctx, span := tracing.StartRingEventSpan(ctx, string(ev.Kind), ev.AlarmID, ev.RingAt)
	defer span.End()

	key := ev.key()
	if !c.acquire(ctx, key, now) {
		slog.InfoContext(ctx, "duplicate ring event ignored",
			slog.String("event", "ring.duplicate"),
			slog.String("alarm_id", ev.AlarmID),
			slog.String("kind", string(ev.Kind)),
			slog.Time("ring_at", ev.RingAt),
		)
		span.SetAttributes(attribute.Bool("ring.duplicate", true))
		c.recordMetric(ctx, ev.Kind, outcomeDuplicate)

		return Outcome{AlarmID: ev.AlarmID, Kind: ev.Kind, RingAt: ev.RingAt, Duplicate: true}, nil
	}

	var (
		out Outcome
		err error
	)
	switch ev.Kind {
	case deeplink.KindFire:
		out, err = c.fire(ctx, ev)
	case deeplink.KindDismiss:
		out, err = c.dismiss(ctx, ev, now)
	case deeplink.KindSnooze:
		out, err = c.snooze(ctx, ev, now)
	case deeplink.KindDoubleCheckFire:
		out, err = c.doubleCheckFire(ctx, ev)
	case deeplink.KindDoubleCheckDismiss:
		out, err = c.doubleCheckDismiss(ctx, ev)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownEventKind, ev.Kind)
	}

	if err != nil {
		slog.ErrorContext(ctx, "failed to handle ring event",
			slog.String("event", "ring."+string(ev.Kind)+".fail"),
			slog.String("alarm_id", ev.AlarmID),
			slog.Time("ring_at", ev.RingAt),
			slog.String("error", err.Error()),
		)
		c.release(ctx, key)
		tracing.RecordResult(span, err)
		c.recordMetric(ctx, ev.Kind, metrics.Outcome(err))
		return Outcome{}, err
	}

	slog.InfoContext(ctx, "ring event handled",
		slog.String("event", "ring."+string(ev.Kind)),
		slog.String("alarm_id", ev.AlarmID),
		slog.Time("ring_at", ev.RingAt),
	)
	tracing.RecordResult(span, nil)
	c.recordMetric(ctx, ev.Kind, metrics.Outcome(nil))
	c.recordEvent(ctx, ev, now, out)

	return out, nil
}

// SnoozeAllowed reports whether a snooze of the alarm's current ring cycle is permitted.
// Snooze does not check this itself; callers refuse the request when it reports false.
func (c *Coordinator) SnoozeAllowed(ctx context.Context, alarmID string) (bool, error) {
	if _, err := c.alarms.Get(ctx, alarmID); err != nil {
		return false, err
	}

	rec, err := c.snoozeRecord(ctx, alarmID)
	if err != nil {
		return false, err
	}
	if !rec.Active() {
		return true, nil
	}

	return rec.State.CanSnooze(), nil
}

func (c *Coordinator) fire(ctx context.Context, ev Event) (Outcome, error) {
	a, err := c.alarms.Get(ctx, ev.AlarmID)
	if err != nil {
		return Outcome{}, err
	}

	out := newOutcome(ev, a)
	if !a.Enabled {
		out.Stale = true
		return out, nil
	}

	rec, err := c.snoozeRecord(ctx, a.ID)
	if err != nil {
		return Outcome{}, err
	}

	// A fire that is not the one the last snooze scheduled starts a new ring cycle.
	if rec != nil && (rec.Disabled || !rec.State.ExpectedFireAt.Equal(ev.RingAt)) {
		if err := c.ringState.ClearSnooze(ctx, a.ID); err != nil {
			return Outcome{}, fmt.Errorf("failed to reset snooze state: %w", err)
		}
		slog.DebugContext(ctx, "snooze state reset for new ring cycle",
			slog.String("event", "ring.fire.snooze_reset"),
			slog.String("alarm_id", a.ID),
		)
	}

	return out, nil
}

func (c *Coordinator) dismiss(ctx context.Context, ev Event, now time.Time) (Outcome, error) {
	a, err := c.alarms.Get(ctx, ev.AlarmID)
	if err != nil {
		return Outcome{}, err
	}

	out := newOutcome(ev, a)

	if err := c.ringState.ClearSnooze(ctx, a.ID); err != nil {
		return Outcome{}, fmt.Errorf("failed to clear snooze state: %w", err)
	}

	if check := a.BoosterSet.PostDismissCheck; check.Enabled {
		callback := deeplink.DoubleCheckURL(c.cfg.CallbackBaseURL, a.ID, ev.RingAt)
		delay, grace := check.Config.Delay(), check.Config.Grace()
		if err := c.scheduler.ScheduleDoubleCheck(ctx, a.ID, callback, delay, grace); err != nil {
			return Outcome{}, nativeFailure("schedule double-check", a.ID, err)
		}
		at := now.Add(delay + grace)
		out.DoubleCheckAt = &at
	}

	if launch := a.BoosterSet.PostDismissLaunch; launch.Enabled {
		out.LaunchPackage = launch.Config.PackageName
	} else {
		out.Background = true
	}

	if !a.Enabled {
		out.Disabled = true
		return out, nil
	}

	if a.Repeat && a.RepeatDays.AnyEnabled() {
		next := c.calculator.Next(a, now)
		if err := c.scheduler.ScheduleAlarm(ctx, a.ID, next); err != nil {
			return Outcome{}, nativeFailure("schedule next occurrence", a.ID, err)
		}
		out.NextTrigger = &next
		return out, nil
	}

	if _, err := c.alarms.Disable(ctx, a.ID); err != nil {
		return Outcome{}, fmt.Errorf("failed to disable alarm: %w", err)
	}
	out.Disabled = true

	return out, nil
}

func (c *Coordinator) snooze(ctx context.Context, ev Event, now time.Time) (Outcome, error) {
	a, err := c.alarms.Get(ctx, ev.AlarmID)
	if err != nil {
		return Outcome{}, err
	}

	rec, err := c.snoozeRecord(ctx, a.ID)
	if err != nil {
		return Outcome{}, err
	}

	var (
		state     domain.SnoozeState
		unlimited bool
	)
	switch limiter := a.BoosterSet.SnoozeLimiter; {
	case rec.Active():
		state = rec.State.Consume()
	case limiter.Enabled:
		state = domain.NewSnoozeState(limiter.Config)
	default:
		unlimited = true
	}

	duration := c.cfg.DefaultSnooze
	if !unlimited {
		duration = state.Duration()
	}
	duration = max(duration, minSnoozeDuration)

	at := now.Add(duration).Truncate(time.Millisecond)

	// Schedule before persisting so a retry after a failed write consumes from the old state.
	if err := c.scheduler.ScheduleAlarm(ctx, a.ID, at); err != nil {
		return Outcome{}, nativeFailure("schedule snooze", a.ID, err)
	}

	out := newOutcome(ev, a)
	out.SnoozeUntil = &at

	if unlimited {
		if err := c.ringState.DisableSnooze(ctx, a.ID); err != nil {
			return Outcome{}, fmt.Errorf("failed to mark snooze unlimited: %w", err)
		}
		out.SnoozeUnlimited = true
		return out, nil
	}

	state.ExpectedFireAt = at
	if err := c.ringState.SaveSnooze(ctx, a.ID, state); err != nil {
		return Outcome{}, fmt.Errorf("failed to save snooze state: %w", err)
	}
	out.SnoozeUses = &state.Uses
	out.SnoozeMinutes = &state.DurationMinutes

	return out, nil
}

func (c *Coordinator) doubleCheckFire(ctx context.Context, ev Event) (Outcome, error) {
	a, err := c.alarms.Get(ctx, ev.AlarmID)
	if err != nil {
		return Outcome{}, err
	}

	return newOutcome(ev, a), nil
}

// doubleCheckDismiss ends the double-check flow. It only removes the double-check schedule
// and works even when the alarm itself is gone.
func (c *Coordinator) doubleCheckDismiss(ctx context.Context, ev Event) (Outcome, error) {
	if err := c.scheduler.DeleteAlarm(ctx, domain.DoubleCheckID(ev.AlarmID)); err != nil {
		return Outcome{}, nativeFailure("delete double-check", ev.AlarmID, err)
	}

	return Outcome{AlarmID: ev.AlarmID, Kind: ev.Kind, RingAt: ev.RingAt}, nil
}

// snoozeRecord returns nil when nothing usable is stored. Corrupt state counts as absent.
func (c *Coordinator) snoozeRecord(ctx context.Context, alarmID string) (*domain.SnoozeRecord, error) {
	rec, err := c.ringState.GetSnooze(ctx, alarmID)
	switch {
	case errors.Is(err, domain.ErrSnoozeStateNotFound):
		return nil, nil
	case errors.Is(err, domain.ErrCorruptSnoozeState):
		slog.WarnContext(ctx, "ignoring corrupt snooze state",
			slog.String("event", "ring.snooze_state.corrupt"),
			slog.String("alarm_id", alarmID),
			slog.String("error", err.Error()),
		)
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read snooze state: %w", err)
	}

	return rec, nil
}

func (c *Coordinator) acquire(ctx context.Context, key string, now time.Time) bool {
	if !c.inflight.acquire(key, now) {
		return false
	}

	marked, err := c.ringState.MarkEventProcessed(ctx, key, c.cfg.ProcessedTTL)
	if err != nil {
		// Keep going on the local guard alone.
		slog.WarnContext(ctx, "failed to mark ring event processed",
			slog.String("event", "ring.mark.fail"),
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return true
	}

	return marked
}

func (c *Coordinator) release(ctx context.Context, key string) {
	c.inflight.release(key)

	if err := c.ringState.ReleaseEvent(ctx, key); err != nil {
		slog.WarnContext(ctx, "failed to release ring event marker",
			slog.String("event", "ring.release.fail"),
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}

func (c *Coordinator) recordEvent(ctx context.Context, ev Event, now time.Time, out Outcome) {
	if c.recorder == nil {
		return
	}

	record := domain.RingEventRecord{
		AlarmID:   ev.AlarmID,
		Kind:      ev.recordKind(),
		RingAt:    ev.RingAt,
		HandledAt: now,
		Repeat:    out.repeat,
	}
	if out.SnoozeUses != nil {
		record.SnoozeUses = *out.SnoozeUses
	}
	if out.SnoozeMinutes != nil {
		record.SnoozeMinutes = *out.SnoozeMinutes
	}
	switch {
	case out.NextTrigger != nil:
		record.NextTrigger = *out.NextTrigger
	case out.SnoozeUntil != nil:
		record.NextTrigger = *out.SnoozeUntil
	}

	if err := c.recorder.RecordRingEvents(ctx, []domain.RingEventRecord{record}); err != nil {
		slog.WarnContext(ctx, "failed to record ring event",
			slog.String("event", "ring.record.fail"),
			slog.String("alarm_id", ev.AlarmID),
			slog.String("error", err.Error()),
		)
	}
}

func (c *Coordinator) recordMetric(ctx context.Context, kind deeplink.Kind, outcome string) {
	if c.alarmMetrics != nil {
		c.alarmMetrics.RecordRingEvent(ctx, string(kind), outcome)
	}
}

func newOutcome(ev Event, a domain.Alarm) Outcome {
	return Outcome{
		AlarmID: a.ID,
		Kind:    ev.Kind,
		RingAt:  ev.RingAt,
		repeat:  a.Repeat,
	}
}

func nativeFailure(operation, id string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", domain.ErrNativeCall, operation, id, err)
}
