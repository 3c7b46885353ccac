package boot

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/KasumiMercury/primind-alarm-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/infra/scheduler"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/observability/metrics"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/observability/tracing"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/service/timecalc"
)

type Reconciler struct {
	opener       domain.AlarmStoreOpener
	scheduler    scheduler.Scheduler
	calculator   *timecalc.Calculator
	alarmMetrics *metrics.AlarmMetrics
	now          func() time.Time
}

type Option func(*Reconciler)

func WithClock(now func() time.Time) Option {
	return func(r *Reconciler) {
		r.now = now
	}
}

func NewReconciler(
	opener domain.AlarmStoreOpener,
	sched scheduler.Scheduler,
	calculator *timecalc.Calculator,
	alarmMetrics *metrics.AlarmMetrics,
	opts ...Option,
) *Reconciler {
	r := &Reconciler{
		opener:       opener,
		scheduler:    sched,
		calculator:   calculator,
		alarmMetrics: alarmMetrics,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Reconcile re-establishes the native schedule of every enabled alarm. All schedule calls
// run concurrently and every alarm is attempted; the result is true only when all succeed.
func (r *Reconciler) Reconcile(ctx context.Context) bool {
	start := time.Now()

	ctx, span := tracing.StartBootReconcileSpan(ctx)
	defer span.End()

	store, err := r.opener.Open(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to open alarm store for boot reconciliation",
			slog.String("event", "boot.reconcile.open.fail"),
			slog.String("error", err.Error()),
		)
		tracing.RecordResult(span, err)
		return false
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.WarnContext(ctx, "failed to close alarm store",
				slog.String("event", "boot.reconcile.close.fail"),
				slog.String("error", err.Error()),
			)
		}
	}()

	alarms, err := store.ListEnabledAlarms(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to read enabled alarms",
			slog.String("event", "boot.reconcile.read.fail"),
			slog.String("error", err.Error()),
		)
		tracing.RecordResult(span, err)
		return false
	}

	now := r.now()
	var failed atomic.Int32

	// Plain Group: no shared cancellation, so one failure never aborts the others.
	var g errgroup.Group
	for _, a := range alarms {
		next := r.calculator.Next(a, now)
		g.Go(func() error {
			if err := r.scheduler.ScheduleAlarm(ctx, a.ID, next); err != nil {
				failed.Add(1)
				slog.ErrorContext(ctx, "failed to reschedule alarm on boot",
					slog.String("event", "boot.reconcile.schedule.fail"),
					slog.String("alarm_id", a.ID),
					slog.Time("next_trigger", next),
					slog.String("error", err.Error()),
				)
				return err
			}
			return nil
		})
	}
	_ = g.Wait()

	total := len(alarms)
	failures := int(failed.Load())

	tracing.RecordBootReconcileResult(span, total, failures)
	if r.alarmMetrics != nil {
		r.alarmMetrics.RecordBootReconcile(ctx, time.Since(start), total-failures, failures)
	}

	slog.InfoContext(ctx, "boot reconciliation finished",
		slog.String("event", "boot.reconcile"),
		slog.Int("alarm_count", total),
		slog.Int("failed_count", failures),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return failures == 0
}
