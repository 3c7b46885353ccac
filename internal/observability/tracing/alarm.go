package tracing

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const alarmTracerName = "github.com/KasumiMercury/primind-alarm-scheduler/internal/service"

func AlarmTracer() trace.Tracer {
	return otel.Tracer(alarmTracerName)
}

func StartLifecycleSpan(ctx context.Context, operation, alarmID string) (context.Context, trace.Span) {
	return AlarmTracer().Start(ctx, "alarm.lifecycle."+operation,
		trace.WithAttributes(
			attribute.String("alarm.id", alarmID),
		),
	)
}

func StartSyncSpan(ctx context.Context, baseline time.Time) (context.Context, trace.Span) {
	return AlarmTracer().Start(ctx, "alarm.lifecycle.sync",
		trace.WithAttributes(
			attribute.String("sync.baseline", baseline.Format(time.RFC3339Nano)),
		),
	)
}

func StartBootReconcileSpan(ctx context.Context) (context.Context, trace.Span) {
	return AlarmTracer().Start(ctx, "alarm.boot.reconcile")
}

func StartRingEventSpan(ctx context.Context, kind, alarmID string, ringAt time.Time) (context.Context, trace.Span) {
	return AlarmTracer().Start(ctx, "alarm.ring."+kind,
		trace.WithAttributes(
			attribute.String("alarm.id", alarmID),
			attribute.String("ring.at", ringAt.Format(time.RFC3339)),
		),
	)
}

func StartSchedulerSpan(ctx context.Context, operation, id string) (context.Context, trace.Span) {
	return AlarmTracer().Start(ctx, "alarm.scheduler."+operation,
		trace.WithAttributes(
			attribute.String("scheduler.id", id),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordResult(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}

func RecordSyncResult(span trace.Span, written int, err error) {
	span.SetAttributes(attribute.Int("sync.written_count", written))
	RecordResult(span, err)
}

func RecordBootReconcileResult(span trace.Span, total, failed int) {
	span.SetAttributes(
		attribute.Int("boot.alarm_count", total),
		attribute.Int("boot.failed_count", failed),
	)
	if failed > 0 {
		span.SetStatus(codes.Error, "one or more alarms failed to schedule")
		return
	}
	span.SetStatus(codes.Ok, "")
}

func RecordScheduledTrigger(span trace.Span, trigger time.Time) {
	span.SetAttributes(attribute.String("alarm.next_trigger", trigger.Format(time.RFC3339)))
}

// InjectToHTTPRequest propagates the span context of ctx onto an outgoing request.
func InjectToHTTPRequest(ctx context.Context, req *http.Request) {
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
}

// ExtractFromHTTPRequest returns ctx carrying the remote span context of an incoming request.
func ExtractFromHTTPRequest(ctx context.Context, req *http.Request) context.Context {
	return otel.GetTextMapPropagator().Extract(ctx, propagation.HeaderCarrier(req.Header))
}
