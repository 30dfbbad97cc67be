package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const dispatchTracerName = "github.com/KasumiMercury/primind-reminder-dispatcher/internal/service/run"

func DispatchTracer() trace.Tracer {
	return otel.Tracer(dispatchTracerName)
}

func StartRunSpan(ctx context.Context, runID string, now time.Time) (context.Context, trace.Span) {
	return DispatchTracer().Start(ctx, "reminder.run",
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("run.now", now.UTC().Format(time.RFC3339)),
		),
	)
}

func StartUserSpan(ctx context.Context, userID string) (context.Context, trace.Span) {
	return DispatchTracer().Start(ctx, "reminder.user",
		trace.WithAttributes(
			attribute.String("user.id", userID),
		),
	)
}

func StartMulticastSpan(ctx context.Context, tokenCount int) (context.Context, trace.Span) {
	return DispatchTracer().Start(ctx, "reminder.push.multicast",
		trace.WithAttributes(
			attribute.Int("push.token_count", tokenCount),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func StartFirestoreOperationSpan(ctx context.Context, operation, path string) (context.Context, trace.Span) {
	return DispatchTracer().Start(ctx, "reminder.firestore."+operation,
		trace.WithAttributes(
			attribute.String("db.system", "firestore"),
			attribute.String("db.operation", operation),
			attribute.String("db.path", path),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordUserResult(span trace.Span, outcome, slotKey string, dueCount int, err error) {
	span.SetAttributes(
		attribute.String("user.outcome", outcome),
		attribute.String("user.slot_key", slotKey),
		attribute.Int("user.due_count", dueCount),
	)
	recordStatus(span, err)
}

func RecordMulticastResult(span trace.Span, successCount, failureCount int, err error) {
	span.SetAttributes(
		attribute.Int("push.success_count", successCount),
		attribute.Int("push.failure_count", failureCount),
	)
	recordStatus(span, err)
}

func RecordRunResult(span trace.Span, usersScanned, usersDispatched, remindersSent, failures int, err error) {
	span.SetAttributes(
		attribute.Int("run.users_scanned", usersScanned),
		attribute.Int("run.users_dispatched", usersDispatched),
		attribute.Int("run.reminders_sent", remindersSent),
		attribute.Int("run.failures", failures),
	)
	recordStatus(span, err)
}

func RecordError(span trace.Span, err error) {
	recordStatus(span, err)
}

func recordStatus(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
