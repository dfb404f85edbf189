package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const reminderTracerName = "github.com/KasumiMercury/primind-event-reminder/internal/service/reminder"

func ReminderTracer() trace.Tracer {
	return otel.Tracer(reminderTracerName)
}

func StartScheduleSpan(ctx context.Context, eventID string, startTime time.Time) (context.Context, trace.Span) {
	return ReminderTracer().Start(ctx, "reminder.schedule",
		trace.WithAttributes(
			attribute.String("event_id", eventID),
			attribute.String("event.start_time", startTime.UTC().Format(time.RFC3339)),
		),
	)
}

func StartCancelSpan(ctx context.Context, notificationID string) (context.Context, trace.Span) {
	return ReminderTracer().Start(ctx, "reminder.cancel",
		trace.WithAttributes(
			attribute.String("notification_id", notificationID),
		),
	)
}

func StartDeliverySpan(ctx context.Context, kind, notificationID string) (context.Context, trace.Span) {
	return ReminderTracer().Start(ctx, "notification."+kind,
		trace.WithAttributes(
			attribute.String("notification_id", notificationID),
		),
		trace.WithSpanKind(trace.SpanKindConsumer),
	)
}

// RecordScheduleResult marks the outcome on the span. Skips are not span
// errors; only err is.
func RecordScheduleResult(span trace.Span, outcome string, leadMinutes int, fireTime time.Time, err error) {
	span.SetAttributes(
		attribute.String("reminder.outcome", outcome),
		attribute.Int("reminder.lead_minutes", leadMinutes),
	)
	if !fireTime.IsZero() {
		span.SetAttributes(attribute.String("reminder.fire_time", fireTime.UTC().Format(time.RFC3339)))
	}
	RecordError(span, err)
}

func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
