package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	reminderMeterName = "reminder.service"
)

// Schedule outcomes.
const (
	OutcomeScheduled = "scheduled"
	OutcomeNoSession = "no_session"
	OutcomePastFire  = "past_fire_time"
	OutcomeFailed    = "failed"
	OutcomeCancelled = "cancelled"
	OutcomeNoop      = "noop"
	OutcomeForbidden = "forbidden"
)

type ReminderMetrics struct {
	schedules          metric.Int64Counter
	cancels            metric.Int64Counter
	preferenceLookups  metric.Int64Counter
	leadMinutes        metric.Int64Histogram
	notificationEvents metric.Int64Counter
	deliveryLatency    metric.Float64Histogram
}

func NewReminderMetrics() (*ReminderMetrics, error) {
	meter := otel.Meter(reminderMeterName)

	schedules, err := meter.Int64Counter(
		"reminder_schedule_total",
		metric.WithDescription("Reminder schedule attempts by outcome"),
		metric.WithUnit("{reminder}"),
	)
	if err != nil {
		return nil, err
	}

	cancels, err := meter.Int64Counter(
		"reminder_cancel_total",
		metric.WithDescription("Reminder cancellations by outcome"),
		metric.WithUnit("{reminder}"),
	)
	if err != nil {
		return nil, err
	}

	preferenceLookups, err := meter.Int64Counter(
		"reminder_preference_lookup_total",
		metric.WithDescription("Preference lookups by result"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	leadMinutes, err := meter.Int64Histogram(
		"reminder_lead_minutes",
		metric.WithDescription("Effective lead time of scheduled reminders"),
		metric.WithUnit("min"),
		metric.WithExplicitBucketBoundaries(0, 5, 10, 15, 30, 60, 120, 1440),
	)
	if err != nil {
		return nil, err
	}

	notificationEvents, err := meter.Int64Counter(
		"notification_events_total",
		metric.WithDescription("Notification lifecycle events by kind"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, err
	}

	deliveryLatency, err := meter.Float64Histogram(
		"notification_delivery_latency_seconds",
		metric.WithDescription("Delay between scheduled fire time and callback"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 5, 10, 30, 60, 300),
	)
	if err != nil {
		return nil, err
	}

	return &ReminderMetrics{
		schedules:          schedules,
		cancels:            cancels,
		preferenceLookups:  preferenceLookups,
		leadMinutes:        leadMinutes,
		notificationEvents: notificationEvents,
		deliveryLatency:    deliveryLatency,
	}, nil
}

func (m *ReminderMetrics) RecordSchedule(ctx context.Context, outcome string) {
	m.schedules.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func (m *ReminderMetrics) RecordCancel(ctx context.Context, outcome string) {
	m.cancels.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func (m *ReminderMetrics) RecordPreferenceLookup(ctx context.Context, result string) {
	m.preferenceLookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String("result", result),
	))
}

func (m *ReminderMetrics) RecordLeadMinutes(ctx context.Context, minutes int) {
	m.leadMinutes.Record(ctx, int64(minutes))
}

func (m *ReminderMetrics) RecordNotificationEvent(ctx context.Context, kind, notificationType string) {
	m.notificationEvents.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("type", notificationType),
	))
}

func (m *ReminderMetrics) RecordDeliveryLatency(ctx context.Context, seconds float64) {
	m.deliveryLatency.Record(ctx, seconds)
}
