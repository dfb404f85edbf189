package delivery

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
	"github.com/KasumiMercury/primind-event-reminder/internal/observability/metrics"
	"github.com/KasumiMercury/primind-event-reminder/internal/observability/tracing"
)

const defaultResponseAction = "open"

type Service struct {
	registry  domain.ReminderRegistry
	publisher Publisher
	metrics   *metrics.ReminderMetrics
	now       func() time.Time
}

func NewService(registry domain.ReminderRegistry, publisher Publisher, reminderMetrics *metrics.ReminderMetrics) *Service {
	return &Service{
		registry:  registry,
		publisher: publisher,
		metrics:   reminderMetrics,
		now:       time.Now,
	}
}

// HandleFired retires the reminder from the registry and publishes a
// received event.
func (s *Service) HandleFired(ctx context.Context, n FiredNotification) error {
	if strings.TrimSpace(n.NotificationID) == "" {
		return ErrInvalidNotification
	}

	ctx, span := tracing.StartDeliverySpan(ctx, domain.NotificationReceived.String(), n.NotificationID)
	defer span.End()

	userID := n.UserID
	eventID := n.Data[domain.PayloadKeyEventID]
	fireAt := n.FireAt

	if s.registry != nil {
		record, err := s.registry.Get(ctx, n.NotificationID)
		switch {
		case err == nil:
			if userID == "" {
				userID = record.UserID
			}
			if eventID == "" {
				eventID = record.EventID
			}
			if fireAt.IsZero() {
				fireAt = record.FireAt
			}
		case errors.Is(err, domain.ErrReminderNotFound):
			slog.DebugContext(ctx, "fired notification has no registry record",
				slog.String("notification_id", n.NotificationID),
			)
		default:
			slog.WarnContext(ctx, "failed to look up fired notification",
				slog.String("notification_id", n.NotificationID),
				slog.String("error", err.Error()),
			)
		}

		if err := s.registry.Remove(ctx, userID, n.NotificationID); err != nil {
			slog.WarnContext(ctx, "failed to retire fired notification",
				slog.String("notification_id", n.NotificationID),
				slog.String("error", err.Error()),
			)
		}
	}

	event := domain.NotificationEvent{
		Kind:           domain.NotificationReceived,
		NotificationID: n.NotificationID,
		UserID:         userID,
		EventID:        eventID,
		Type:           n.Data[domain.PayloadKeyType],
		Data:           n.Data,
		OccurredAt:     s.now(),
		FireAt:         fireAt,
	}

	if s.metrics != nil && !fireAt.IsZero() {
		s.metrics.RecordDeliveryLatency(ctx, event.Latency().Seconds())
	}

	s.publish(ctx, event)
	tracing.RecordError(span, nil)

	return nil
}

// HandleResponse publishes a response event for a user action on a
// delivered notification.
func (s *Service) HandleResponse(ctx context.Context, r NotificationResponse) error {
	if strings.TrimSpace(r.NotificationID) == "" {
		return ErrInvalidNotification
	}

	ctx, span := tracing.StartDeliverySpan(ctx, domain.NotificationResponse.String(), r.NotificationID)
	defer span.End()

	action := strings.TrimSpace(r.Action)
	if action == "" {
		action = defaultResponseAction
	}

	event := domain.NotificationEvent{
		Kind:           domain.NotificationResponse,
		NotificationID: r.NotificationID,
		UserID:         r.UserID,
		EventID:        r.Data[domain.PayloadKeyEventID],
		Type:           r.Data[domain.PayloadKeyType],
		Action:         action,
		Data:           r.Data,
		OccurredAt:     s.now(),
	}

	s.publish(ctx, event)
	tracing.RecordError(span, nil)

	return nil
}

func (s *Service) publish(ctx context.Context, event domain.NotificationEvent) {
	if s.metrics != nil {
		s.metrics.RecordNotificationEvent(ctx, event.Kind.String(), event.Type)
	}

	if s.publisher == nil {
		return
	}

	delivered := s.publisher.Publish(ctx, event)

	slog.InfoContext(ctx, "notification event published",
		slog.String("kind", event.Kind.String()),
		slog.String("notification_id", event.NotificationID),
		slog.String("event_id", event.EventID),
		slog.Int("listener_count", delivered),
	)
}
