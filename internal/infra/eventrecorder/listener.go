package eventrecorder

import (
	"context"
	"log/slog"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

// Listener adapts a recorder to a notification center listener.
func Listener(recorder domain.NotificationEventRecorder) func(context.Context, domain.NotificationEvent) {
	return func(ctx context.Context, event domain.NotificationEvent) {
		record := domain.NotificationEventRecord{
			NotificationID: event.NotificationID,
			UserID:         event.UserID,
			EventID:        event.EventID,
			Kind:           event.Kind.String(),
			Type:           event.Type,
			Action:         event.Action,
			OccurredAt:     event.OccurredAt,
			Latency:        event.Latency(),
		}

		if err := recorder.RecordEvents(ctx, []domain.NotificationEventRecord{record}); err != nil {
			slog.WarnContext(ctx, "failed to record notification event",
				slog.String("notification_id", event.NotificationID),
				slog.String("kind", event.Kind.String()),
				slog.String("error", err.Error()),
			)
		}
	}
}
