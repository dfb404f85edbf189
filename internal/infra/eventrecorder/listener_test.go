package eventrecorder

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

func TestListener(t *testing.T) {
	fireAt := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name        string
		event       domain.NotificationEvent
		recordErr   error
		wantLatency time.Duration
	}{
		{
			name: "received with latency",
			event: domain.NotificationEvent{
				Kind:           domain.NotificationReceived,
				NotificationID: "reminder-1",
				UserID:         "user-1",
				EventID:        "evt-1",
				Type:           domain.NotificationTypeEventReminder,
				OccurredAt:     fireAt.Add(2 * time.Second),
				FireAt:         fireAt,
			},
			wantLatency: 2 * time.Second,
		},
		{
			name: "response without fire time",
			event: domain.NotificationEvent{
				Kind:           domain.NotificationResponse,
				NotificationID: "reminder-1",
				Action:         "open",
				OccurredAt:     fireAt,
			},
		},
		{
			name: "recorder failure is swallowed",
			event: domain.NotificationEvent{
				Kind:           domain.NotificationReceived,
				NotificationID: "reminder-2",
				OccurredAt:     fireAt,
			},
			recordErr: errors.New("write failed"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			recorder := domain.NewMockNotificationEventRecorder(ctrl)

			recorder.EXPECT().
				RecordEvents(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, records []domain.NotificationEventRecord) error {
					if len(records) != 1 {
						t.Fatalf("expected 1 record, got %d", len(records))
					}
					got := records[0]
					if got.NotificationID != tt.event.NotificationID {
						t.Errorf("NotificationID: got %q, want %q", got.NotificationID, tt.event.NotificationID)
					}
					if got.Kind != tt.event.Kind.String() {
						t.Errorf("Kind: got %q, want %q", got.Kind, tt.event.Kind.String())
					}
					if got.Action != tt.event.Action {
						t.Errorf("Action: got %q, want %q", got.Action, tt.event.Action)
					}
					if got.Latency != tt.wantLatency {
						t.Errorf("Latency: got %v, want %v", got.Latency, tt.wantLatency)
					}
					return tt.recordErr
				})

			Listener(recorder)(context.Background(), tt.event)
		})
	}
}

func TestNoopRecorder(t *testing.T) {
	r := NewNoopRecorder()
	ctx := context.Background()

	if err := r.RecordEvents(ctx, []domain.NotificationEventRecord{{NotificationID: "reminder-1"}}); err != nil {
		t.Errorf("RecordEvents: unexpected error: %v", err)
	}
	if err := r.Flush(ctx); err != nil {
		t.Errorf("Flush: unexpected error: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close: unexpected error: %v", err)
	}
}
