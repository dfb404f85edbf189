package delivery

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
	"github.com/KasumiMercury/primind-event-reminder/internal/notification"
)

func createTestService(t *testing.T, now time.Time) (*Service, *domain.MockReminderRegistry, *[]domain.NotificationEvent) {
	t.Helper()

	ctrl := gomock.NewController(t)
	registry := domain.NewMockReminderRegistry(ctrl)

	center := notification.NewCenter(notification.HandlerConfig{})
	var received []domain.NotificationEvent
	listener := func(_ context.Context, event domain.NotificationEvent) {
		received = append(received, event)
	}
	for _, kind := range []domain.NotificationEventKind{domain.NotificationReceived, domain.NotificationResponse} {
		sub, err := center.Subscribe(kind, listener)
		if err != nil {
			t.Fatalf("failed to subscribe: %v", err)
		}
		t.Cleanup(sub.Unsubscribe)
	}

	svc := NewService(registry, center, nil)
	svc.now = func() time.Time { return now }

	return svc, registry, &received
}

func TestHandleFired(t *testing.T) {
	fireAt := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	now := fireAt.Add(3 * time.Second)

	tests := []struct {
		name        string
		input       FiredNotification
		record      *domain.ReminderRecord
		lookupErr   error
		wantUserID  string
		wantEventID string
		wantLatency time.Duration
	}{
		{
			name: "payload carries everything",
			input: FiredNotification{
				NotificationID: "reminder-1",
				UserID:         "user-1",
				FireAt:         fireAt,
				Data:           map[string]string{"type": "event_reminder", "eventId": "evt-1"},
			},
			record:      &domain.ReminderRecord{NotificationID: "reminder-1", UserID: "user-1", EventID: "evt-1", FireAt: fireAt},
			wantUserID:  "user-1",
			wantEventID: "evt-1",
			wantLatency: 3 * time.Second,
		},
		{
			name:        "registry fills missing fields",
			input:       FiredNotification{NotificationID: "reminder-1"},
			record:      &domain.ReminderRecord{NotificationID: "reminder-1", UserID: "user-2", EventID: "evt-2", FireAt: fireAt},
			wantUserID:  "user-2",
			wantEventID: "evt-2",
			wantLatency: 3 * time.Second,
		},
		{
			name:       "unknown record still publishes",
			input:      FiredNotification{NotificationID: "reminder-1", UserID: "user-1"},
			lookupErr:  domain.ErrReminderNotFound,
			wantUserID: "user-1",
		},
		{
			name:       "registry failure still publishes",
			input:      FiredNotification{NotificationID: "reminder-1", UserID: "user-1"},
			lookupErr:  errors.New("redis down"),
			wantUserID: "user-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, registry, received := createTestService(t, now)

			registry.EXPECT().Get(gomock.Any(), "reminder-1").Return(tt.record, tt.lookupErr)
			registry.EXPECT().Remove(gomock.Any(), tt.wantUserID, "reminder-1").Return(nil)

			if err := svc.HandleFired(context.Background(), tt.input); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(*received) != 1 {
				t.Fatalf("expected 1 event, got %d", len(*received))
			}
			event := (*received)[0]
			if event.Kind != domain.NotificationReceived {
				t.Errorf("Kind: got %q", event.Kind)
			}
			if event.UserID != tt.wantUserID {
				t.Errorf("UserID: got %q, want %q", event.UserID, tt.wantUserID)
			}
			if event.EventID != tt.wantEventID {
				t.Errorf("EventID: got %q, want %q", event.EventID, tt.wantEventID)
			}
			if event.Latency() != tt.wantLatency {
				t.Errorf("Latency: got %v, want %v", event.Latency(), tt.wantLatency)
			}
		})
	}
}

func TestHandleFiredInvalid(t *testing.T) {
	svc, registry, received := createTestService(t, time.Now())
	registry.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)

	err := svc.HandleFired(context.Background(), FiredNotification{NotificationID: "  "})
	if !errors.Is(err, ErrInvalidNotification) {
		t.Errorf("expected ErrInvalidNotification, got %v", err)
	}
	if len(*received) != 0 {
		t.Errorf("expected no events, got %d", len(*received))
	}
}

func TestHandleResponse(t *testing.T) {
	tests := []struct {
		name       string
		input      NotificationResponse
		wantAction string
		wantErr    error
	}{
		{
			name: "explicit action",
			input: NotificationResponse{
				NotificationID: "reminder-1",
				UserID:         "user-1",
				Action:         "dismiss",
				Data:           map[string]string{"type": "event_reminder", "eventId": "evt-1"},
			},
			wantAction: "dismiss",
		},
		{
			name:       "default action is open",
			input:      NotificationResponse{NotificationID: "reminder-1", UserID: "user-1"},
			wantAction: "open",
		},
		{
			name:    "missing id",
			input:   NotificationResponse{UserID: "user-1"},
			wantErr: ErrInvalidNotification,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, received := createTestService(t, time.Now())

			err := svc.HandleResponse(context.Background(), tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(*received) != 1 {
				t.Fatalf("expected 1 event, got %d", len(*received))
			}
			event := (*received)[0]
			if event.Kind != domain.NotificationResponse {
				t.Errorf("Kind: got %q", event.Kind)
			}
			if event.Action != tt.wantAction {
				t.Errorf("Action: got %q, want %q", event.Action, tt.wantAction)
			}
			if event.EventID != tt.input.Data["eventId"] {
				t.Errorf("EventID: got %q, want %q", event.EventID, tt.input.Data["eventId"])
			}
		})
	}
}
