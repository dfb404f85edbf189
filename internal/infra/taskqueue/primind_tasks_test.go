//go:build !gcloud

package taskqueue

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
	"github.com/KasumiMercury/primind-event-reminder/internal/testutil/taskstub"
)

const testTaskID = "reminder-6f1c2b9e-4d0a-4c4e-9d8e-2a7b1c3d5e6f"

func newTestTask(fireAt time.Time) *NotificationTask {
	return NewNotificationTask(testTaskID, "user-1", domain.NotificationContent{
		Title:  "Meditation Reminder",
		Body:   "Morning sit starts in 15 minutes",
		Data:   map[string]string{"type": "event_reminder", "eventId": "evt-1"},
		FireAt: fireAt,
		Presentation: domain.NotificationPresentation{
			ShowAlert: true,
			PlaySound: true,
		},
	})
}

func TestPrimindTasksClientRegisterNotification(t *testing.T) {
	tests := []struct {
		name      string
		queueName string
		failures  int
		wantQueue string
	}{
		{
			name:      "default queue",
			queueName: "default",
			wantQueue: "default",
		},
		{
			name:      "named queue",
			queueName: "reminders",
			wantQueue: "reminders",
		},
		{
			name:      "succeeds after transient failures",
			queueName: "default",
			failures:  2,
			wantQueue: "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, storage := taskstub.NewServer(t)
			storage.FailNext(tt.failures)

			client := NewPrimindTasksClient(srv.URL, tt.queueName, "http://reminder/api/v1/notifications/fire", 3)
			fireAt := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

			resp, err := client.RegisterNotification(context.Background(), newTestTask(fireAt))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.Name != testTaskID {
				t.Errorf("Name: got %q, want %q", resp.Name, testTaskID)
			}
			if !resp.ScheduleTime.Equal(fireAt) {
				t.Errorf("ScheduleTime: got %v, want %v", resp.ScheduleTime, fireAt)
			}

			stored, ok := storage.Get(testTaskID)
			if !ok {
				t.Fatal("task was not stored")
			}
			if stored.Queue != tt.wantQueue {
				t.Errorf("Queue: got %q, want %q", stored.Queue, tt.wantQueue)
			}
			if stored.URL != "http://reminder/api/v1/notifications/fire" {
				t.Errorf("URL: got %q", stored.URL)
			}

			var body NotificationTask
			if err := json.Unmarshal(stored.Body, &body); err != nil {
				t.Fatalf("failed to decode task body: %v", err)
			}
			if body.NotificationID != testTaskID || body.UserID != "user-1" {
				t.Errorf("unexpected body identity: %+v", body)
			}
			if body.Data["eventId"] != "evt-1" {
				t.Errorf("Data[eventId]: got %q, want %q", body.Data["eventId"], "evt-1")
			}
			if body.Presentation == nil || !body.Presentation.ShowAlert {
				t.Errorf("expected presentation to be carried, got %+v", body.Presentation)
			}
		})
	}
}

func TestPrimindTasksClientRegisterNotificationRetriesExhausted(t *testing.T) {
	srv, storage := taskstub.NewServer(t)
	storage.FailNext(5)

	client := NewPrimindTasksClient(srv.URL, "default", "", 2)

	resp, err := client.RegisterNotification(context.Background(), newTestTask(time.Now().Add(time.Hour)))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if resp != nil {
		t.Errorf("expected nil response, got %+v", resp)
	}
	if len(storage.List()) != 0 {
		t.Errorf("expected no stored tasks, got %d", len(storage.List()))
	}
}

func TestPrimindTasksClientDeleteTask(t *testing.T) {
	srv, storage := taskstub.NewServer(t)
	client := NewPrimindTasksClient(srv.URL, "default", "", 3)
	ctx := context.Background()

	if _, err := client.RegisterNotification(ctx, newTestTask(time.Now().Add(time.Hour))); err != nil {
		t.Fatalf("failed to register task: %v", err)
	}

	if err := client.DeleteTask(ctx, testTaskID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := storage.Get(testTaskID); ok {
		t.Error("expected task to be deleted")
	}

	// Deleting again hits 404, which counts as success.
	if err := client.DeleteTask(ctx, testTaskID); err != nil {
		t.Fatalf("second delete: unexpected error: %v", err)
	}
	if storage.DeleteCalls() != 2 {
		t.Errorf("DeleteCalls: got %d, want 2", storage.DeleteCalls())
	}
}

func TestPrimindTasksClientDeleteTaskContextCancelled(t *testing.T) {
	srv, storage := taskstub.NewServer(t)
	storage.FailNext(10)
	client := NewPrimindTasksClient(srv.URL, "default", "", 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := client.DeleteTask(ctx, testTaskID); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestPrimindTasksClientRegisterNotificationCarriesCallbackToken(t *testing.T) {
	srv, storage := taskstub.NewServer(t)
	client := NewPrimindTasksClient(srv.URL, "default", "http://reminder/api/v1/notifications/fire", 3).
		WithCallbackToken("s3cret")

	if _, err := client.RegisterNotification(context.Background(), newTestTask(time.Now().Add(time.Hour))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, ok := storage.Get(testTaskID)
	if !ok {
		t.Fatal("task was not stored")
	}
	if got := stored.Headers[CallbackTokenHeader]; got != "s3cret" {
		t.Errorf("%s: got %q, want %q", CallbackTokenHeader, got, "s3cret")
	}
}

func TestPrimindTasksClientRegisterNotificationAlreadyRegistered(t *testing.T) {
	srv, storage := taskstub.NewServer(t)
	client := NewPrimindTasksClient(srv.URL, "default", "", 3)
	ctx := context.Background()
	fireAt := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

	if _, err := client.RegisterNotification(ctx, newTestTask(fireAt)); err != nil {
		t.Fatalf("first registration: unexpected error: %v", err)
	}

	resp, err := client.RegisterNotification(ctx, newTestTask(fireAt))
	if err != nil {
		t.Fatalf("second registration: unexpected error: %v", err)
	}
	if resp.Name != testTaskID || !resp.ScheduleTime.Equal(fireAt) {
		t.Errorf("unexpected response: %+v", resp)
	}
	if storage.CreateCalls() != 2 {
		t.Errorf("CreateCalls: got %d, want 2", storage.CreateCalls())
	}
	if len(storage.List()) != 1 {
		t.Errorf("expected 1 stored task, got %d", len(storage.List()))
	}
}

func TestPrimindTasksClientClientErrorsAreNotRetried(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantCalls int
	}{
		{name: "bad request", status: http.StatusBadRequest, wantCalls: 1},
		{name: "forbidden", status: http.StatusForbidden, wantCalls: 1},
		{name: "too many requests", status: http.StatusTooManyRequests, wantCalls: 3},
		{name: "server error", status: http.StatusInternalServerError, wantCalls: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, storage := taskstub.NewServer(t)
			storage.FailNextWithStatus(10, tt.status)
			client := NewPrimindTasksClient(srv.URL, "default", "", 3)

			if _, err := client.RegisterNotification(context.Background(), newTestTask(time.Now().Add(time.Hour))); err == nil {
				t.Fatal("expected error, got nil")
			}
			if storage.CreateCalls() != tt.wantCalls {
				t.Errorf("CreateCalls: got %d, want %d", storage.CreateCalls(), tt.wantCalls)
			}
		})
	}
}

func TestPrimindTasksClientRejectsInvalidTaskID(t *testing.T) {
	srv, storage := taskstub.NewServer(t)
	client := NewPrimindTasksClient(srv.URL, "default", "", 3)
	ctx := context.Background()

	task := newTestTask(time.Now().Add(time.Hour))
	task.NotificationID = "reminder-1/../../other"

	if _, err := client.RegisterNotification(ctx, task); !errors.Is(err, ErrInvalidTaskID) {
		t.Errorf("RegisterNotification: got %v, want ErrInvalidTaskID", err)
	}
	if err := client.DeleteTask(ctx, "other-queue-task"); !errors.Is(err, ErrInvalidTaskID) {
		t.Errorf("DeleteTask: got %v, want ErrInvalidTaskID", err)
	}
	if storage.CreateCalls() != 0 || storage.DeleteCalls() != 0 {
		t.Errorf("expected no requests, got %d creates and %d deletes", storage.CreateCalls(), storage.DeleteCalls())
	}
}
