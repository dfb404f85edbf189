package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNormalizeEventID(t *testing.T) {
	tests := []struct {
		name    string
		eventID string
		want    string
	}{
		{name: "plain", eventID: "evt-1", want: "evt-1"},
		{name: "trimmed", eventID: "  evt-1\t", want: "evt-1"},
		{name: "empty", eventID: "", want: UnknownEventID},
		{name: "whitespace only", eventID: "   ", want: UnknownEventID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeEventID(tt.eventID); got != tt.want {
				t.Errorf("NormalizeEventID(%q): got %q, want %q", tt.eventID, got, tt.want)
			}
		})
	}
}

func TestReminderRequestFireTime(t *testing.T) {
	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	req := NewReminderRequest("evt-1", "Morning sit", start)

	tests := []struct {
		leadMinutes int
		want        time.Time
	}{
		{leadMinutes: 0, want: start},
		{leadMinutes: 15, want: start.Add(-15 * time.Minute)},
		{leadMinutes: 1440, want: start.Add(-24 * time.Hour)},
	}

	for _, tt := range tests {
		if got := req.FireTime(tt.leadMinutes); !got.Equal(tt.want) {
			t.Errorf("FireTime(%d): got %v, want %v", tt.leadMinutes, got, tt.want)
		}
	}
}

func TestReminderRequestPayload(t *testing.T) {
	req := NewReminderRequest(" ", "Morning sit", time.Now())
	req.Extra = map[string]string{
		"type":     "spoofed",
		"eventId":  "other",
		"location": "hall",
	}

	payload := req.Payload()

	if payload[PayloadKeyType] != NotificationTypeEventReminder {
		t.Errorf("type: got %q", payload[PayloadKeyType])
	}
	if payload[PayloadKeyEventID] != UnknownEventID {
		t.Errorf("eventId: got %q", payload[PayloadKeyEventID])
	}
	if payload["location"] != "hall" {
		t.Errorf("location: got %q", payload["location"])
	}
	if req.Extra["type"] != "spoofed" {
		t.Error("Payload must not modify Extra")
	}
}

func TestScheduledReminderHandle(t *testing.T) {
	empty := NewScheduledReminderHandle("")
	if empty.IsScheduled() || empty.NotificationID != nil || empty.ID() != "" {
		t.Errorf("empty handle: got %+v", empty)
	}

	handle := NewScheduledReminderHandle("reminder-1")
	if !handle.IsScheduled() || handle.ID() != "reminder-1" {
		t.Errorf("handle: got %+v", handle)
	}
}

func TestNewReminderPreference(t *testing.T) {
	tests := []struct {
		name        string
		userID      string
		leadMinutes int
		wantErr     error
	}{
		{name: "valid", userID: "user-1", leadMinutes: 30},
		{name: "zero lead", userID: "user-1", leadMinutes: 0},
		{name: "missing user", userID: "", leadMinutes: 30, wantErr: ErrInvalidPreference},
		{name: "negative lead", userID: "user-1", leadMinutes: -5, wantErr: ErrInvalidPreference},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pref, err := NewReminderPreference(tt.userID, true, tt.leadMinutes)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error: got %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if pref.LeadTime() != time.Duration(tt.leadMinutes)*time.Minute {
				t.Errorf("LeadTime: got %v", pref.LeadTime())
			}
		})
	}
}

func TestNotificationEventLatency(t *testing.T) {
	fireAt := time.Date(2024, 6, 1, 9, 45, 0, 0, time.UTC)

	tests := []struct {
		name  string
		event NotificationEvent
		want  time.Duration
	}{
		{
			name:  "late delivery",
			event: NotificationEvent{FireAt: fireAt, OccurredAt: fireAt.Add(3 * time.Second)},
			want:  3 * time.Second,
		},
		{
			name:  "early delivery",
			event: NotificationEvent{FireAt: fireAt, OccurredAt: fireAt.Add(-time.Second)},
			want:  0,
		},
		{
			name:  "unknown fire time",
			event: NotificationEvent{OccurredAt: fireAt},
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.Latency(); got != tt.want {
				t.Errorf("Latency: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsValidNotificationID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{name: "generated", id: NewNotificationID(), want: true},
		{name: "fixed uuid", id: "reminder-6f1c2b9e-4d0a-4c4e-9d8e-2a7b1c3d5e6f", want: true},
		{name: "missing prefix", id: "6f1c2b9e-4d0a-4c4e-9d8e-2a7b1c3d5e6f", want: false},
		{name: "not a uuid", id: "reminder-1", want: false},
		{name: "path traversal", id: "reminder-../../queues/other", want: false},
		{name: "braced uuid", id: "reminder-{6f1c2b9e-4d0a-4c4e-9d8e-2a7b1c3d5e6f}", want: false},
		{name: "empty", id: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidNotificationID(tt.id); got != tt.want {
				t.Errorf("IsValidNotificationID(%q): got %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}
