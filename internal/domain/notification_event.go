package domain

import "time"

// NotificationEventKind distinguishes the notification lifecycle callbacks.
type NotificationEventKind string

const (
	NotificationReceived NotificationEventKind = "received"
	NotificationResponse NotificationEventKind = "response"
)

func (k NotificationEventKind) String() string {
	return string(k)
}

func (k NotificationEventKind) IsValid() bool {
	return k == NotificationReceived || k == NotificationResponse
}

type NotificationEvent struct {
	Kind           NotificationEventKind
	NotificationID string
	UserID         string
	EventID        string
	Type           string
	Action         string
	Data           map[string]string
	OccurredAt     time.Time
	// FireAt is the scheduled fire time, zero when unknown.
	FireAt time.Time
}

// Latency is how late the event occurred relative to its fire time.
func (e NotificationEvent) Latency() time.Duration {
	if e.FireAt.IsZero() || e.OccurredAt.Before(e.FireAt) {
		return 0
	}
	return e.OccurredAt.Sub(e.FireAt)
}
