package domain

import (
	"context"
	"time"
)

type NotificationEventRecord struct {
	NotificationID string
	UserID         string
	EventID        string
	Kind           string
	Type           string
	Action         string
	OccurredAt     time.Time
	// Latency is OccurredAt minus the scheduled fire time, zero when unknown.
	Latency time.Duration
}

//go:generate mockgen -source=notification_event_recorder.go -destination=notification_event_recorder_mock.go -package=domain

type NotificationEventRecorder interface {
	RecordEvents(ctx context.Context, records []NotificationEventRecord) error
	Flush(ctx context.Context) error
	Close() error
}
