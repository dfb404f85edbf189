package domain

import "context"

//go:generate mockgen -source=reminder_registry.go -destination=reminder_registry_mock.go -package=domain

type ReminderRegistry interface {
	Register(ctx context.Context, record *ReminderRecord) error
	Remove(ctx context.Context, userID, notificationID string) error
	ListByUser(ctx context.Context, userID string) ([]*ReminderRecord, error)
	Get(ctx context.Context, notificationID string) (*ReminderRecord, error)
}
