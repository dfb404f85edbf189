package delivery

import (
	"context"
	"errors"
	"time"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

var ErrInvalidNotification = errors.New("invalid notification")

// FiredNotification is posted by the task queue when a reminder fires.
type FiredNotification struct {
	NotificationID string
	UserID         string
	FireAt         time.Time
	Data           map[string]string
}

// NotificationResponse is reported by the client when the user acts on a
// delivered notification.
type NotificationResponse struct {
	NotificationID string
	UserID         string
	Action         string
	Data           map[string]string
}

type Publisher interface {
	Publish(ctx context.Context, event domain.NotificationEvent) int
}
