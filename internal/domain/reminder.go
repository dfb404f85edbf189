package domain

import (
	"strings"
	"time"
)

const (
	UnknownEventID = "unknown"

	NotificationTypeEventReminder = "event_reminder"

	PayloadKeyType    = "type"
	PayloadKeyEventID = "eventId"
)

// ReminderRequest describes one event reminder to schedule. It is built per
// call and never persisted.
type ReminderRequest struct {
	EventID    string
	EventTitle string
	StartTime  time.Time
	Extra      map[string]string
}

func NewReminderRequest(eventID, eventTitle string, startTime time.Time) ReminderRequest {
	return ReminderRequest{
		EventID:    NormalizeEventID(eventID),
		EventTitle: eventTitle,
		StartTime:  startTime,
	}
}

func NormalizeEventID(eventID string) string {
	trimmed := strings.TrimSpace(eventID)
	if trimmed == "" {
		return UnknownEventID
	}
	return trimmed
}

// FireTime is the instant the reminder goes off for the given lead time.
func (r ReminderRequest) FireTime(leadMinutes int) time.Time {
	return r.StartTime.Add(-time.Duration(leadMinutes) * time.Minute)
}

// Payload merges the extra fields with the reminder's own keys. The reminder
// keys always win.
func (r ReminderRequest) Payload() map[string]string {
	payload := make(map[string]string, len(r.Extra)+2)
	for k, v := range r.Extra {
		payload[k] = v
	}
	payload[PayloadKeyType] = NotificationTypeEventReminder
	payload[PayloadKeyEventID] = NormalizeEventID(r.EventID)
	return payload
}

// ScheduledReminderHandle refers to a scheduled reminder. A nil
// NotificationID means nothing was scheduled.
type ScheduledReminderHandle struct {
	NotificationID *string `json:"notification_id"`
}

func NewScheduledReminderHandle(notificationID string) ScheduledReminderHandle {
	if notificationID == "" {
		return ScheduledReminderHandle{}
	}
	return ScheduledReminderHandle{NotificationID: &notificationID}
}

func (h ScheduledReminderHandle) IsScheduled() bool {
	return h.NotificationID != nil
}

func (h ScheduledReminderHandle) ID() string {
	if h.NotificationID == nil {
		return ""
	}
	return *h.NotificationID
}

// NotificationContent is what gets handed to the platform scheduler.
type NotificationContent struct {
	Title        string
	Body         string
	Data         map[string]string
	FireAt       time.Time
	Presentation NotificationPresentation
}

// ReminderRecord tracks a pending reminder so it can be listed and cancelled
// in bulk.
type ReminderRecord struct {
	NotificationID string    `json:"notification_id"`
	UserID         string    `json:"user_id"`
	EventID        string    `json:"event_id"`
	FireAt         time.Time `json:"fire_at"`
	CreatedAt      time.Time `json:"created_at"`
}

// NotificationPresentation controls how the device presents a delivered
// notification.
type NotificationPresentation struct {
	ShowAlert bool   `json:"show_alert"`
	PlaySound bool   `json:"play_sound"`
	SetBadge  bool   `json:"set_badge"`
	ChannelID string `json:"channel_id,omitempty"`
}
