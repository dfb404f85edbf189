package taskqueue

import (
	"time"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

// NotificationTask is the body the queue posts back to the fire callback.
type NotificationTask struct {
	NotificationID string                           `json:"notification_id"`
	UserID         string                           `json:"user_id"`
	ScheduleAt     time.Time                        `json:"fire_at"`
	Title          string                           `json:"title"`
	Body           string                           `json:"body"`
	Data           map[string]string                `json:"data"`
	Presentation   *domain.NotificationPresentation `json:"presentation,omitempty"`
}

func NewNotificationTask(notificationID, userID string, content domain.NotificationContent) *NotificationTask {
	presentation := content.Presentation

	return &NotificationTask{
		NotificationID: notificationID,
		UserID:         userID,
		ScheduleAt:     content.FireAt.UTC(),
		Title:          content.Title,
		Body:           content.Body,
		Data:           content.Data,
		Presentation:   &presentation,
	}
}

type TaskResponse struct {
	Name         string    `json:"name"`
	ScheduleTime time.Time `json:"schedule_time"`
	CreateTime   time.Time `json:"create_time"`
}

type PrimindTaskRequest struct {
	Task PrimindTask `json:"task"`
}

type PrimindTask struct {
	Name         string             `json:"name,omitempty"`
	HTTPRequest  PrimindHTTPRequest `json:"httpRequest"`
	ScheduleTime string             `json:"scheduleTime,omitempty"`
}

type PrimindHTTPRequest struct {
	URL     string            `json:"url,omitempty"`
	Body    string            `json:"body"`
	Headers map[string]string `json:"headers,omitempty"`
}

type PrimindTaskResponse struct {
	Name         string `json:"name"`
	ScheduleTime string `json:"scheduleTime"`
	CreateTime   string `json:"createTime"`
}
