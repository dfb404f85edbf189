package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
	"github.com/KasumiMercury/primind-event-reminder/internal/service/reminder"
)

type scheduleReminderRequest struct {
	EventID    string            `json:"event_id"`
	EventTitle string            `json:"event_title"`
	StartTime  string            `json:"start_time" binding:"required"`
	Data       map[string]string `json:"data"`
}

type scheduleReminderResponse struct {
	NotificationID *string `json:"notification_id"`
	Scheduled      bool    `json:"scheduled"`
}

type cancelReminderRequest struct {
	NotificationID *string `json:"notification_id"`
}

type cancelReminderResponse struct {
	Success bool `json:"success"`
}

type cancelAllResponse struct {
	Cancelled int `json:"cancelled"`
}

type listRemindersResponse struct {
	Reminders []*domain.ReminderRecord `json:"reminders"`
	Count     int                      `json:"count"`
}

type ReminderHandler struct {
	reminderService *reminder.Service
}

func NewReminderHandler(reminderService *reminder.Service) *ReminderHandler {
	return &ReminderHandler{
		reminderService: reminderService,
	}
}

// POST /api/v1/reminders
func (h *ReminderHandler) HandleSchedule(c *gin.Context) {
	ctx := c.Request.Context()

	var req scheduleReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "schedule request validation failed",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid start_time format, expected RFC3339")
		return
	}

	reminderReq := domain.NewReminderRequest(req.EventID, req.EventTitle, startTime)
	reminderReq.Extra = req.Data

	handle := h.reminderService.ScheduleReminder(ctx, reminderReq)

	c.JSON(http.StatusOK, scheduleReminderResponse{
		NotificationID: handle.NotificationID,
		Scheduled:      handle.IsScheduled(),
	})
}

// POST /api/v1/reminders/cancel
func (h *ReminderHandler) HandleCancel(c *gin.Context) {
	ctx := c.Request.Context()

	var req cancelReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	var handle domain.ScheduledReminderHandle
	if req.NotificationID != nil {
		handle = domain.NewScheduledReminderHandle(*req.NotificationID)
	}

	c.JSON(http.StatusOK, cancelReminderResponse{
		Success: h.reminderService.CancelReminder(ctx, handle),
	})
}

// DELETE /api/v1/reminders
func (h *ReminderHandler) HandleCancelAll(c *gin.Context) {
	c.JSON(http.StatusOK, cancelAllResponse{
		Cancelled: h.reminderService.CancelAllReminders(c.Request.Context()),
	})
}

// GET /api/v1/reminders
func (h *ReminderHandler) HandleList(c *gin.Context) {
	reminders := h.reminderService.ListReminders(c.Request.Context())

	c.JSON(http.StatusOK, listRemindersResponse{
		Reminders: reminders,
		Count:     len(reminders),
	})
}
