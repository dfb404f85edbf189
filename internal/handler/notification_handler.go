package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
	"github.com/KasumiMercury/primind-event-reminder/internal/infra/taskqueue"
	"github.com/KasumiMercury/primind-event-reminder/internal/service/delivery"
)

type notificationResponseRequest struct {
	NotificationID string            `json:"notification_id" binding:"required"`
	Action         string            `json:"action"`
	Data           map[string]string `json:"data"`
}

type NotificationHandler struct {
	deliveryService *delivery.Service
	sessions        domain.SessionProvider
}

func NewNotificationHandler(deliveryService *delivery.Service, sessions domain.SessionProvider) *NotificationHandler {
	return &NotificationHandler{
		deliveryService: deliveryService,
		sessions:        sessions,
	}
}

// POST /api/v1/notifications/fire
//
// The task queue posts the task body registered at schedule time.
func (h *NotificationHandler) HandleFire(c *gin.Context) {
	ctx := c.Request.Context()

	var task taskqueue.NotificationTask
	if err := c.ShouldBindJSON(&task); err != nil {
		slog.WarnContext(ctx, "fire callback unmarshal failed",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	err := h.deliveryService.HandleFired(ctx, delivery.FiredNotification{
		NotificationID: task.NotificationID,
		UserID:         task.UserID,
		FireAt:         task.ScheduleAt,
		Data:           task.Data,
	})
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// POST /api/v1/notifications/response
func (h *NotificationHandler) HandleResponse(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.sessions.CurrentUserID(ctx)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthenticated", domain.ErrNoSession.Error())
		return
	}

	var req notificationResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	err := h.deliveryService.HandleResponse(ctx, delivery.NotificationResponse{
		NotificationID: req.NotificationID,
		UserID:         userID,
		Action:         req.Action,
		Data:           req.Data,
	})
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
