package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

type preferenceResponse struct {
	Enabled     bool `json:"enabled"`
	LeadMinutes int  `json:"lead_minutes"`
	IsDefault   bool `json:"is_default"`
}

type updatePreferenceRequest struct {
	Enabled     *bool `json:"enabled" binding:"required"`
	LeadMinutes *int  `json:"lead_minutes" binding:"required,min=0,max=10080"`
}

type PreferenceHandler struct {
	sessions    domain.SessionProvider
	preferences domain.PreferenceRepository
	defaultLead int
}

func NewPreferenceHandler(sessions domain.SessionProvider, preferences domain.PreferenceRepository, defaultLead int) *PreferenceHandler {
	return &PreferenceHandler{
		sessions:    sessions,
		preferences: preferences,
		defaultLead: defaultLead,
	}
}

// GET /api/v1/preferences/reminder
func (h *PreferenceHandler) HandleGet(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.sessions.CurrentUserID(ctx)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthenticated", domain.ErrNoSession.Error())
		return
	}

	pref, err := h.preferences.GetReminderPreference(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrPreferenceNotFound) {
			c.JSON(http.StatusOK, preferenceResponse{
				Enabled:     true,
				LeadMinutes: h.defaultLead,
				IsDefault:   true,
			})
			return
		}

		slog.ErrorContext(ctx, "failed to load reminder preference",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "failed to load preference")
		return
	}

	c.JSON(http.StatusOK, preferenceResponse{
		Enabled:     pref.Enabled,
		LeadMinutes: pref.LeadMinutes,
	})
}

// PUT /api/v1/preferences/reminder
func (h *PreferenceHandler) HandlePut(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.sessions.CurrentUserID(ctx)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthenticated", domain.ErrNoSession.Error())
		return
	}

	var req updatePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	pref, err := domain.NewReminderPreference(userID, *req.Enabled, *req.LeadMinutes)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if err := h.preferences.SaveReminderPreference(ctx, pref); err != nil {
		slog.ErrorContext(ctx, "failed to save reminder preference",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "failed to save preference")
		return
	}

	slog.InfoContext(ctx, "reminder preference updated",
		slog.String("user_id", userID),
		slog.Bool("enabled", pref.Enabled),
		slog.Int("lead_minutes", pref.LeadMinutes),
	)

	c.JSON(http.StatusOK, preferenceResponse{
		Enabled:     pref.Enabled,
		LeadMinutes: pref.LeadMinutes,
	})
}
