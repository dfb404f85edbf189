package config

import (
	"os"
	"strconv"
	"time"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

const (
	reminderDefaultLeadMinutesEnv = "REMINDER_DEFAULT_LEAD_MINUTES"
	reminderNotificationTitleEnv  = "REMINDER_NOTIFICATION_TITLE"
	preferenceCacheTTLEnv         = "PREFERENCE_CACHE_TTL_SECONDS"

	defaultReminderNotificationTitle = "Meditation Reminder"
	defaultPreferenceCacheTTL        = 5 * time.Minute
)

type ReminderConfig struct {
	DefaultLeadMinutes int
	NotificationTitle  string
	PreferenceCacheTTL time.Duration
}

func LoadReminderConfig() (*ReminderConfig, error) {
	leadMinutes := domain.DefaultLeadMinutes
	if v := os.Getenv(reminderDefaultLeadMinutesEnv); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			return nil, ErrInvalidLeadMinutes
		}
		leadMinutes = parsed
	}

	title := os.Getenv(reminderNotificationTitleEnv)
	if title == "" {
		title = defaultReminderNotificationTitle
	}

	cacheTTL := defaultPreferenceCacheTTL
	if v := os.Getenv(preferenceCacheTTLEnv); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			return nil, ErrInvalidCacheTTL
		}
		cacheTTL = time.Duration(parsed) * time.Second
	}

	return &ReminderConfig{
		DefaultLeadMinutes: leadMinutes,
		NotificationTitle:  title,
		PreferenceCacheTTL: cacheTTL,
	}, nil
}
