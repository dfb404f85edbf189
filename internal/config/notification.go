package config

import "os"

const (
	notificationShowAlertEnv = "NOTIFICATION_SHOW_ALERT"
	notificationPlaySoundEnv = "NOTIFICATION_PLAY_SOUND"
	notificationSetBadgeEnv  = "NOTIFICATION_SET_BADGE"
	notificationChannelEnv   = "NOTIFICATION_CHANNEL_ID"

	defaultNotificationChannel = "reminders"
)

// NotificationConfig is the process-wide presentation setting handed to
// notification.Init at startup.
type NotificationConfig struct {
	ShowAlert bool
	PlaySound bool
	SetBadge  bool
	ChannelID string
}

func LoadNotificationConfig() *NotificationConfig {
	channel := os.Getenv(notificationChannelEnv)
	if channel == "" {
		channel = defaultNotificationChannel
	}

	return &NotificationConfig{
		ShowAlert: getEnvBool(notificationShowAlertEnv, true),
		PlaySound: getEnvBool(notificationPlaySoundEnv, true),
		SetBadge:  getEnvBool(notificationSetBadgeEnv, false),
		ChannelID: channel,
	}
}
