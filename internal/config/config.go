package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port         string
	LogLevel     slog.Level
	TaskQueue    TaskQueueConfig
	Redis        *RedisConfig
	Database     *DatabaseConfig
	Reminder     *ReminderConfig
	Notification *NotificationConfig
	Session      *SessionConfig
}

type TaskQueueConfig struct {
	PrimindTasksURL string
	QueueName       string
	CallbackURL     string
	// CallbackSecret authenticates Primind Tasks fire callbacks.
	CallbackSecret string

	GCloudProjectID  string
	GCloudLocationID string
	GCloudQueueID    string
	GCloudTargetURL  string
	// GCloudServiceAccount signs the OIDC token on Cloud Tasks callbacks.
	GCloudServiceAccount string

	MaxRetries int
}

func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	queueName := os.Getenv("TASK_QUEUE_NAME")
	if queueName == "" {
		queueName = "default"
	}

	maxRetries := 3
	if v := os.Getenv("TASK_QUEUE_MAX_RETRIES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			maxRetries = parsed
		}
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	reminderConfig, err := LoadReminderConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:     port,
		LogLevel: ParseLogLevel(os.Getenv("LOG_LEVEL")),
		TaskQueue: TaskQueueConfig{
			PrimindTasksURL: os.Getenv("PRIMIND_TASKS_URL"),
			QueueName:       queueName,
			CallbackURL:     os.Getenv("CALLBACK_URL"),
			CallbackSecret:  os.Getenv("CALLBACK_SECRET"),

			GCloudProjectID:      os.Getenv("GCLOUD_PROJECT_ID"),
			GCloudLocationID:     os.Getenv("GCLOUD_LOCATION_ID"),
			GCloudQueueID:        os.Getenv("GCLOUD_QUEUE_ID"),
			GCloudTargetURL:      os.Getenv("GCLOUD_TARGET_URL"),
			GCloudServiceAccount: os.Getenv("GCLOUD_TASKS_SERVICE_ACCOUNT"),

			MaxRetries: maxRetries,
		},
		Redis:        redisConfig,
		Database:     LoadDatabaseConfig(),
		Reminder:     reminderConfig,
		Notification: LoadNotificationConfig(),
		Session:      LoadSessionConfig(),
	}, nil
}

func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnvBool(key string, defaultValue bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue
	}
	return parsed
}
