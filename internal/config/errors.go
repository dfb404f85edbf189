package config

import "errors"

var (
	ErrRedisAddrMissing     = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB       = errors.New("REDIS_DB must be a valid integer")
	ErrDatabaseURLMissing   = errors.New("DATABASE_URL is required")
	ErrInvalidLeadMinutes   = errors.New("REMINDER_DEFAULT_LEAD_MINUTES must be a non-negative integer")
	ErrInvalidCacheTTL      = errors.New("PREFERENCE_CACHE_TTL_SECONDS must be a non-negative integer")
	ErrPrimindTasksURLEmpty = errors.New("PRIMIND_TASKS_URL is required")
	ErrCallbackURLMissing   = errors.New("CALLBACK_URL is required")
	ErrCallbackSecretEmpty  = errors.New("CALLBACK_SECRET is required")
)
