package config

import "errors"

var (
	ErrRedisAddrMissing      = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB        = errors.New("REDIS_DB must be a valid integer")
	ErrDatabasePathMissing   = errors.New("ALARM_DB_PATH must not be empty")
	ErrInvalidSnoozeMinutes  = errors.New("ALARM_DEFAULT_SNOOZE_MINUTES must be a positive integer")
	ErrInvalidProcessedTTL   = errors.New("ALARM_PROCESSED_EVENT_TTL_MINUTES must be a positive integer")
	ErrCallbackBaseURLFormat = errors.New("ALARM_CALLBACK_BASE_URL must be an absolute http(s) URL")
)
