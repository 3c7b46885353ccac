package config

import (
	"os"
	"strconv"
	"time"
)

const (
	defaultSnoozeMinutesEnv   = "ALARM_DEFAULT_SNOOZE_MINUTES"
	processedEventTTLEnv      = "ALARM_PROCESSED_EVENT_TTL_MINUTES"
	bootReconcileEnv          = "ALARM_BOOT_RECONCILE"
	defaultDefaultSnoozeMins  = 5
	defaultProcessedTTLMinute = 10
)

type AlarmConfig struct {
	// DefaultSnoozeMinutes applies when the snooze limiter booster is off.
	DefaultSnoozeMinutes int
	ProcessedEventTTL    time.Duration
	ReconcileOnBoot      bool
}

func LoadAlarmConfig() (*AlarmConfig, error) {
	snooze := defaultDefaultSnoozeMins
	if v := os.Getenv(defaultSnoozeMinutesEnv); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return nil, ErrInvalidSnoozeMinutes
		}
		snooze = parsed
	}

	ttl := defaultProcessedTTLMinute
	if v := os.Getenv(processedEventTTLEnv); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return nil, ErrInvalidProcessedTTL
		}
		ttl = parsed
	}

	reconcile := true
	if v := os.Getenv(bootReconcileEnv); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			reconcile = parsed
		}
	}

	return &AlarmConfig{
		DefaultSnoozeMinutes: snooze,
		ProcessedEventTTL:    time.Duration(ttl) * time.Minute,
		ReconcileOnBoot:      reconcile,
	}, nil
}
