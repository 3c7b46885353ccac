package config

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, env := range []string{
		"PORT", "LOG_LEVEL", "ALARM_TASKS_URL", "TASK_QUEUE_NAME", "TASK_QUEUE_MAX_RETRIES",
		"ALARM_CALLBACK_BASE_URL", "REDIS_ADDR", "REDIS_DB", "ALARM_DB_PATH",
		"ALARM_DEFAULT_SNOOZE_MINUTES", "ALARM_PROCESSED_EVENT_TTL_MINUTES", "ALARM_BOOT_RECONCILE",
	} {
		t.Setenv(env, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.Scheduler.QueueName != "alarms" {
		t.Errorf("QueueName = %q, want alarms", cfg.Scheduler.QueueName)
	}
	if cfg.Scheduler.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.Scheduler.MaxRetries)
	}
	if cfg.Scheduler.CallbackBaseURL != "http://localhost:8080" {
		t.Errorf("CallbackBaseURL = %q", cfg.Scheduler.CallbackBaseURL)
	}
	if cfg.Database.Path != "alarms.db" {
		t.Errorf("Database.Path = %q, want alarms.db", cfg.Database.Path)
	}
	if cfg.Alarm.DefaultSnoozeMinutes != 5 {
		t.Errorf("DefaultSnoozeMinutes = %d, want 5", cfg.Alarm.DefaultSnoozeMinutes)
	}
	if cfg.Alarm.ProcessedEventTTL != 10*time.Minute {
		t.Errorf("ProcessedEventTTL = %v, want 10m", cfg.Alarm.ProcessedEventTTL)
	}
	if !cfg.Alarm.ReconcileOnBoot {
		t.Error("ReconcileOnBoot = false, want true")
	}

	if err := ValidateForRun(cfg); err != nil {
		t.Errorf("ValidateForRun() error = %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ALARM_CALLBACK_BASE_URL", "https://alarms.example.com/")
	t.Setenv("ALARM_DEFAULT_SNOOZE_MINUTES", "9")
	t.Setenv("ALARM_BOOT_RECONCILE", "false")
	t.Setenv("TASK_QUEUE_MAX_RETRIES", "-1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
	if cfg.Scheduler.CallbackBaseURL != "https://alarms.example.com" {
		t.Errorf("CallbackBaseURL = %q, want trailing slash trimmed", cfg.Scheduler.CallbackBaseURL)
	}
	if cfg.Alarm.DefaultSnoozeMinutes != 9 {
		t.Errorf("DefaultSnoozeMinutes = %d, want 9", cfg.Alarm.DefaultSnoozeMinutes)
	}
	if cfg.Alarm.ReconcileOnBoot {
		t.Error("ReconcileOnBoot = true, want false")
	}
	if cfg.Scheduler.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want fallback 3", cfg.Scheduler.MaxRetries)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		value   string
		wantErr error
	}{
		{name: "redis db", env: "REDIS_DB", value: "zero", wantErr: ErrInvalidRedisDB},
		{name: "snooze minutes", env: "ALARM_DEFAULT_SNOOZE_MINUTES", value: "0", wantErr: ErrInvalidSnoozeMinutes},
		{name: "processed ttl", env: "ALARM_PROCESSED_EVENT_TTL_MINUTES", value: "soon", wantErr: ErrInvalidProcessedTTL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)

			_, err := Load()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateForRunRejectsRelativeCallback(t *testing.T) {
	t.Setenv("ALARM_CALLBACK_BASE_URL", "alarms.local")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if err := ValidateForRun(cfg); !errors.Is(err, ErrCallbackBaseURLFormat) {
		t.Errorf("ValidateForRun() error = %v, want %v", err, ErrCallbackBaseURLFormat)
	}
}

func TestRedisConfig_Options(t *testing.T) {
	t.Setenv("REDIS_ADDR", "redis.internal:6380")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("REDIS_TLS", "true")

	cfg, err := LoadRedisConfig()
	if err != nil {
		t.Fatalf("LoadRedisConfig() error = %v", err)
	}

	opts := cfg.Options()
	if opts.Addr != "redis.internal:6380" || opts.DB != 2 {
		t.Errorf("Options() = %s db %d", opts.Addr, opts.DB)
	}
	if opts.TLSConfig == nil {
		t.Error("TLSConfig = nil, want set when REDIS_TLS=true")
	}
	if opts.DialTimeout != defaultRedisDialTimeout {
		t.Errorf("DialTimeout = %v, want %v", opts.DialTimeout, defaultRedisDialTimeout)
	}
}
