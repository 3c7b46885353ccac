package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port      string
	LogLevel  slog.Level
	Scheduler SchedulerConfig
	Redis     *RedisConfig
	Database  *DatabaseConfig
	Alarm     *AlarmConfig
}

type SchedulerConfig struct {
	TasksURL  string
	QueueName string

	// CallbackBaseURL is the externally reachable base of this service; ring callbacks target it.
	CallbackBaseURL string

	GCloudProjectID      string
	GCloudLocationID     string
	GCloudQueueID        string
	GCloudServiceAccount string
	EmulatorHost         string

	MaxRetries int
}

func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	queueName := os.Getenv("TASK_QUEUE_NAME")
	if queueName == "" {
		queueName = "alarms"
	}

	maxRetries := 3
	if v := os.Getenv("TASK_QUEUE_MAX_RETRIES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			maxRetries = parsed
		}
	}

	callbackBaseURL := strings.TrimRight(os.Getenv("ALARM_CALLBACK_BASE_URL"), "/")
	if callbackBaseURL == "" {
		callbackBaseURL = "http://localhost:" + port
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	alarmConfig, err := LoadAlarmConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:     port,
		LogLevel: parseLogLevel(os.Getenv("LOG_LEVEL")),
		Scheduler: SchedulerConfig{
			TasksURL:        os.Getenv("ALARM_TASKS_URL"),
			QueueName:       queueName,
			CallbackBaseURL: callbackBaseURL,

			GCloudProjectID:      os.Getenv("GCLOUD_PROJECT_ID"),
			GCloudLocationID:     os.Getenv("GCLOUD_LOCATION_ID"),
			GCloudQueueID:        os.Getenv("GCLOUD_QUEUE_ID"),
			GCloudServiceAccount: os.Getenv("GCLOUD_SERVICE_ACCOUNT"),
			EmulatorHost:         os.Getenv("CLOUD_TASKS_EMULATOR_HOST"),

			MaxRetries: maxRetries,
		},
		Redis:    redisConfig,
		Database: LoadDatabaseConfig(),
		Alarm:    alarmConfig,
	}, nil
}

func parseLogLevel(level string) slog.Level {
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
