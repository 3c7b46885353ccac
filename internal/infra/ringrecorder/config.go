package ringrecorder

import (
	"os"
	"strconv"
	"time"
)

const defaultWriteTimeout = 5 * time.Second

type Config struct {
	Disabled     bool
	// WriteTimeout bounds each RecordRingEvents call.
	WriteTimeout time.Duration

	InfluxDBURL    string
	InfluxDBToken  string
	InfluxDBOrg    string
	InfluxDBBucket string

	BigQueryProjectID string
	BigQueryDataset   string
	BigQueryTable     string
}

func LoadConfig() *Config {
	cfg := &Config{
		Disabled:     os.Getenv("RING_EVENTS_DISABLED") == "true",
		WriteTimeout: defaultWriteTimeout,

		InfluxDBURL:    envOr("INFLUXDB_URL", "http://localhost:8086"),
		InfluxDBToken:  os.Getenv("INFLUXDB_TOKEN"),
		InfluxDBOrg:    os.Getenv("INFLUXDB_ORG"),
		InfluxDBBucket: envOr("INFLUXDB_BUCKET", "ring_events"),

		BigQueryProjectID: envOr("BIGQUERY_PROJECT_ID", os.Getenv("GOOGLE_CLOUD_PROJECT")),
		BigQueryDataset:   envOr("BIGQUERY_DATASET", "alarm_events"),
		BigQueryTable:     envOr("BIGQUERY_TABLE", "ring_events"),
	}

	if v := os.Getenv("RING_EVENTS_WRITE_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.WriteTimeout = time.Duration(secs) * time.Second
		}
	}

	return cfg
}

func (c *Config) influxConfigured() bool {
	return c.InfluxDBToken != "" && c.InfluxDBOrg != ""
}

func (c *Config) writeTimeout() time.Duration {
	if c.WriteTimeout <= 0 {
		return defaultWriteTimeout
	}
	return c.WriteTimeout
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
