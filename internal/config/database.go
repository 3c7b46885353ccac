package config

import "os"

const (
	databasePathEnv = "ALARM_DB_PATH"

	defaultDatabasePath = "alarms.db"
)

type DatabaseConfig struct {
	Path string
}

func LoadDatabaseConfig() *DatabaseConfig {
	path := os.Getenv(databasePathEnv)
	if path == "" {
		path = defaultDatabasePath
	}

	return &DatabaseConfig{
		Path: path,
	}
}

func (c *DatabaseConfig) Validate() error {
	if c == nil || c.Path == "" {
		return ErrDatabasePathMissing
	}
	return nil
}
