package config

import (
	"errors"
	"net/url"
)

func ValidateForRun(cfg *Config) error {
	var errs []error

	if err := cfg.Redis.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := cfg.Database.Validate(); err != nil {
		errs = append(errs, err)
	}

	u, err := url.Parse(cfg.Scheduler.CallbackBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ErrCallbackBaseURLFormat)
	}

	return errors.Join(errs...)
}
