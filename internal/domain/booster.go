package domain

import "time"

type LaunchConfig struct {
	PackageName string `json:"package_name"`
}

type LaunchBooster struct {
	Enabled bool         `json:"enabled"`
	Config  LaunchConfig `json:"config"`
}

type DoubleCheckConfig struct {
	DelayMinutes int `json:"delay_minutes"`
	GraceMinutes int `json:"grace_minutes"`
}

func (c DoubleCheckConfig) Delay() time.Duration {
	return time.Duration(c.DelayMinutes) * time.Minute
}

func (c DoubleCheckConfig) Grace() time.Duration {
	return time.Duration(c.GraceMinutes) * time.Minute
}

type DoubleCheckBooster struct {
	Enabled bool              `json:"enabled"`
	Config  DoubleCheckConfig `json:"config"`
}

type SnoozeLimiterConfig struct {
	StartingMinutes int `json:"starting_minutes"`
	MaxUses         int `json:"max_uses"`
	DecayMinutes    int `json:"decay_minutes"`
}

type SnoozeLimiterBooster struct {
	Enabled bool                `json:"enabled"`
	Config  SnoozeLimiterConfig `json:"config"`
}

// BoosterSet holds the optional behaviour modifiers of an alarm.
// A booster's Config is only meaningful while Enabled is set.
type BoosterSet struct {
	PostDismissLaunch LaunchBooster        `json:"post_dismiss_launch"`
	PostDismissCheck  DoubleCheckBooster   `json:"post_dismiss_check"`
	SnoozeLimiter     SnoozeLimiterBooster `json:"snooze_limiter"`
}

func (b BoosterSet) Validate() error {
	if b.PostDismissLaunch.Enabled && b.PostDismissLaunch.Config.PackageName == "" {
		return ErrInvalidBooster
	}
	if b.PostDismissCheck.Enabled {
		c := b.PostDismissCheck.Config
		if c.DelayMinutes < 0 || c.GraceMinutes < 0 {
			return ErrInvalidBooster
		}
	}
	if b.SnoozeLimiter.Enabled {
		c := b.SnoozeLimiter.Config
		if c.StartingMinutes <= 0 || c.MaxUses < 0 || c.DecayMinutes < 0 {
			return ErrInvalidBooster
		}
	}
	return nil
}
