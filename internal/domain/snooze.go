package domain

import "time"

// SnoozeState tracks the snooze counters of one ring cycle.
type SnoozeState struct {
	Uses            int       `json:"uses"`
	DecayMinutes    int       `json:"decay"`
	DurationMinutes int       `json:"duration"`
	ExpectedFireAt  time.Time `json:"expected_fire_at"`
}

func NewSnoozeState(cfg SnoozeLimiterConfig) SnoozeState {
	return SnoozeState{
		Uses:            cfg.MaxUses,
		DecayMinutes:    cfg.DecayMinutes,
		DurationMinutes: cfg.StartingMinutes,
	}
}

// CanSnooze reports whether another snooze is still permitted.
func (s SnoozeState) CanSnooze() bool {
	return s.Uses > 0 && s.DurationMinutes > 0
}

// Consume applies one snooze: one use and one decay step, both floored at zero.
func (s SnoozeState) Consume() SnoozeState {
	next := s
	next.Uses = max(s.Uses-1, 0)
	next.DurationMinutes = max(s.DurationMinutes-s.DecayMinutes, 0)
	return next
}

func (s SnoozeState) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// SnoozeRecord is what the ring-state store holds for an alarm. Disabled marks the
// sentinel written when no snooze limiting applies.
type SnoozeRecord struct {
	State    SnoozeState
	Disabled bool
}

func (r *SnoozeRecord) Active() bool {
	return r != nil && !r.Disabled
}
