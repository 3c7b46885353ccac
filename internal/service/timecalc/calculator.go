package timecalc

import (
	"time"

	"github.com/KasumiMercury/primind-alarm-scheduler/internal/domain"
)

// Calculator computes the next ring instant of an alarm.
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// Next returns the next instant strictly after now at which alarm should ring, in now's location.
//
// A repeating alarm with no weekday enabled is treated as non-repeating.
func (c *Calculator) Next(alarm domain.Alarm, now time.Time) time.Time {
	candidate := time.Date(now.Year(), now.Month(), now.Day(), alarm.RingHours, alarm.RingMins, 0, 0, now.Location())

	if !alarm.Repeat || !alarm.RepeatDays.AnyEnabled() {
		if !candidate.After(now) {
			candidate = candidate.AddDate(0, 0, 1)
		}
		return candidate
	}

	if alarm.RepeatDays.IsEnabled(now.Weekday()) {
		if candidate.After(now) {
			return candidate
		}
		return candidate.AddDate(0, 0, 7)
	}

	for offset := 1; offset < domain.DaysPerWeek; offset++ {
		next := candidate.AddDate(0, 0, offset)
		if alarm.RepeatDays.IsEnabled(next.Weekday()) {
			return next
		}
	}

	// unreachable: AnyEnabled guarantees a hit within the window
	return candidate.AddDate(0, 0, 7)
}

// NextTriggerTimestamp is Next expressed in epoch milliseconds.
func (c *Calculator) NextTriggerTimestamp(alarm domain.Alarm, now time.Time) int64 {
	return c.Next(alarm, now).UnixMilli()
}
