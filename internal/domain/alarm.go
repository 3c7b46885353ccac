package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	// SilentRingtone is the ringtone name used when an alarm plays no sound.
	SilentRingtone = "Silent"

	DefaultRingHours = 12
	DefaultRingMins  = 0

	DaysPerWeek = 7
)

var weekdayLabels = [DaysPerWeek]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// RepeatDay is one entry of an alarm's weekly repeat set. Day follows time.Weekday (Sunday = 0).
type RepeatDay struct {
	Day     int    `json:"day"`
	Label   string `json:"label"`
	Enabled bool   `json:"enabled"`
}

// RepeatDays always carries exactly one entry per weekday, indexed by time.Weekday.
type RepeatDays [DaysPerWeek]RepeatDay

func NewRepeatDays(enabled ...time.Weekday) RepeatDays {
	var days RepeatDays
	for i := range days {
		days[i] = RepeatDay{Day: i, Label: weekdayLabels[i]}
	}
	for _, wd := range enabled {
		days[wd].Enabled = true
	}
	return days
}

func (d RepeatDays) IsEnabled(wd time.Weekday) bool {
	return d[wd].Enabled
}

func (d RepeatDays) AnyEnabled() bool {
	for _, day := range d {
		if day.Enabled {
			return true
		}
	}
	return false
}

type Ringtone struct {
	Name string `json:"name"`
	URI  string `json:"uri,omitempty"`
}

func (r Ringtone) IsSilent() bool {
	return r.Name == SilentRingtone
}

type Puzzle struct {
	Kind       string `json:"kind"`
	Difficulty int    `json:"difficulty"`
	Rounds     int    `json:"rounds"`
}

type Alarm struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	RingHours    int        `json:"ring_hours"`
	RingMins     int        `json:"ring_mins"`
	Repeat       bool       `json:"repeat"`
	RepeatDays   RepeatDays `json:"repeat_days"`
	Vibrate      bool       `json:"vibrate"`
	Ringtone     Ringtone   `json:"ringtone"`
	Puzzles      []Puzzle   `json:"puzzles"`
	BoosterSet   BoosterSet `json:"booster_set"`
	Enabled      bool       `json:"enabled"`
	LastModified time.Time  `json:"last_modified"`
}

// NewAlarm returns an alarm carrying the factory defaults and a fresh id.
func NewAlarm(lastModified time.Time) Alarm {
	return Alarm{
		ID:           uuid.NewString(),
		RingHours:    DefaultRingHours,
		RingMins:     DefaultRingMins,
		RepeatDays:   NewRepeatDays(),
		Ringtone:     Ringtone{Name: SilentRingtone},
		Puzzles:      []Puzzle{},
		BoosterSet:   BoosterSet{},
		Enabled:      true,
		LastModified: lastModified,
	}
}

func (a Alarm) Validate() error {
	if a.ID == "" {
		return ErrInvalidAlarm
	}
	if a.RingHours < 0 || a.RingHours > 23 {
		return ErrInvalidRingTime
	}
	if a.RingMins < 0 || a.RingMins > 59 {
		return ErrInvalidRingTime
	}
	return a.BoosterSet.Validate()
}

// Clone returns a copy that shares no mutable state with a.
func (a Alarm) Clone() Alarm {
	c := a
	if a.Puzzles != nil {
		c.Puzzles = make([]Puzzle, len(a.Puzzles))
		copy(c.Puzzles, a.Puzzles)
	}
	return c
}

// DoubleCheckID is the scheduler id used for an alarm's post-dismiss double-check, kept
// distinct from the alarm id so cleaning it up never cancels the alarm's own schedule.
func DoubleCheckID(alarmID string) string {
	return alarmID + "-double-check"
}
