package followup

import (
	"errors"
	"fmt"
	"time"

	"github.com/KasumiMercury/primind-alarm-scheduler/internal/deeplink"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/domain"
)

var (
	ErrMissingRingInstance = errors.New("ring instance is required")
	ErrUnknownEventKind    = errors.New("unknown ring event kind")
)

// Event is one ring-time interaction with an alarm.
type Event struct {
	AlarmID string
	Kind    deeplink.Kind
	// RingAt identifies the ring instance. Fires without one are stamped with the handling time.
	RingAt time.Time
}

func EventFromRoute(r deeplink.Route) Event {
	return Event{
		AlarmID: r.AlarmID,
		Kind:    r.Kind(),
		RingAt:  r.RingAt,
	}
}

func (e Event) key() string {
	return fmt.Sprintf("%s|%s|%d", e.AlarmID, e.Kind, e.RingAt.UnixMilli())
}

func (e Event) recordKind() domain.RingEventKind {
	switch e.Kind {
	case deeplink.KindDismiss:
		return domain.RingEventDismiss
	case deeplink.KindSnooze:
		return domain.RingEventSnooze
	case deeplink.KindDoubleCheckFire:
		return domain.RingEventDoubleCheckFire
	case deeplink.KindDoubleCheckDismiss:
		return domain.RingEventDoubleCheckClear
	default:
		return domain.RingEventFire
	}
}

// Outcome describes what the coordinator did, for the caller to render.
type Outcome struct {
	AlarmID   string        `json:"alarm_id"`
	Kind      deeplink.Kind `json:"kind"`
	RingAt    time.Time     `json:"ring_at"`
	Duplicate bool          `json:"duplicate,omitempty"`
	// Stale is set when a fire arrives for an alarm that is no longer enabled.
	Stale bool `json:"stale,omitempty"`

	LaunchPackage string     `json:"launch_package,omitempty"`
	Background    bool       `json:"background,omitempty"`
	DoubleCheckAt *time.Time `json:"double_check_at,omitempty"`
	NextTrigger   *time.Time `json:"next_trigger,omitempty"`
	Disabled      bool       `json:"disabled,omitempty"`

	SnoozeUntil     *time.Time `json:"snooze_until,omitempty"`
	SnoozeUnlimited bool       `json:"snooze_unlimited,omitempty"`
	SnoozeUses      *int       `json:"snooze_uses,omitempty"`
	SnoozeMinutes   *int       `json:"snooze_minutes,omitempty"`

	repeat bool
}
