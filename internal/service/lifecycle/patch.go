package lifecycle

import "github.com/KasumiMercury/primind-alarm-scheduler/internal/domain"

// AlarmPatch carries caller overrides. Nil fields keep the current value.
type AlarmPatch struct {
	Name       *string
	RingHours  *int
	RingMins   *int
	Repeat     *bool
	RepeatDays *domain.RepeatDays
	Vibrate    *bool
	Ringtone   *domain.Ringtone
	Puzzles    *[]domain.Puzzle
	BoosterSet *domain.BoosterSet
	Enabled    *bool
}

func (p AlarmPatch) apply(a *domain.Alarm) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.RingHours != nil {
		a.RingHours = *p.RingHours
	}
	if p.RingMins != nil {
		a.RingMins = *p.RingMins
	}
	if p.Repeat != nil {
		a.Repeat = *p.Repeat
	}
	if p.RepeatDays != nil {
		a.RepeatDays = normalizeRepeatDays(*p.RepeatDays)
	}
	if p.Vibrate != nil {
		a.Vibrate = *p.Vibrate
	}
	if p.Ringtone != nil {
		a.Ringtone = *p.Ringtone
		if a.Ringtone.Name == "" {
			a.Ringtone.Name = domain.SilentRingtone
		}
	}
	if p.Puzzles != nil {
		a.Puzzles = make([]domain.Puzzle, len(*p.Puzzles))
		copy(a.Puzzles, *p.Puzzles)
	}
	if p.BoosterSet != nil {
		a.BoosterSet = *p.BoosterSet
	}
	if p.Enabled != nil {
		a.Enabled = *p.Enabled
	}
}

// normalizeRepeatDays keeps only the enabled flags and rebuilds day metadata by index.
func normalizeRepeatDays(in domain.RepeatDays) domain.RepeatDays {
	out := domain.NewRepeatDays()
	for i := range in {
		out[i].Enabled = in[i].Enabled
	}
	return out
}
