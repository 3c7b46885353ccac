package lifecycle

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/KasumiMercury/primind-alarm-scheduler/internal/domain"
)

// Snapshot is an immutable view of the alarm collection.
type Snapshot struct {
	alarms map[string]domain.Alarm
}

func (s Snapshot) Get(id string) (domain.Alarm, bool) {
	a, ok := s.alarms[id]
	if !ok {
		return domain.Alarm{}, false
	}
	return a.Clone(), true
}

// List returns the alarms ordered by ring time, then id.
func (s Snapshot) List() []domain.Alarm {
	out := make([]domain.Alarm, 0, len(s.alarms))
	for _, a := range s.alarms {
		out = append(out, a.Clone())
	}
	slices.SortFunc(out, func(a, b domain.Alarm) int {
		if d := (a.RingHours*60 + a.RingMins) - (b.RingHours*60 + b.RingMins); d != 0 {
			return d
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

func (s Snapshot) Len() int {
	return len(s.alarms)
}

// ModifiedAfter returns the alarms whose last modification is strictly after baseline.
func (s Snapshot) ModifiedAfter(baseline time.Time) []domain.Alarm {
	var out []domain.Alarm
	for _, a := range s.alarms {
		if a.LastModified.After(baseline) {
			out = append(out, a.Clone())
		}
	}
	slices.SortFunc(out, func(a, b domain.Alarm) int {
		return a.LastModified.Compare(b.LastModified)
	})
	return out
}

func (s Snapshot) with(a domain.Alarm) Snapshot {
	next := make(map[string]domain.Alarm, len(s.alarms)+1)
	for id, v := range s.alarms {
		next[id] = v
	}
	next[a.ID] = a
	return Snapshot{alarms: next}
}

func (s Snapshot) without(id string) Snapshot {
	next := make(map[string]domain.Alarm, len(s.alarms))
	for k, v := range s.alarms {
		if k != id {
			next[k] = v
		}
	}
	return Snapshot{alarms: next}
}

// Store holds the current snapshot. Every mutation stamps the alarm with a millisecond
// timestamp strictly greater than any stamp issued before.
type Store struct {
	mu        sync.RWMutex
	snap      Snapshot
	lastStamp time.Time
}

func NewStore() *Store {
	return &Store{
		snap: Snapshot{alarms: map[string]domain.Alarm{}},
	}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Replace installs alarms as the whole collection and returns the stamp high-water mark.
func (s *Store) Replace(alarms []domain.Alarm) (Snapshot, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]domain.Alarm, len(alarms))
	for _, a := range alarms {
		next[a.ID] = a.Clone()
		if a.LastModified.After(s.lastStamp) {
			s.lastStamp = a.LastModified
		}
	}
	s.snap = Snapshot{alarms: next}

	return s.snap, s.lastStamp
}

func (s *Store) Put(now time.Time, a domain.Alarm) (domain.Alarm, Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a = a.Clone()
	a.LastModified = s.stampLocked(now)
	s.snap = s.snap.with(a)

	return a.Clone(), s.snap
}

// Mutate applies fn to a copy of the alarm and installs the result when fn succeeds.
func (s *Store) Mutate(now time.Time, id string, fn func(*domain.Alarm) error) (domain.Alarm, Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.snap.alarms[id]
	if !ok {
		return domain.Alarm{}, s.snap, domain.ErrAlarmNotFound
	}

	next := cur.Clone()
	if err := fn(&next); err != nil {
		return domain.Alarm{}, s.snap, err
	}
	next.ID = cur.ID
	if err := next.Validate(); err != nil {
		return domain.Alarm{}, s.snap, err
	}
	next.LastModified = s.stampLocked(now)
	s.snap = s.snap.with(next)

	return next.Clone(), s.snap, nil
}

func (s *Store) Remove(id string) (domain.Alarm, Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.snap.alarms[id]
	if !ok {
		return domain.Alarm{}, s.snap, false
	}
	s.snap = s.snap.without(id)

	return cur, s.snap, true
}

func (s *Store) stampLocked(now time.Time) time.Time {
	t := now.UTC().Truncate(time.Millisecond)
	if !t.After(s.lastStamp) {
		t = s.lastStamp.Add(time.Millisecond)
	}
	s.lastStamp = t
	return t
}
