package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/KasumiMercury/primind-alarm-scheduler/internal/domain"
)

type MemoryEntry struct {
	At          time.Time
	CallbackURL string
}

// MemoryScheduler keeps the exact-alarm table in process. It never fires anything and is
// used when no task service is configured.
type MemoryScheduler struct {
	mu      sync.Mutex
	entries map[string]MemoryEntry
	now     func() time.Time
}

func NewMemoryScheduler() *MemoryScheduler {
	return &MemoryScheduler{
		entries: make(map[string]MemoryEntry),
		now:     time.Now,
	}
}

func (m *MemoryScheduler) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

func (m *MemoryScheduler) ScheduleAlarm(_ context.Context, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id] = MemoryEntry{At: at}
	return nil
}

func (m *MemoryScheduler) ModifyAlarm(ctx context.Context, id string, at time.Time) error {
	return m.ScheduleAlarm(ctx, id, at)
}

func (m *MemoryScheduler) DeleteAlarm(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

func (m *MemoryScheduler) ScheduleDoubleCheck(_ context.Context, id, callbackURL string, delay, grace time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[domain.DoubleCheckID(id)] = MemoryEntry{
		At:          m.now().Add(delay + grace),
		CallbackURL: callbackURL,
	}
	return nil
}

func (m *MemoryScheduler) Entry(id string) (MemoryEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	return e, ok
}

func (m *MemoryScheduler) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
