package followup

import (
	"sync"
	"time"
)

// inflight guards event keys inside one process. Entries expire after ttl.
type inflight struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]time.Time
}

func newInflight(ttl time.Duration) *inflight {
	return &inflight{
		ttl:     ttl,
		entries: make(map[string]time.Time),
	}
}

// acquire reports false when key is already held and not yet expired.
func (f *inflight) acquire(key string, now time.Time) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	for k, expires := range f.entries {
		if !now.Before(expires) {
			delete(f.entries, k)
		}
	}

	if _, ok := f.entries[key]; ok {
		return false
	}
	f.entries[key] = now.Add(f.ttl)
	return true
}

func (f *inflight) release(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.entries, key)
}
