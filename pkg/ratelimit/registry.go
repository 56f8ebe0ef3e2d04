package ratelimit

import (
	"sync"
	"time"
)

// entries idle longer than this are dropped by the janitor
const idleExpiry = 10 * time.Minute

type registryEntry struct {
	tracker  *Tracker
	lastSeen time.Time
}

// Registry hands out one Tracker per client key (the gateway keys on
// client IP) and expires entries that have been idle past their window.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*registryEntry
	now     func() time.Time
}

// NewRegistry creates a registry and starts its cleanup goroutine.
func NewRegistry() *Registry {
	r := &Registry{
		entries: make(map[string]*registryEntry),
		now:     time.Now,
	}
	go r.janitor()
	return r
}

// NewRegistryWithClock creates a registry with an injected clock for tests.
// No cleanup goroutine is started.
func NewRegistryWithClock(now func() time.Time) *Registry {
	return &Registry{
		entries: make(map[string]*registryEntry),
		now:     now,
	}
}

// Get returns the tracker for key, creating it on first use.
func (r *Registry) Get(key string) *Tracker {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[key]
	if !ok {
		e = &registryEntry{tracker: NewTrackerWithClock(r.now)}
		r.entries[key] = e
	}
	e.lastSeen = r.now()
	return e.tracker
}

// janitor periodically drops idle entries so the map cannot grow without
// bound under rotating client IPs.
func (r *Registry) janitor() {
	ticker := time.NewTicker(5 * time.Minute)
	for range ticker.C {
		cutoff := r.now().Add(-idleExpiry)
		r.mu.Lock()
		for key, e := range r.entries {
			if e.lastSeen.Before(cutoff) {
				delete(r.entries, key)
			}
		}
		r.mu.Unlock()
	}
}
