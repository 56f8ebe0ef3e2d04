package ratelimit

import (
	"sync"
	"time"
)

const (
	// Rolling window and cap for accepted submissions per client.
	windowDuration = time.Minute
	maxPerWindow   = 3

	// Minimum gap between accepted submissions, against double submits.
	debounce = 2 * time.Second
)

// Tracker throttles repeated submissions from one client. It keeps a
// rolling one-minute window with a hard cap of three accepted attempts and
// a two-second debounce. This is a soft UX safeguard, not a security
// boundary; real abuse prevention lives at the relay service.
type Tracker struct {
	mu    sync.Mutex
	now   func() time.Time
	last  time.Time
	count int
}

// NewTracker creates a tracker using the wall clock.
func NewTracker() *Tracker {
	return &Tracker{now: time.Now}
}

// NewTrackerWithClock creates a tracker with an injected clock for tests.
func NewTrackerWithClock(now func() time.Time) *Tracker {
	return &Tracker{now: now}
}

// Allow reports whether a submission attempt may proceed and, when it may,
// records it. A rejected attempt does not advance the window; an attempt
// more than a minute after the last recorded one is always accepted.
func (t *Tracker) Allow() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	elapsed := now.Sub(t.last)

	if elapsed > windowDuration {
		t.count = 0
	}
	if t.count >= maxPerWindow && elapsed < windowDuration {
		return false
	}
	if elapsed < debounce {
		return false
	}

	t.last = now
	t.count++
	return true
}

// Reset clears the tracker state, as a full page reload would.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last = time.Time{}
	t.count = 0
}
