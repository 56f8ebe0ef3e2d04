package ratelimit_test

import (
	"testing"
	"time"

	"go-forms-gateway/pkg/ratelimit"

	"github.com/stretchr/testify/assert"
)

// fakeClock advances manually so the window and debounce rules can be
// tested deterministically.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (fc *fakeClock) Now() time.Time          { return fc.now }
func (fc *fakeClock) Advance(d time.Duration) { fc.now = fc.now.Add(d) }

func TestTrackerFirstAttemptAllowed(t *testing.T) {
	clock := newFakeClock()
	tr := ratelimit.NewTrackerWithClock(clock.Now)
	assert.True(t, tr.Allow())
}

func TestTrackerDebounce(t *testing.T) {
	clock := newFakeClock()
	tr := ratelimit.NewTrackerWithClock(clock.Now)

	assert.True(t, tr.Allow())

	clock.Advance(500 * time.Millisecond)
	assert.False(t, tr.Allow(), "double submit within 2s must be rejected")

	clock.Advance(2 * time.Second)
	assert.True(t, tr.Allow())
}

func TestTrackerRapidBurstNeverExceedsThree(t *testing.T) {
	clock := newFakeClock()
	tr := ratelimit.NewTrackerWithClock(clock.Now)

	accepted := 0
	for i := 0; i < 4; i++ {
		if tr.Allow() {
			accepted++
		}
		clock.Advance(300 * time.Millisecond)
	}
	assert.LessOrEqual(t, accepted, 3)
	assert.Equal(t, 1, accepted, "300ms spacing falls inside the debounce")
}

func TestTrackerCapPerWindow(t *testing.T) {
	clock := newFakeClock()
	tr := ratelimit.NewTrackerWithClock(clock.Now)

	// three attempts spaced past the debounce all pass
	for i := 0; i < 3; i++ {
		assert.True(t, tr.Allow(), "attempt %d", i+1)
		clock.Advance(3 * time.Second)
	}

	// the fourth inside the same minute is rejected
	assert.False(t, tr.Allow())

	// still rejected right before the window closes
	clock.Advance(45 * time.Second)
	assert.False(t, tr.Allow())
}

func TestTrackerWindowReset(t *testing.T) {
	clock := newFakeClock()
	tr := ratelimit.NewTrackerWithClock(clock.Now)

	for i := 0; i < 3; i++ {
		assert.True(t, tr.Allow())
		clock.Advance(3 * time.Second)
	}
	assert.False(t, tr.Allow())

	// more than a minute after the last recorded attempt: always accepted
	clock.Advance(61 * time.Second)
	assert.True(t, tr.Allow())
}

func TestTrackerRejectionDoesNotAdvanceWindow(t *testing.T) {
	clock := newFakeClock()
	tr := ratelimit.NewTrackerWithClock(clock.Now)

	assert.True(t, tr.Allow())
	clock.Advance(1 * time.Second)
	assert.False(t, tr.Allow())

	// only one more second needed: the rejection above must not have
	// restarted the debounce
	clock.Advance(1 * time.Second)
	assert.True(t, tr.Allow())
}

func TestTrackerReset(t *testing.T) {
	clock := newFakeClock()
	tr := ratelimit.NewTrackerWithClock(clock.Now)

	for i := 0; i < 3; i++ {
		assert.True(t, tr.Allow())
		clock.Advance(3 * time.Second)
	}
	assert.False(t, tr.Allow())

	tr.Reset()
	assert.True(t, tr.Allow())
}

func TestRegistryIsolatesClients(t *testing.T) {
	clock := newFakeClock()
	reg := ratelimit.NewRegistryWithClock(clock.Now)

	assert.True(t, reg.Get("1.2.3.4").Allow())
	clock.Advance(100 * time.Millisecond)

	// a different client is not affected by the first one's debounce
	assert.True(t, reg.Get("5.6.7.8").Allow())
	assert.False(t, reg.Get("1.2.3.4").Allow())
}

func TestRegistryReturnsSameTracker(t *testing.T) {
	reg := ratelimit.NewRegistryWithClock(newFakeClock().Now)
	assert.Same(t, reg.Get("1.2.3.4"), reg.Get("1.2.3.4"))
}
