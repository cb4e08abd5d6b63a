package hub

import (
	"sync"
	"time"
)

const (
	// attemptResetGap is the quiet period after which a participant's
	// failure count resets to zero.
	attemptResetGap = 5 * time.Minute
	// attemptFreeFailures is how many failures are tolerated before
	// cooldowns kick in.
	attemptFreeFailures = 5
	// attemptBaseCooldown doubles per failure past the free allowance.
	attemptBaseCooldown = time.Second
	// attemptMaxCooldown caps the exponential cooldown.
	attemptMaxCooldown = 30 * time.Second
)

type attemptCounter struct {
	count int
	last  time.Time
}

// ConnectionAttemptGuard throttles reconnect storms. Connection failures
// are counted per participant; once the count passes the free allowance,
// new connection attempts are rejected until an exponentially growing
// cooldown elapses. Passing a cooldown or staying quiet for the reset gap
// clears the count. The guard only gates connection establishment; it
// never slows down an established connection.
type ConnectionAttemptGuard struct {
	mu       sync.Mutex
	counters map[string]*attemptCounter
	now      func() time.Time
}

// NewConnectionAttemptGuard creates an empty guard.
func NewConnectionAttemptGuard() *ConnectionAttemptGuard {
	return &ConnectionAttemptGuard{
		counters: make(map[string]*attemptCounter),
		now:      time.Now,
	}
}

// RecordFailure counts a connection error for the participant. The count
// restarts from one when the previous failure is older than the reset
// gap.
func (g *ConnectionAttemptGuard) RecordFailure(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.now()
	c, ok := g.counters[id]
	if !ok || now.Sub(c.last) > attemptResetGap {
		c = &attemptCounter{}
		g.counters[id] = c
	}
	c.count++
	c.last = now
}

// ShouldAllow reports whether the participant may attempt a connection
// now. Participants with no recorded failures are always allowed. A
// participant inside a cooldown is rejected; once the cooldown elapses
// (or the reset gap passes) its counter is cleared and the attempt is
// allowed.
func (g *ConnectionAttemptGuard) ShouldAllow(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	c, ok := g.counters[id]
	if !ok || c.count == 0 {
		return true
	}
	now := g.now()
	if now.Sub(c.last) > attemptResetGap {
		delete(g.counters, id)
		return true
	}
	if c.count <= attemptFreeFailures {
		return true
	}
	cooldown := attemptBaseCooldown << uint(c.count-attemptFreeFailures)
	if cooldown > attemptMaxCooldown || cooldown <= 0 {
		cooldown = attemptMaxCooldown
	}
	if now.Sub(c.last) >= cooldown {
		delete(g.counters, id)
		return true
	}
	return false
}
