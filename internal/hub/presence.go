package hub

import "sync"

// PresenceTracker remembers which agents are marked available for new
// assignments. Agent identifiers are kept in the order they first came
// online so that load-balancing ties break deterministically.
type PresenceTracker struct {
	mu     sync.RWMutex
	online map[string]bool
	order  []string
}

// NewPresenceTracker creates an empty tracker.
func NewPresenceTracker() *PresenceTracker {
	return &PresenceTracker{online: make(map[string]bool)}
}

// MarkOnline records an agent as available. Idempotent: marking an agent
// online twice keeps its place in the scan order.
func (p *PresenceTracker) MarkOnline(agentID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.online[agentID] {
		return
	}
	p.online[agentID] = true
	p.order = append(p.order, agentID)
}

// MarkOffline removes an agent from the available set.
func (p *PresenceTracker) MarkOffline(agentID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.online[agentID] {
		return
	}
	delete(p.online, agentID)
	for i, id := range p.order {
		if id == agentID {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

// IsOnline reports whether an agent is currently available.
func (p *PresenceTracker) IsOnline(agentID string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.online[agentID]
}

// Online returns the available agents in the order they came online.
func (p *PresenceTracker) Online() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// OnlineCount returns the number of available agents.
func (p *PresenceTracker) OnlineCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.order)
}
