package hub

// Balancer picks the least-loaded online agent for a new assignment.
type Balancer struct {
	presence    *PresenceTracker
	assignments *AssignmentTable
}

// NewBalancer creates a balancer over the given presence and assignment
// tables.
func NewBalancer(presence *PresenceTracker, assignments *AssignmentTable) *Balancer {
	return &Balancer{presence: presence, assignments: assignments}
}

// Pick returns the online agent with the fewest assigned users. Ties go
// to the agent that came online first, so repeated calls with identical
// state return the same agent. Returns false when no agent is online.
func (b *Balancer) Pick() (string, bool) {
	var (
		best     string
		bestLoad int
		found    bool
	)
	for _, agentID := range b.presence.Online() {
		load := b.assignments.Load(agentID)
		if !found || load < bestLoad {
			best, bestLoad, found = agentID, load, true
		}
	}
	return best, found
}
