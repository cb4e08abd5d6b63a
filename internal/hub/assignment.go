package hub

import (
	"sync"

	"github.com/calliof/switchboard/internal/logging"
)

// AssignmentTable holds the bidirectional user/agent mapping: a forward
// map from user to assigned agent and a reverse map from agent to the
// set of users currently assigned to it. Both halves are updated under
// one mutex so no reader observes a half-applied assignment.
type AssignmentTable struct {
	mu      sync.RWMutex
	byUser  map[string]string
	byAgent map[string]map[string]struct{}
	log     *logging.Logger
}

// NewAssignmentTable creates an empty table.
func NewAssignmentTable(log *logging.Logger) *AssignmentTable {
	return &AssignmentTable{
		byUser:  make(map[string]string),
		byAgent: make(map[string]map[string]struct{}),
		log:     log,
	}
}

// Assign binds a user to an agent, updating both halves together. If the
// user was bound to a different agent it is removed from that agent's set
// first. Returns false when the pair was already bound, so callers can
// skip re-sending handoff notifications.
func (t *AssignmentTable) Assign(userID, agentID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if prev, ok := t.byUser[userID]; ok {
		if prev == agentID {
			return false
		}
		if set, ok := t.byAgent[prev]; ok {
			delete(set, userID)
		}
	}
	t.byUser[userID] = agentID
	set, ok := t.byAgent[agentID]
	if !ok {
		set = make(map[string]struct{})
		t.byAgent[agentID] = set
	}
	set[userID] = struct{}{}
	t.log.Info().Str("user_id", userID).Str("agent_id", agentID).Msg("user assigned to agent")
	return true
}

// Unassign removes a user's binding from both halves. Returns the agent
// the user was bound to, if any.
func (t *AssignmentTable) Unassign(userID string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	agentID, ok := t.byUser[userID]
	if !ok {
		return "", false
	}
	delete(t.byUser, userID)
	if set, ok := t.byAgent[agentID]; ok {
		delete(set, userID)
	}
	return agentID, true
}

// AgentOf returns the agent a user is bound to.
func (t *AssignmentTable) AgentOf(userID string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	agentID, ok := t.byUser[userID]
	return agentID, ok
}

// UsersOf returns the users bound to an agent. Order is unspecified.
func (t *AssignmentTable) UsersOf(agentID string) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	set := t.byAgent[agentID]
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

// Load returns the number of users bound to an agent. Agents without an
// entry have load zero.
func (t *AssignmentTable) Load(agentID string) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.byAgent[agentID])
}

// EnsureAgent creates an empty user set for an agent if it has none, so
// a freshly connected agent is immediately eligible for assignments.
func (t *AssignmentTable) EnsureAgent(agentID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.byAgent[agentID]; !ok {
		t.byAgent[agentID] = make(map[string]struct{})
	}
}

// DropAgent removes an agent's entry from the reverse map and returns the
// users that were in it. Forward pointers are left in place: users keep a
// stale assignedAgent reference until the next routing decision, which is
// what lets them resume with the same agent if it comes back.
func (t *AssignmentTable) DropAgent(agentID string) []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	set, ok := t.byAgent[agentID]
	if !ok {
		return nil
	}
	delete(t.byAgent, agentID)
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}
