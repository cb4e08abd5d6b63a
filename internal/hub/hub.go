package hub

import (
	"github.com/calliof/switchboard/internal/logging"
	"github.com/calliof/switchboard/internal/responder"
	"github.com/calliof/switchboard/internal/store"
)

// Hub owns the routing state for one switchboard instance: the
// connection registry, agent presence, user/agent assignments, per-user
// sessions, reconnect records, and the connection-attempt guard. All
// envelope handling goes through its Handle* methods.
type Hub struct {
	registry    *ConnectionRegistry
	presence    *PresenceTracker
	assignments *AssignmentTable
	balancer    *Balancer
	sessions    *SessionTable
	reconnects  *ReconnectStateStore
	attempts    *ConnectionAttemptGuard

	responder responder.Client
	leads     store.LeadStore
	log       *logging.Logger
}

// New wires a hub around the given automated responder and lead store.
func New(rsp responder.Client, leads store.LeadStore, log *logging.Logger) *Hub {
	assignments := NewAssignmentTable(log.Sub("assignments"))
	presence := NewPresenceTracker()
	return &Hub{
		registry:    NewConnectionRegistry(log.Sub("registry")),
		presence:    presence,
		assignments: assignments,
		balancer:    NewBalancer(presence, assignments),
		sessions:    NewSessionTable(),
		reconnects:  NewReconnectStateStore(),
		attempts:    NewConnectionAttemptGuard(),
		responder:   rsp,
		leads:       leads,
		log:         log,
	}
}

// ConnectionCount reports the number of live connections, for the health
// endpoint.
func (h *Hub) ConnectionCount() int {
	return h.registry.Count()
}

// OnlineAgentCount reports the number of available agents.
func (h *Hub) OnlineAgentCount() int {
	return h.presence.OnlineCount()
}

// RecordConnectionFailure counts an abnormal connection teardown against
// the participant's reconnect allowance.
func (h *Hub) RecordConnectionFailure(id string) {
	if id == "" {
		return
	}
	h.attempts.RecordFailure(id)
}

// Shutdown closes every live connection.
func (h *Hub) Shutdown() {
	h.registry.CloseAll()
}
