// Package hub implements the connection/session routing core: it
// registers connections, tracks agent presence and load, assigns users
// to agents, persists reconnect state, throttles reconnect storms, and
// routes every inbound envelope to the right destination.
package hub

import (
	"sync"

	"github.com/calliof/switchboard/internal/domain"
	"github.com/calliof/switchboard/internal/logging"
	"github.com/calliof/switchboard/internal/protocol"
)

// Conn is the transport handle the hub writes outbound envelopes to.
// Implementations must be safe for concurrent Send calls.
type Conn interface {
	Send(env protocol.Envelope) error
	Close() error
}

// Connection is a registered participant: identifier, declared role, and
// live transport handle.
type Connection struct {
	ID   string
	Role domain.Role
	Conn Conn
}

// ConnectionRegistry is the source of truth for "is this participant
// currently connected". It does not close stale handles; callers must do
// so before registering a replacement if they want a clean handoff.
type ConnectionRegistry struct {
	mu    sync.RWMutex
	conns map[string]Connection
	log   *logging.Logger
}

// NewConnectionRegistry creates an empty registry.
func NewConnectionRegistry(log *logging.Logger) *ConnectionRegistry {
	return &ConnectionRegistry{
		conns: make(map[string]Connection),
		log:   log,
	}
}

// Register stores a connection, overwriting any prior entry for the same
// identifier (last-writer-wins: a reconnect on a new transport supersedes
// the old one).
func (r *ConnectionRegistry) Register(id string, role domain.Role, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[id] = Connection{ID: id, Role: role, Conn: conn}
	r.log.Info().Str("id", id).Str("role", string(role)).Int("total", len(r.conns)).Msg("connection registered")
}

// Lookup returns the connection for an identifier.
func (r *ConnectionRegistry) Lookup(id string) (Connection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.conns[id]
	return c, ok
}

// Remove deletes the entry for an identifier, but only while it still
// points at conn; a nil conn removes unconditionally. It reports whether
// an entry was removed. A mismatch means a newer transport already took
// the identity over, and its cleanup belongs to that connection.
func (r *ConnectionRegistry) Remove(id string, conn Conn) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.conns[id]
	if !ok {
		return false
	}
	if conn != nil && c.Conn != conn {
		return false
	}
	delete(r.conns, id)
	r.log.Info().Str("id", id).Int("total", len(r.conns)).Msg("connection removed")
	return true
}

// Count returns the number of registered connections.
func (r *ConnectionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// CloseAll closes every registered transport and empties the registry.
func (r *ConnectionRegistry) CloseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, c := range r.conns {
		c.Conn.Close()
		delete(r.conns, id)
	}
}
