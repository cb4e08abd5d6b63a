package hub

import (
	"sync"
	"time"

	"github.com/calliof/switchboard/internal/domain"
)

// reconnectTTL is how long a reconnect record stays usable after the last
// state change for its participant.
const reconnectTTL = 24 * time.Hour

// ReconnectStateStore keeps the per-participant reconnect hints that let
// a user resume an agent conversation after a dropped connection. Expiry
// is lazy: stale records are discarded on read, never swept.
type ReconnectStateStore struct {
	mu      sync.Mutex
	records map[string]domain.ReconnectRecord
	ttl     time.Duration
	now     func() time.Time
}

// NewReconnectStateStore creates an empty store with the default TTL.
func NewReconnectStateStore() *ReconnectStateStore {
	return &ReconnectStateStore{
		records: make(map[string]domain.ReconnectRecord),
		ttl:     reconnectTTL,
		now:     time.Now,
	}
}

// Persist records the participant's current routing state, refreshing the
// record's timestamp. For agents the stored agent id is forced to the
// agent's own identifier regardless of what the caller passes.
func (s *ReconnectStateStore) Persist(id string, role domain.Role, agentID string) {
	if role == domain.RoleAgent {
		agentID = id
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id] = domain.ReconnectRecord{
		UserID:    id,
		Role:      role,
		AgentID:   agentID,
		Timestamp: s.now(),
	}
}

// Get returns the participant's reconnect record if one exists and has
// not expired. An expired record is deleted on the spot.
func (s *ReconnectStateStore) Get(id string) (domain.ReconnectRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return domain.ReconnectRecord{}, false
	}
	if s.now().Sub(rec.Timestamp) > s.ttl {
		delete(s.records, id)
		return domain.ReconnectRecord{}, false
	}
	return rec, true
}

// Clear drops the participant's record. Safe to call when absent.
func (s *ReconnectStateStore) Clear(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
}
