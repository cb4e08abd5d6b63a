package hub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calliof/switchboard/internal/domain"
)

func TestReconnectStoreRoundTrip(t *testing.T) {
	s := NewReconnectStateStore()

	_, ok := s.Get("u1")
	assert.False(t, ok)

	s.Persist("u1", domain.RoleUser, "a1")
	rec, ok := s.Get("u1")
	require.True(t, ok)
	assert.Equal(t, "u1", rec.UserID)
	assert.Equal(t, domain.RoleUser, rec.Role)
	assert.Equal(t, "a1", rec.AgentID)
	assert.False(t, rec.Timestamp.IsZero())

	s.Clear("u1")
	_, ok = s.Get("u1")
	assert.False(t, ok)
}

func TestReconnectStoreAgentRecordsOwnID(t *testing.T) {
	s := NewReconnectStateStore()
	s.Persist("a1", domain.RoleAgent, "something-else")
	rec, ok := s.Get("a1")
	require.True(t, ok)
	assert.Equal(t, "a1", rec.AgentID)
}

func TestReconnectStoreLazyExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := NewReconnectStateStore()
	s.now = func() time.Time { return now }

	s.Persist("u1", domain.RoleUser, "a1")

	now = now.Add(reconnectTTL)
	_, ok := s.Get("u1")
	assert.True(t, ok, "record at exactly the TTL boundary is still valid")

	now = now.Add(time.Minute)
	_, ok = s.Get("u1")
	assert.False(t, ok)

	// Expired records are gone for good, not just hidden.
	now = now.Add(-2 * time.Hour)
	_, ok = s.Get("u1")
	assert.False(t, ok)
}

func TestReconnectStorePersistRefreshesTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := NewReconnectStateStore()
	s.now = func() time.Time { return now }

	s.Persist("u1", domain.RoleUser, "")
	now = now.Add(23 * time.Hour)
	s.Persist("u1", domain.RoleUser, "a1")

	now = now.Add(2 * time.Hour)
	rec, ok := s.Get("u1")
	require.True(t, ok)
	assert.Equal(t, "a1", rec.AgentID)
}
