package hub

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/calliof/switchboard/internal/domain"
)

const (
	// responderWindow is the number of trailing history turns handed to
	// the automated responder on each call.
	responderWindow = 10
	// historyLimit bounds the stored history per session.
	historyLimit = 50
)

type sessionEntry struct {
	sess *domain.Session
	// composeMu serializes automated-reply composition for one user so
	// two in-flight responder calls never interleave their history
	// updates.
	composeMu sync.Mutex
}

// SessionTable owns the per-user conversation sessions: dialog stage,
// collected data, rolling history, and the stable thread identifier.
type SessionTable struct {
	mu      sync.RWMutex
	entries map[string]*sessionEntry
	now     func() time.Time
}

// NewSessionTable creates an empty table.
func NewSessionTable() *SessionTable {
	return &SessionTable{
		entries: make(map[string]*sessionEntry),
		now:     time.Now,
	}
}

func (t *SessionTable) entry(userID string) *sessionEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[userID]
	if !ok {
		now := t.now()
		e = &sessionEntry{sess: &domain.Session{
			UserID:    userID,
			Stage:     domain.StageCategory,
			Data:      make(map[string]string),
			ThreadID:  uuid.NewString(),
			CreatedAt: now,
			UpdatedAt: now,
		}}
		t.entries[userID] = e
	}
	return e
}

// GetOrCreate returns a snapshot of the user's session, creating it in
// the category stage with a fresh thread identifier on first contact.
func (t *SessionTable) GetOrCreate(userID string) domain.Session {
	e := t.entry(userID)
	t.mu.RLock()
	defer t.mu.RUnlock()
	return *e.sess
}

// Stage returns the user's current dialog stage, creating the session if
// needed.
func (t *SessionTable) Stage(userID string) domain.Stage {
	e := t.entry(userID)
	t.mu.RLock()
	defer t.mu.RUnlock()
	return e.sess.Stage
}

// SetStage moves the user's session to the given stage.
func (t *SessionTable) SetStage(userID string, stage domain.Stage) {
	e := t.entry(userID)
	t.mu.Lock()
	defer t.mu.Unlock()
	e.sess.Stage = stage
	e.sess.UpdatedAt = t.now()
}

// MarkLeftAgent records that the user just ended an agent conversation:
// the session enters the post-agent stage and the next automated reply
// will be the welcome content instead of a responder call.
func (t *SessionTable) MarkLeftAgent(userID string) {
	e := t.entry(userID)
	t.mu.Lock()
	defer t.mu.Unlock()
	e.sess.Stage = domain.StagePostAgent
	e.sess.JustLeftAgent = true
	e.sess.UpdatedAt = t.now()
}

// ConsumeWelcomeBack reports whether the user is in the post-agent stage
// awaiting its welcome-back reply. When true the session transitions back
// to the category stage and the flag is cleared, so the check fires at
// most once per agent conversation.
func (t *SessionTable) ConsumeWelcomeBack(userID string) bool {
	e := t.entry(userID)
	t.mu.Lock()
	defer t.mu.Unlock()
	if e.sess.Stage != domain.StagePostAgent || !e.sess.JustLeftAgent {
		return false
	}
	e.sess.Stage = domain.StageCategory
	e.sess.JustLeftAgent = false
	e.sess.UpdatedAt = t.now()
	return true
}

// AppendTurn records a history turn. A user turn identical to the
// previous user turn is dropped so impatient re-sends do not duplicate
// responder context. Stored history is trimmed to a fixed bound.
func (t *SessionTable) AppendTurn(userID, role, content string) {
	e := t.entry(userID)
	t.mu.Lock()
	defer t.mu.Unlock()
	h := e.sess.History
	if role == domain.TurnUser && len(h) > 0 {
		last := h[len(h)-1]
		if last.Role == domain.TurnUser && last.Content == content {
			return
		}
	}
	h = append(h, domain.Turn{Role: role, Content: content})
	if len(h) > historyLimit {
		h = h[len(h)-historyLimit:]
	}
	e.sess.History = h
	e.sess.UpdatedAt = t.now()
}

// ResponderTurns returns the trailing history window handed to the
// automated responder.
func (t *SessionTable) ResponderTurns(userID string) []domain.Turn {
	e := t.entry(userID)
	t.mu.RLock()
	defer t.mu.RUnlock()
	h := e.sess.History
	if len(h) > responderWindow {
		h = h[len(h)-responderWindow:]
	}
	out := make([]domain.Turn, len(h))
	copy(out, h)
	return out
}

// ComposeLock returns the per-user mutex serializing responder calls.
func (t *SessionTable) ComposeLock(userID string) *sync.Mutex {
	return &t.entry(userID).composeMu
}
