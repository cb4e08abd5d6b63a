package store

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/calliof/switchboard/internal/domain"
)

// LeadStore persists contact-capture submissions. Saving must be safe to
// call before any lead has ever been written.
type LeadStore interface {
	// Save records a lead. A generated id and timestamp are filled in.
	Save(userID string, contact map[string]string) (*domain.Lead, error)

	// List returns leads in reverse chronological order, up to limit
	// (0 means a default of 100).
	List(limit int) ([]domain.Lead, error)
}

// SQLiteLeadStore implements LeadStore backed by SQLite.
type SQLiteLeadStore struct {
	db *DB
}

// NewSQLiteLeadStore creates a lead store using the given database.
func NewSQLiteLeadStore(db *DB) *SQLiteLeadStore {
	return &SQLiteLeadStore{db: db}
}

func (s *SQLiteLeadStore) Save(userID string, contact map[string]string) (*domain.Lead, error) {
	lead := &domain.Lead{
		ID:        uuid.New().String(),
		UserID:    userID,
		Contact:   contact,
		CreatedAt: time.Now(),
	}

	payload, err := json.Marshal(contact)
	if err != nil {
		return nil, fmt.Errorf("marshaling contact: %w", err)
	}

	_, err = s.db.sql.Exec(
		`INSERT INTO leads (id, user_id, contact, created_at) VALUES (?, ?, ?, ?)`,
		lead.ID, lead.UserID, string(payload), lead.CreatedAt.Format(time.DateTime),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting lead: %w", err)
	}

	s.db.log.Info().Str("leadId", lead.ID).Str("userId", userID).Msg("lead saved")
	return lead, nil
}

func (s *SQLiteLeadStore) List(limit int) ([]domain.Lead, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.sql.Query(
		`SELECT id, user_id, contact, created_at FROM leads ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []domain.Lead
	for rows.Next() {
		var lead domain.Lead
		var contact, createdAt string
		if err := rows.Scan(&lead.ID, &lead.UserID, &contact, &createdAt); err != nil {
			continue
		}
		lead.CreatedAt, _ = time.Parse(time.DateTime, createdAt)
		_ = json.Unmarshal([]byte(contact), &lead.Contact)
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

// MemoryLeadStore is an in-memory LeadStore implementation.
type MemoryLeadStore struct {
	mu    sync.Mutex
	leads []domain.Lead
}

// NewMemoryLeadStore creates an in-memory lead store.
func NewMemoryLeadStore() *MemoryLeadStore {
	return &MemoryLeadStore{}
}

func (s *MemoryLeadStore) Save(userID string, contact map[string]string) (*domain.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lead := domain.Lead{
		ID:        uuid.New().String(),
		UserID:    userID,
		Contact:   contact,
		CreatedAt: time.Now(),
	}
	s.leads = append(s.leads, lead)
	return &lead, nil
}

func (s *MemoryLeadStore) List(limit int) ([]domain.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 100
	}
	out := make([]domain.Lead, 0, limit)
	for i := len(s.leads) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.leads[i])
	}
	return out, nil
}
