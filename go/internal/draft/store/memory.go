package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps session records in memory. Used in tests and for
// drafts that do not need to survive a restart.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[uuid.UUID][]byte)}
}

// Load implements Store.
func (m *MemoryStore) Load(_ context.Context, sessionID uuid.UUID) (*SessionRecord, error) {
	m.mu.RLock()
	data, ok := m.records[sessionID]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	var rec SessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode session record: %w", err)
	}
	return &rec, nil
}

// Save implements Store. Records are stored serialized so callers can never
// alias the stored state.
func (m *MemoryStore) Save(_ context.Context, rec *SessionRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}

	m.mu.Lock()
	m.records[rec.Session.ID] = data
	m.mu.Unlock()
	return nil
}
