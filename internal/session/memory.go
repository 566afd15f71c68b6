package session

import (
	"context"
	"sync"
	"time"

	"whatsapp-orderbot/internal/common/metrics"
)

type memoryEntry struct {
	pending   PendingOrder
	expiresAt time.Time
}

// MemoryStore is the single-process session backend. Entries expire lazily on
// read; Sweep can be run periodically to reclaim memory.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: map[string]memoryEntry{},
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *MemoryStore) Get(ctx context.Context, sender string) (*PendingOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[sender]
	if !ok {
		return nil, nil
	}
	if m.now().After(entry.expiresAt) {
		delete(m.entries, sender)
		metrics.SessionsActive.Set(float64(len(m.entries)))
		return nil, nil
	}

	pending := clonePending(entry.pending)
	return &pending, nil
}

func (m *MemoryStore) Put(ctx context.Context, sender string, pending *PendingOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[sender] = memoryEntry{
		pending:   clonePending(*pending),
		expiresAt: m.now().Add(m.ttl),
	}
	metrics.SessionsActive.Set(float64(len(m.entries)))
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, sender string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, sender)
	metrics.SessionsActive.Set(float64(len(m.entries)))
	return nil
}

// clonePending copies the wizard state including the Fields map, so callers
// never share a map with the store.
func clonePending(pending PendingOrder) PendingOrder {
	if pending.Fields != nil {
		fields := make(map[string]string, len(pending.Fields))
		for k, v := range pending.Fields {
			fields[k] = v
		}
		pending.Fields = fields
	}
	return pending
}

// Sweep removes expired entries and returns how many were dropped.
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	dropped := 0
	for sender, entry := range m.entries {
		if now.After(entry.expiresAt) {
			delete(m.entries, sender)
			dropped++
		}
	}
	metrics.SessionsActive.Set(float64(len(m.entries)))
	return dropped
}
