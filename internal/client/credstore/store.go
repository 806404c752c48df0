// Package credstore persists the single bearer credential of the client.
//
// Store has no failure path: a read fault is reported as "no credential" and
// a write fault is logged. At most one credential is held at a time.
package credstore

import (
	"context"
	"sync"
)

// Store holds at most one credential. Get reports false when none is held.
type Store interface {
	Get(ctx context.Context) (string, bool)
	Set(ctx context.Context, token string)
	Clear(ctx context.Context)
}

// MemoryStore keeps the credential in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Get(ctx context.Context) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != ""
}

func (m *MemoryStore) Set(ctx context.Context, token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
}

func (m *MemoryStore) Clear(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
}
