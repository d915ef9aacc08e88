package service

import (
	"context"
	"sync"

	"github.com/freeeve/war-simulator/pkg/combat"
)

// MemorySessionStore keeps the battle session in process memory.
type MemorySessionStore struct {
	mu      sync.RWMutex
	session combat.Session
}

// NewMemorySessionStore returns a store holding the idle session.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

func (m *MemorySessionStore) Load(_ context.Context) (combat.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session, nil
}

func (m *MemorySessionStore) CompareAndSwap(_ context.Context, prev, next combat.Session) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.session.Matches(prev) {
		return false, nil
	}
	m.session = next
	return true, nil
}
