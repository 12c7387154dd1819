package registry

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store for tests and single-node use.
type MemoryStore struct {
	mu        sync.RWMutex
	schemas   map[uuid.UUID]*Schema
	registers map[uuid.UUID]*Register
}

// NewMemoryStore builds an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		schemas:   make(map[uuid.UUID]*Schema),
		registers: make(map[uuid.UUID]*Register),
	}
}

func (m *MemoryStore) PutSchema(ctx context.Context, s *Schema) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.schemas[s.ID] = &cp
	return nil
}

func (m *MemoryStore) GetSchema(ctx context.Context, id uuid.UUID) (*Schema, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.schemas[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *MemoryStore) DeleteSchema(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.schemas[id]; !ok {
		return ErrNotFound
	}
	delete(m.schemas, id)
	return nil
}

func (m *MemoryStore) ListSchemas(ctx context.Context) ([]*Schema, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Schema, 0, len(m.schemas))
	for _, s := range m.schemas {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MemoryStore) PutRegister(ctx context.Context, r *Register) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	m.registers[r.ID] = &cp
	return nil
}

func (m *MemoryStore) GetRegister(ctx context.Context, id uuid.UUID) (*Register, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.registers[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *MemoryStore) DeleteRegister(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.registers[id]; !ok {
		return ErrNotFound
	}
	delete(m.registers, id)
	return nil
}

func (m *MemoryStore) ListRegisters(ctx context.Context) ([]*Register, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Register, 0, len(m.registers))
	for _, r := range m.registers {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MemoryStore) Close() error { return nil }
