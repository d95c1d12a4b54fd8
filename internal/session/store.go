package session

import (
	"context"
	"sync"
)

// Store persists sessions for the duration of an interactive session. The
// default implementation is process memory; a redis-backed one exists for
// deployments with more than one replica.
type Store interface {
	Put(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// MemoryStore keeps sessions in a mutex-guarded map. Sessions vanish with
// the process, which is the intended lifetime.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

func (m *MemoryStore) Put(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = snapshot(s)
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return snapshot(s), nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// snapshot copies a session so callers never share the stored Fields map.
func snapshot(s *Session) *Session {
	cp := *s
	if s.Fields != nil {
		cp.Fields = s.Fields.Clone()
	}
	return &cp
}
