package session

import (
	"context"
	"sync"
)

// Store supplies and persists a Context per participant. Get creates a fresh
// session on first contact. Callers must serialize turns per participant;
// Lock provides the per-participant critical section.
type Store interface {
	Get(ctx context.Context, participantID string) (*Context, error)
	Save(ctx context.Context, participantID string, sc *Context) error
	// Lock blocks until the participant's session is exclusively held and
	// returns the unlock function.
	Lock(participantID string) func()
}

// MemoryStore keeps sessions in process memory. Suitable for development and
// single-instance deployments.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*Context
	locks    *keyedMutex
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Context),
		locks:    newKeyedMutex(),
	}
}

// Get returns the participant's session, creating one on first contact.
func (s *MemoryStore) Get(_ context.Context, participantID string) (*Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sc, ok := s.sessions[participantID]; ok {
		return sc, nil
	}
	sc := NewContext()
	s.sessions[participantID] = sc
	return sc, nil
}

// Save stores the session. For the in-memory store the pointer handed out by
// Get is authoritative, so Save only records it.
func (s *MemoryStore) Save(_ context.Context, participantID string, sc *Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[participantID] = sc
	return nil
}

// Lock acquires the participant's turn lock.
func (s *MemoryStore) Lock(participantID string) func() {
	return s.locks.lock(participantID)
}

// keyedMutex hands out one mutex per key. Entries are never evicted; the key
// space is bounded by the participant population, same as the session map.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()
	m.Lock()
	return m.Unlock
}
