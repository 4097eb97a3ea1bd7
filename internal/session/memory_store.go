package session

import (
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory. Used in tests and small
// single-instance deployments.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
}

type memoryEntry struct {
	data      Data
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: map[string]memoryEntry{}}
}

func (s *MemoryStore) Create(data Data, ttl time.Duration) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.sessions[hashToken(token)] = memoryEntry{data: data, expiresAt: time.Now().Add(ttl)}
	s.mu.Unlock()

	return token, nil
}

func (s *MemoryStore) Get(token string) (*Data, error) {
	key := hashToken(token)

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[key]
	if !ok {
		return nil, ErrNotFound
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.sessions, key)
		return nil, ErrNotFound
	}

	data := entry.data
	return &data, nil
}

func (s *MemoryStore) Destroy(token string) error {
	s.mu.Lock()
	delete(s.sessions, hashToken(token))
	s.mu.Unlock()
	return nil
}
