package session

import (
	"context"
	"sync"
	"time"

	"teledetect-platform/internal/model"
)

type memoryEntry struct {
	token     string
	expiresAt time.Time
}

// MemoryStore is an in-process Store used by the test suites in place of
// Redis. Expiry is checked lazily on Get.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: map[string]memoryEntry{},
		now:     time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, userID string, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[Key(userID)] = memoryEntry{
		token:     token,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[Key(userID)]
	if !ok {
		return "", model.ErrNoSession
	}

	if s.now().After(entry.expiresAt) {
		delete(s.entries, Key(userID))
		return "", model.ErrNoSession
	}

	return entry.token, nil
}

func (s *MemoryStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, Key(userID))
	return nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}
