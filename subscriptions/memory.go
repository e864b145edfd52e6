package subscriptions

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store used when Redis is not configured, and
// by tests.
type MemoryStore struct {
	mu          sync.RWMutex
	publishers  map[string]map[string]bool
	journalists map[string]map[string]bool
}

// NewMemoryStore creates an empty in-memory subscription store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		publishers:  make(map[string]map[string]bool),
		journalists: make(map[string]map[string]bool),
	}
}

func (m *MemoryStore) SubscribePublisher(_ context.Context, publisherID, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.publishers[publisherID] == nil {
		m.publishers[publisherID] = make(map[string]bool)
	}
	m.publishers[publisherID][email] = true
	return nil
}

func (m *MemoryStore) UnsubscribePublisher(_ context.Context, publisherID, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.publishers[publisherID], email)
	return nil
}

func (m *MemoryStore) SubscribeJournalist(_ context.Context, journalistID, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.journalists[journalistID] == nil {
		m.journalists[journalistID] = make(map[string]bool)
	}
	m.journalists[journalistID][email] = true
	return nil
}

func (m *MemoryStore) UnsubscribeJournalist(_ context.Context, journalistID, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.journalists[journalistID], email)
	return nil
}

func (m *MemoryStore) PublisherSubscribers(_ context.Context, publisherID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return keys(m.publishers[publisherID]), nil
}

func (m *MemoryStore) JournalistSubscribers(_ context.Context, journalistID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return keys(m.journalists[journalistID]), nil
}

func keys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}
