// Package store keeps articles, publishers, and readers in memory with
// thread-safe access. It is the trigger source for the approval pipeline:
// every save reports the approved flag as it stood immediately before the
// write, read and swapped under one lock so concurrent edits cannot produce
// a stale comparison.
package store

import (
	"fmt"
	"sync"
	"time"

	"newswire/types"
)

// Store holds all domain records with thread-safe access.
type Store struct {
	mu         sync.RWMutex
	articles   map[string]*types.Article
	publishers map[string]*types.Publisher
	readers    map[string]*types.Reader
}

// New creates an empty store.
func New() *Store {
	return &Store{
		articles:   make(map[string]*types.Article),
		publishers: make(map[string]*types.Publisher),
		readers:    make(map[string]*types.Reader),
	}
}

// SaveArticle inserts or updates an article and returns the stored copy plus
// the approved flag as it was before this write. For a new article the
// previous flag is false, so creating an article already approved counts as
// a rising edge.
func (s *Store) SaveArticle(a *types.Article) (*types.Article, bool, error) {
	if a == nil || a.ID == "" {
		return nil, false, fmt.Errorf("article missing ID")
	}
	if a.AuthorID == "" {
		return nil, false, fmt.Errorf("article %s missing author", a.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prevApproved := false
	now := time.Now()
	if existing, ok := s.articles[a.ID]; ok {
		prevApproved = existing.Approved
		a.CreatedAt = existing.CreatedAt
	} else if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now

	stored := *a
	s.articles[a.ID] = &stored

	snapshot := stored
	return &snapshot, prevApproved, nil
}

// GetArticle returns a copy of the article, or nil if unknown.
func (s *Store) GetArticle(id string) *types.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.articles[id]
	if !ok {
		return nil
	}
	snapshot := *a
	return &snapshot
}

// ListArticles returns copies of all articles, optionally approved-only.
func (s *Store) ListArticles(approvedOnly bool) []*types.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*types.Article, 0, len(s.articles))
	for _, a := range s.articles {
		if approvedOnly && !a.Approved {
			continue
		}
		snapshot := *a
		out = append(out, &snapshot)
	}
	return out
}

// SavePublisher inserts or updates a publisher.
func (s *Store) SavePublisher(p *types.Publisher) error {
	if p == nil || p.ID == "" {
		return fmt.Errorf("publisher missing ID")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	stored := *p
	s.publishers[p.ID] = &stored
	return nil
}

// GetPublisher returns a copy of the publisher, or nil if unknown.
func (s *Store) GetPublisher(id string) *types.Publisher {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.publishers[id]
	if !ok {
		return nil
	}
	snapshot := *p
	return &snapshot
}

// ListPublishers returns copies of all publishers.
func (s *Store) ListPublishers() []*types.Publisher {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*types.Publisher, 0, len(s.publishers))
	for _, p := range s.publishers {
		snapshot := *p
		out = append(out, &snapshot)
	}
	return out
}

// SaveReader inserts or updates a reader.
func (s *Store) SaveReader(r *types.Reader) error {
	if r == nil || r.ID == "" {
		return fmt.Errorf("reader missing ID")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *r
	s.readers[r.ID] = &stored
	return nil
}

// GetReader returns a copy of the reader, or nil if unknown.
func (s *Store) GetReader(id string) *types.Reader {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.readers[id]
	if !ok {
		return nil
	}
	snapshot := *r
	return &snapshot
}
