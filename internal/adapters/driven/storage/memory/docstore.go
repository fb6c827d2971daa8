// Package memory provides an in-memory implementation of the document
// working set. Contents are ephemeral: the store is cleared and rebuilt
// from the durable backend before every retrieval.
package memory

import (
	"context"
	"sync"

	"github.com/Sph3inz/MindFeed/internal/core/domain"
	"github.com/Sph3inz/MindFeed/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
// Iteration order is insertion order, which makes similarity tie-breaks
// deterministic.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]int // id -> index into order
	order     []domain.Document
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]int),
	}
}

// Filter returns documents matching the predicate in insertion order.
// A nil predicate matches everything.
func (s *DocumentStore) Filter(_ context.Context, pred func(domain.Document) bool) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Document, 0, len(s.order))
	for _, doc := range s.order {
		if pred == nil || pred(doc) {
			result = append(result, doc)
		}
	}
	return result, nil
}

// Write upserts documents by id. An existing id is replaced in place,
// keeping its original position.
func (s *DocumentStore) Write(_ context.Context, docs []domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range docs {
		if i, ok := s.documents[doc.ID]; ok {
			s.order[i] = doc
			continue
		}
		s.documents[doc.ID] = len(s.order)
		s.order = append(s.order, doc)
	}
	return nil
}

// Delete removes documents by id. Missing ids are ignored.
func (s *DocumentStore) Delete(_ context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	remove := make(map[string]bool, len(ids))
	for _, id := range ids {
		remove[id] = true
	}

	kept := s.order[:0]
	for _, doc := range s.order {
		if !remove[doc.ID] {
			kept = append(kept, doc)
		}
	}
	s.order = kept

	s.documents = make(map[string]int, len(s.order))
	for i, doc := range s.order {
		s.documents[doc.ID] = i
	}
	return nil
}

// Len returns the number of stored documents.
func (s *DocumentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
