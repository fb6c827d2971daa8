// Package cached provides a read-through cache decorator around a
// durable document backend.
//
// The first load performs a full scan of the durable store and
// populates a local cache; subsequent loads are served from the cache
// without touching the backend. The cache is never invalidated within
// the process lifetime: this process is assumed to be the single writer
// for its corpus, so every external change flows through this layer.
package cached

import (
	"context"
	"sync"
	"time"

	"github.com/Sph3inz/MindFeed/internal/core/domain"
	"github.com/Sph3inz/MindFeed/internal/core/ports/driven"
	"github.com/Sph3inz/MindFeed/internal/logger"
)

// SaveBatchSize is the number of documents written to the durable store
// per batch.
const SaveBatchSize = 5

// Ensure Store implements the interface.
var _ driven.DocumentBackend = (*Store)(nil)

// entry is a cached document snapshot with its last-write time.
type entry struct {
	doc       domain.Document
	writtenAt time.Time
}

// Store decorates a driven.DocumentBackend with a local read cache.
type Store struct {
	backend driven.DocumentBackend

	mu    sync.RWMutex
	cache map[string]int // id -> index into order
	order []entry
}

// New creates a cached store around the given durable backend.
func New(backend driven.DocumentBackend) *Store {
	return &Store{
		backend: backend,
		cache:   make(map[string]int),
	}
}

// SaveDocuments writes documents to the durable store in batches of
// SaveBatchSize, overwriting by id. Cache entries are updated only for
// batches whose durable write succeeded; a failed batch aborts the save
// and surfaces the backend error.
func (s *Store) SaveDocuments(ctx context.Context, docs []domain.Document) error {
	for start := 0; start < len(docs); start += SaveBatchSize {
		end := start + SaveBatchSize
		if end > len(docs) {
			end = len(docs)
		}
		batch := docs[start:end]

		if err := s.backend.SaveDocuments(ctx, batch); err != nil {
			return err
		}

		now := time.Now()
		s.mu.Lock()
		for _, doc := range batch {
			s.put(doc, now)
		}
		s.mu.Unlock()
	}
	return nil
}

// LoadDocuments returns the corpus. When the cache holds entries they
// are returned as-is (stale-but-fast); otherwise the durable store is
// scanned in full and the cache populated from the result.
func (s *Store) LoadDocuments(ctx context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	if len(s.order) > 0 {
		docs := s.snapshot()
		s.mu.RUnlock()
		logger.Info("Returning %d documents from cache", len(docs))
		return docs, nil
	}
	s.mu.RUnlock()

	docs, err := s.backend.LoadDocuments(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	s.mu.Lock()
	for _, doc := range docs {
		s.put(doc, now)
	}
	loaded := s.snapshot()
	s.mu.Unlock()

	logger.Info("Loaded %d documents from durable store", len(loaded))
	return loaded, nil
}

// DeleteDocument removes a document from the durable store and, once
// that succeeds, from the local cache. A backend failure leaves the
// cache untouched and is surfaced to the caller.
func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	if err := s.backend.DeleteDocument(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	s.remove([]string{id})
	s.mu.Unlock()
	return nil
}

// DeleteDocuments removes documents from the durable store and the
// local cache.
func (s *Store) DeleteDocuments(ctx context.Context, ids []string) error {
	if err := s.backend.DeleteDocuments(ctx, ids); err != nil {
		return err
	}

	s.mu.Lock()
	s.remove(ids)
	s.mu.Unlock()
	return nil
}

// Close releases the underlying backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// Reset discards all cached entries, forcing the next load to scan the
// durable store. Used at startup and in tests; during normal operation
// the cache is deliberately never invalidated.
func (s *Store) Reset() {
	s.mu.Lock()
	s.cache = make(map[string]int)
	s.order = nil
	s.mu.Unlock()
}

// Len returns the number of cached documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// put upserts a cache entry. Caller holds the write lock.
func (s *Store) put(doc domain.Document, now time.Time) {
	if i, ok := s.cache[doc.ID]; ok {
		s.order[i] = entry{doc: doc, writtenAt: now}
		return
	}
	s.cache[doc.ID] = len(s.order)
	s.order = append(s.order, entry{doc: doc, writtenAt: now})
}

// remove drops entries by id and reindexes. Caller holds the write lock.
func (s *Store) remove(ids []string) {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	kept := s.order[:0]
	for _, e := range s.order {
		if !drop[e.doc.ID] {
			kept = append(kept, e)
		}
	}
	s.order = kept

	s.cache = make(map[string]int, len(s.order))
	for i, e := range s.order {
		s.cache[e.doc.ID] = i
	}
}

// snapshot copies cached documents in insertion order. Caller holds at
// least the read lock.
func (s *Store) snapshot() []domain.Document {
	docs := make([]domain.Document, len(s.order))
	for i, e := range s.order {
		docs[i] = e.doc
	}
	return docs
}
