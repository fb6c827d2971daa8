// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import (
	"context"

	"github.com/Sph3inz/MindFeed/internal/core/domain"
)

// DocumentStore is the ephemeral in-memory working set of documents.
// It is rebuilt from the DocumentBackend before every retrieval and is
// never authoritative.
type DocumentStore interface {
	// Filter returns documents matching the predicate, in insertion
	// order. A nil predicate matches everything.
	Filter(ctx context.Context, pred func(domain.Document) bool) ([]domain.Document, error)

	// Write upserts documents by id.
	Write(ctx context.Context, docs []domain.Document) error

	// Delete removes documents by id. Missing ids are ignored.
	Delete(ctx context.Context, ids []string) error
}
