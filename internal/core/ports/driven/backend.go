// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import (
	"context"

	"github.com/Sph3inz/MindFeed/internal/core/domain"
)

// DocumentBackend is the durable, authoritative document store. The
// external collection holds one entry per document: content, title
// metadata, the embedding serialised as a plain numeric sequence, and a
// server-assigned write timestamp.
//
// Implementations:
//   - Firestore (the hosted notes backend)
//   - SQLite (local/offline)
//   - cached.Store (read-through decorator around either)
type DocumentBackend interface {
	// SaveDocuments writes documents, overwriting by id.
	SaveDocuments(ctx context.Context, docs []domain.Document) error

	// LoadDocuments returns the full collection.
	LoadDocuments(ctx context.Context) ([]domain.Document, error)

	// DeleteDocument removes a single document by id. The removal must
	// succeed in the durable store before it is considered complete.
	DeleteDocument(ctx context.Context, id string) error

	// DeleteDocuments removes documents by id.
	DeleteDocuments(ctx context.Context, ids []string) error

	// Close releases resources.
	Close() error
}
