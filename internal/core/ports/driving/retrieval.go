// Package driving provides interfaces for primary/inbound ports.
package driving

import (
	"context"

	"github.com/Sph3inz/MindFeed/internal/core/domain"
)

// RetrievalService is the retrieval-augmented question answering
// contract. One instance serves the whole process; operations are
// strictly sequential and not re-entrant.
type RetrievalService interface {
	// Refresh rebuilds the in-memory working set from the durable
	// store, regenerating and persisting missing embeddings. Returns
	// the count of documents holding a valid embedding.
	Refresh(ctx context.Context) (int, error)

	// Query answers a free-text question grounded in the corpus.
	Query(ctx context.Context, text string) (*domain.QueryResult, error)

	// AddNotes embeds and persists notes, assigning ids where absent.
	AddNotes(ctx context.Context, notes []domain.Note) (*domain.AddResult, error)

	// ClearDocuments empties the working set and the durable corpus.
	ClearDocuments(ctx context.Context) error

	// DeleteDocument removes a document from both stores. The durable
	// removal must succeed; its failure is propagated.
	DeleteDocument(ctx context.Context, id string) error
}
