package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/Sph3inz/MindFeed/internal/core/domain"
	"github.com/Sph3inz/MindFeed/internal/core/ports/driven"
	"github.com/Sph3inz/MindFeed/internal/logger"
)

// ScoredDocument pairs a document with its raw cosine similarity to the
// query vector.
type ScoredDocument struct {
	Document   domain.Document
	Similarity float64
}

// Retriever ranks the documents of a store against a query vector by
// cosine similarity.
type Retriever struct {
	store driven.DocumentStore
}

// NewRetriever creates a retriever over the given store.
func NewRetriever(store driven.DocumentStore) *Retriever {
	return &Retriever{store: store}
}

// Retrieve returns the k most similar documents to the query vector, in
// descending similarity order. Documents without an embedding are
// skipped rather than treated as errors; ties keep the store's
// insertion order.
func (r *Retriever) Retrieve(ctx context.Context, query []float32, k int) ([]ScoredDocument, error) {
	if len(query) == 0 {
		logger.Warn("Retrieval skipped: query has no embedding")
		return nil, nil
	}

	docs, err := r.store.Filter(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	scored := make([]ScoredDocument, 0, len(docs))
	for _, doc := range docs {
		if !doc.HasEmbedding() {
			logger.Warn("Document %s has no embedding, skipping", doc.ID)
			continue
		}
		scored = append(scored, ScoredDocument{
			Document:   doc,
			Similarity: domain.CosineSimilarity(query, doc.Embedding),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})

	if k > 0 && len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}
