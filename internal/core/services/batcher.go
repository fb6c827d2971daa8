package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Sph3inz/MindFeed/internal/core/domain"
	"github.com/Sph3inz/MindFeed/internal/core/ports/driven"
	"github.com/Sph3inz/MindFeed/internal/logger"
)

const (
	// EmbedBatchSize is the number of texts embedded per batch. Batches
	// run one after another so a slow provider never sees more than one
	// batch of concurrent requests.
	EmbedBatchSize = 32

	// EmbedConcurrency bounds the in-flight requests within a batch.
	EmbedConcurrency = 4

	// warmupProbe is the throwaway text embedded once at startup to
	// verify the provider works and to fix the vector dimension for the
	// rest of the session.
	warmupProbe = "warmup"
)

// EmbedResult is the outcome of embedding a single text. Exactly one of
// Vector and Err is set.
type EmbedResult struct {
	Vector []float32
	Err    error
}

// BatchEmbedder wraps an embedding provider with warm-up, bounded
// concurrency and dimension checking. The dimension observed during
// Warmup becomes the contract for every later embedding: a vector of a
// different length is rejected rather than stored.
type BatchEmbedder struct {
	provider  driven.EmbeddingService
	dimension int
}

// NewBatchEmbedder creates a batch embedder over the given provider.
func NewBatchEmbedder(provider driven.EmbeddingService) *BatchEmbedder {
	return &BatchEmbedder{provider: provider}
}

// Warmup embeds a probe text to prime the provider and record the
// embedding dimension for the session. It must be called before
// EmbedAll or EmbedOne.
func (b *BatchEmbedder) Warmup(ctx context.Context) error {
	start := time.Now()

	vector, err := b.provider.Embed(ctx, warmupProbe)
	if err != nil {
		return fmt.Errorf("warm up embedding provider: %w", err)
	}
	if len(vector) == 0 {
		return fmt.Errorf("warm up embedding provider: empty vector from %s", b.provider.ModelName())
	}

	b.dimension = len(vector)
	logger.Info("Embedding provider %s warmed up: dimension=%d (%.0fms)",
		b.provider.ModelName(), b.dimension, msSince(start))
	return nil
}

// Dimension returns the vector dimension fixed by Warmup, or 0 before
// warm-up.
func (b *BatchEmbedder) Dimension() int {
	return b.dimension
}

// EmbedOne embeds a single text, typically a query. The vector is
// validated against the session dimension.
func (b *BatchEmbedder) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	vector, err := b.provider.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed text: %w", err)
	}
	if err := b.checkDimension(vector); err != nil {
		return nil, err
	}
	return vector, nil
}

// EmbedAll embeds texts in batches of EmbedBatchSize with at most
// EmbedConcurrency requests in flight. The result slice is positional:
// result[i] always corresponds to texts[i], and a failed text carries
// its error instead of aborting the rest.
func (b *BatchEmbedder) EmbedAll(ctx context.Context, texts []string) []EmbedResult {
	results := make([]EmbedResult, len(texts))
	if len(texts) == 0 {
		return results
	}

	start := time.Now()
	for offset := 0; offset < len(texts); offset += EmbedBatchSize {
		end := min(offset+EmbedBatchSize, len(texts))
		b.embedBatch(ctx, texts[offset:end], results[offset:end])
		logger.Debug("Embedded batch %d-%d of %d", offset, end, len(texts))
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	logger.Info("Embedded %d/%d texts (%.0fms)", len(texts)-failed, len(texts), msSince(start))
	return results
}

// embedBatch fills results for one batch. All workers are joined before
// it returns, so the next batch never overlaps with this one.
func (b *BatchEmbedder) embedBatch(ctx context.Context, texts []string, results []EmbedResult) {
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(EmbedConcurrency)

	for i, text := range texts {
		group.Go(func() error {
			vector, err := b.provider.Embed(ctx, text)
			if err == nil {
				err = b.checkDimension(vector)
			}
			if err != nil {
				results[i] = EmbedResult{Err: err}
				return nil
			}
			results[i] = EmbedResult{Vector: vector}
			return nil
		})
	}

	// Workers never return errors; Wait is purely the join point.
	_ = group.Wait()
}

func (b *BatchEmbedder) checkDimension(vector []float32) error {
	if b.dimension != 0 && len(vector) != b.dimension {
		return fmt.Errorf("%w: got %d, want %d", domain.ErrDimensionMismatch, len(vector), b.dimension)
	}
	return nil
}

// msSince returns the elapsed time since start in milliseconds.
func msSince(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
