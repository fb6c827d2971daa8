package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Sph3inz/MindFeed/internal/core/domain"
	"github.com/Sph3inz/MindFeed/internal/core/ports/driven"
	"github.com/Sph3inz/MindFeed/internal/core/ports/driving"
	"github.com/Sph3inz/MindFeed/internal/logger"
)

// State is the lifecycle state of the retrieval service.
type State int

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
	StateBusy
	// StateFailed is terminal: a service that failed to initialise
	// never serves commands.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateBusy:
		return "busy"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// RetrievalService composes embedding, retrieval and generation into
// the query/insert/sync/delete contract. One instance serves the whole
// process; operations are strictly sequential and not re-entrant, so
// the state field needs no locking.
type RetrievalService struct {
	embedder     *BatchEmbedder
	store        driven.DocumentStore
	backend      driven.DocumentBackend
	retriever    *Retriever
	orchestrator *Orchestrator

	state State
}

// NewRetrievalService wires the retrieval service. Initialize must be
// called before any operation.
func NewRetrievalService(
	embedder *BatchEmbedder,
	store driven.DocumentStore,
	backend driven.DocumentBackend,
	retriever *Retriever,
	orchestrator *Orchestrator,
) *RetrievalService {
	return &RetrievalService{
		embedder:     embedder,
		store:        store,
		backend:      backend,
		retriever:    retriever,
		orchestrator: orchestrator,
	}
}

// State returns the current lifecycle state.
func (s *RetrievalService) State() State {
	return s.state
}

// Initialize warms up the embedding provider and performs the initial
// corpus load. A failure here is terminal: the service transitions to
// StateFailed and every later operation is rejected.
func (s *RetrievalService) Initialize(ctx context.Context) error {
	if s.state != StateUninitialized {
		return fmt.Errorf("initialize: service is %s", s.state)
	}
	s.state = StateInitializing
	logger.Info("Initializing retrieval service...")

	if err := s.embedder.Warmup(ctx); err != nil {
		s.state = StateFailed
		return fmt.Errorf("%w: %w", domain.ErrStartupFailed, err)
	}
	count, err := s.refresh(ctx)
	if err != nil {
		s.state = StateFailed
		return fmt.Errorf("%w: %w", domain.ErrStartupFailed, err)
	}

	s.state = StateReady
	logger.Info("Retrieval service initialized with %d documents", count)
	return nil
}

// begin rejects operations unless the service is ready, then marks it
// busy for the duration of the operation.
func (s *RetrievalService) begin() error {
	if s.state != StateReady {
		return fmt.Errorf("%w: service is %s", domain.ErrNotReady, s.state)
	}
	s.state = StateBusy
	return nil
}

func (s *RetrievalService) end() {
	s.state = StateReady
}

// Refresh rebuilds the in-memory working set from the durable store.
func (s *RetrievalService) Refresh(ctx context.Context) (int, error) {
	if err := s.begin(); err != nil {
		return 0, err
	}
	defer s.end()
	return s.refresh(ctx)
}

// refresh reloads all documents from the backend, clears the working
// set, regenerates and persists any missing embeddings, and writes the
// documents that hold a valid embedding. Returns that count.
func (s *RetrievalService) refresh(ctx context.Context) (int, error) {
	logger.Debug("Refreshing documents from the durable store...")

	docs, err := s.backend.LoadDocuments(ctx)
	if err != nil {
		return 0, fmt.Errorf("load documents: %w", err)
	}

	// Clear the previous working set before writing the fresh one.
	existing, err := s.store.Filter(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("list working set: %w", err)
	}
	if len(existing) > 0 {
		ids := make([]string, len(existing))
		for i, doc := range existing {
			ids[i] = doc.ID
		}
		if err := s.store.Delete(ctx, ids); err != nil {
			return 0, fmt.Errorf("clear working set: %w", err)
		}
	}

	if len(docs) == 0 {
		return 0, nil
	}

	// Regenerate embeddings for documents that lost or never had one,
	// persisting the repaired documents before serving them.
	var missing []int
	for i, doc := range docs {
		if !doc.HasEmbedding() {
			logger.Warn("Document %s has no embedding, regenerating...", doc.ID)
			missing = append(missing, i)
		}
	}
	if len(missing) > 0 {
		texts := make([]string, len(missing))
		for i, idx := range missing {
			texts[i] = docs[idx].Content
		}
		repaired := make([]domain.Document, 0, len(missing))
		for i, result := range s.embedder.EmbedAll(ctx, texts) {
			idx := missing[i]
			if result.Err != nil {
				logger.Error("Failed to regenerate embedding for document %s: %v", docs[idx].ID, result.Err)
				continue
			}
			docs[idx].Embedding = result.Vector
			repaired = append(repaired, docs[idx])
		}
		if len(repaired) > 0 {
			if err := s.backend.SaveDocuments(ctx, repaired); err != nil {
				return 0, fmt.Errorf("persist regenerated embeddings: %w", err)
			}
		}
	}

	valid := make([]domain.Document, 0, len(docs))
	for _, doc := range docs {
		if doc.HasEmbedding() {
			valid = append(valid, doc)
		}
	}
	if len(valid) == 0 {
		logger.Warn("No documents with valid embeddings found")
		return 0, nil
	}

	if err := s.store.Write(ctx, valid); err != nil {
		return 0, fmt.Errorf("write working set: %w", err)
	}
	logger.Debug("Refreshed %d documents with valid embeddings", len(valid))
	return len(valid), nil
}

// Query answers a free-text question grounded in the corpus, refreshing
// the working set first.
func (s *RetrievalService) Query(ctx context.Context, text string) (*domain.QueryResult, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	start := time.Now()
	timing := map[string]float64{}

	count, err := s.refresh(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return &domain.QueryResult{
			Answer:            domain.NoDocumentsAnswer,
			RelevantDocuments: []domain.RetrievedDocument{},
			Timing:            map[string]float64{domain.StageTotal: 0},
		}, nil
	}

	embedStart := time.Now()
	queryVector, err := s.embedder.EmbedOne(ctx, text)
	if err != nil {
		return nil, err
	}
	timing[domain.StageEmbedding] = msSince(embedStart)

	retrieveStart := time.Now()
	scored, err := s.retriever.Retrieve(ctx, queryVector, domain.TopK)
	if err != nil {
		return nil, err
	}
	timing[domain.StageRetrieval] = msSince(retrieveStart)

	if len(scored) == 0 {
		return &domain.QueryResult{
			Answer:            domain.NoMatchesAnswer,
			RelevantDocuments: []domain.RetrievedDocument{},
			Timing:            timing,
		}, nil
	}

	docs := make([]domain.Document, len(scored))
	for i, sd := range scored {
		docs[i] = sd.Document
	}
	outcome, err := s.orchestrator.Answer(ctx, text, docs)
	if err != nil {
		return nil, err
	}
	timing[domain.StagePrompt] = outcome.PromptMillis
	timing[domain.StageGeneration] = outcome.GenerationMillis

	results := make([]domain.RetrievedDocument, len(scored))
	for i, sd := range scored {
		title := sd.Document.Title
		if title == "" {
			title = domain.UntitledTitle
		}
		results[i] = domain.RetrievedDocument{
			Title:      title,
			Content:    sd.Document.Snippet(),
			Similarity: domain.SimilarityPercent(sd.Similarity),
		}
	}

	timing[domain.StageTotal] = msSince(start)
	return &domain.QueryResult{
		Answer:            outcome.Answer,
		RelevantDocuments: results,
		Timing:            timing,
	}, nil
}

// AddNotes embeds the notes in one batched pass and persists them,
// assigning ids to notes that lack one. Notes whose embedding failed
// are still persisted and picked up by a later refresh.
func (s *RetrievalService) AddNotes(ctx context.Context, notes []domain.Note) (*domain.AddResult, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	docs := make([]domain.Document, len(notes))
	texts := make([]string, len(notes))
	for i, note := range notes {
		id := note.ID
		if id == "" {
			id = uuid.NewString()
		}
		docs[i] = domain.Document{
			ID:      id,
			Title:   note.Title,
			Content: strings.TrimSpace(note.Content),
		}
		texts[i] = docs[i].Content
	}

	logger.Info("Generating embeddings for %d documents...", len(docs))
	for i, result := range s.embedder.EmbedAll(ctx, texts) {
		if result.Err != nil {
			logger.Warn("Embedding failed for document %s: %v", docs[i].ID, result.Err)
			continue
		}
		docs[i].Embedding = result.Vector
	}

	if err := s.backend.SaveDocuments(ctx, docs); err != nil {
		return nil, fmt.Errorf("save documents: %w", err)
	}

	cached := 0
	for _, doc := range docs {
		if doc.HasEmbedding() {
			cached++
		}
	}
	logger.Info("Successfully added %d documents", len(docs))
	return &domain.AddResult{
		Success:       true,
		Message:       "Documents added successfully",
		DocumentCount: len(docs),
		CachedCount:   cached,
	}, nil
}

// ClearDocuments removes the current corpus from the working set and
// the durable store.
func (s *RetrievalService) ClearDocuments(ctx context.Context) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	existing, err := s.store.Filter(ctx, nil)
	if err != nil {
		return fmt.Errorf("list working set: %w", err)
	}
	if len(existing) == 0 {
		logger.Info("No documents to clear")
		return nil
	}

	ids := make([]string, len(existing))
	for i, doc := range existing {
		ids[i] = doc.ID
	}
	if err := s.store.Delete(ctx, ids); err != nil {
		return fmt.Errorf("clear working set: %w", err)
	}
	if err := s.backend.DeleteDocuments(ctx, ids); err != nil {
		logger.Warn("Failed to delete %d documents from the durable store: %v", len(ids), err)
	} else {
		logger.Info("Cleared %d documents from both stores", len(ids))
	}
	return nil
}

// DeleteDocument removes a single document from both stores. The
// durable removal must succeed; its failure is propagated.
func (s *RetrievalService) DeleteDocument(ctx context.Context, id string) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	if err := s.store.Delete(ctx, []string{id}); err != nil {
		return fmt.Errorf("delete from working set: %w", err)
	}
	if err := s.backend.DeleteDocument(ctx, id); err != nil {
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	logger.Info("Successfully deleted document %s from all stores", id)
	return nil
}
