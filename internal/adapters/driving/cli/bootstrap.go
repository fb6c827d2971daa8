package cli

import (
	"context"
	"fmt"

	"github.com/Sph3inz/MindFeed/internal/adapters/driven/ai"
	"github.com/Sph3inz/MindFeed/internal/adapters/driven/config/file"
	"github.com/Sph3inz/MindFeed/internal/adapters/driven/storage"
	"github.com/Sph3inz/MindFeed/internal/adapters/driven/storage/memory"
	"github.com/Sph3inz/MindFeed/internal/core/services"
	"github.com/Sph3inz/MindFeed/internal/logger"
)

// app bundles the assembled service with everything the commands need
// to run and shut it down.
type app struct {
	service *services.RetrievalService
	prompts *file.PromptStore

	closers []func() error
}

// close releases adapters in reverse construction order.
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Warn("Shutdown: %v", err)
		}
	}
}

// bootstrap loads configuration, validates the AI backends, opens the
// durable store and assembles an initialized retrieval service.
func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := file.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	a := &app{}
	ok := false
	defer func() {
		if !ok {
			a.close()
		}
	}()

	embeddingSettings := cfg.EmbeddingSettings()
	embeddingService, err := ai.CreateAndValidateEmbeddingService(&embeddingSettings)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, embeddingService.Close)

	generationSettings := cfg.GenerationSettings()
	generationService, err := ai.CreateAndValidateGenerationService(&generationSettings)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, generationService.Close)

	backend, err := storage.NewBackend(ctx, cfg.StorageSettings())
	if err != nil {
		return nil, fmt.Errorf("open document backend: %w", err)
	}
	a.closers = append(a.closers, backend.Close)

	prompts, err := file.NewPromptStore(cfg.Service.PromptDir)
	if err != nil {
		return nil, err
	}
	a.prompts = prompts

	store := memory.NewDocumentStore()
	a.service = services.NewRetrievalService(
		services.NewBatchEmbedder(embeddingService),
		store,
		backend,
		services.NewRetriever(store),
		services.NewOrchestrator(generationService, prompts, generationSettings),
	)
	if err := a.service.Initialize(ctx); err != nil {
		return nil, err
	}

	ok = true
	return a, nil
}
