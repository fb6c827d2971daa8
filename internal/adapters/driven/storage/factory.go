// Package storage provides factory functions for creating the durable
// document backend.
package storage

import (
	"context"
	"fmt"

	"github.com/Sph3inz/MindFeed/internal/adapters/driven/storage/cached"
	"github.com/Sph3inz/MindFeed/internal/adapters/driven/storage/firestore"
	"github.com/Sph3inz/MindFeed/internal/adapters/driven/storage/sqlite"
	"github.com/Sph3inz/MindFeed/internal/core/domain"
	"github.com/Sph3inz/MindFeed/internal/core/ports/driven"
)

// NewBackend creates the configured durable backend wrapped in the
// read-through cache. The cached store is what the retrieval service
// sees; the raw backend never leaves this package.
func NewBackend(ctx context.Context, settings domain.StorageSettings) (*cached.Store, error) {
	base, err := newRawBackend(ctx, settings)
	if err != nil {
		return nil, err
	}
	return cached.New(base), nil
}

// newRawBackend selects the durable store implementation.
func newRawBackend(ctx context.Context, settings domain.StorageSettings) (driven.DocumentBackend, error) {
	switch settings.Backend {
	case domain.StorageBackendFirestore:
		return firestore.NewStore(ctx, firestore.Config{
			ProjectID:       settings.ProjectID,
			Collection:      settings.Collection,
			CredentialsFile: settings.CredentialsFile,
		})

	case domain.StorageBackendSQLite, "":
		// SQLite is the default: it needs no credentials and keeps the
		// service usable offline.
		return sqlite.NewStore(settings.DataDir)

	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", settings.Backend)
	}
}
