package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sph3inz/MindFeed/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNewStore_RunsMigrations(t *testing.T) {
	store := newTestStore(t)

	docs, err := store.LoadDocuments(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
	assert.NotEmpty(t, store.Path())
}

func TestStore_SaveAndLoad_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	saved := []domain.Document{
		{ID: "doc-1", Title: "Gardening", Content: "tomatoes need sun", Embedding: []float32{0.1, -0.2, 0.3}},
		{ID: "doc-2", Title: "Reading list", Content: "finish the essay collection"},
	}
	require.NoError(t, store.SaveDocuments(ctx, saved))

	loaded, err := store.LoadDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	byID := map[string]domain.Document{}
	for _, d := range loaded {
		byID[d.ID] = d
	}

	doc1 := byID["doc-1"]
	assert.Equal(t, "Gardening", doc1.Title)
	assert.Equal(t, "tomatoes need sun", doc1.Content)
	require.Len(t, doc1.Embedding, 3)
	for i, want := range []float32{0.1, -0.2, 0.3} {
		assert.InDelta(t, want, doc1.Embedding[i], 1e-6)
	}
	assert.False(t, doc1.UpdatedAt.IsZero())

	// A document saved without an embedding comes back without one.
	assert.False(t, byID["doc-2"].HasEmbedding())
}

func TestStore_SaveDocuments_OverwritesByID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveDocuments(ctx, []domain.Document{
		{ID: "doc-1", Title: "Old", Content: "old content"},
	}))
	require.NoError(t, store.SaveDocuments(ctx, []domain.Document{
		{ID: "doc-1", Title: "New", Content: "new content", Embedding: []float32{1}},
	}))

	loaded, err := store.LoadDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "New", loaded[0].Title)
	assert.True(t, loaded[0].HasEmbedding())
}

func TestStore_DeleteDocument(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveDocuments(ctx, []domain.Document{
		{ID: "doc-1"}, {ID: "doc-2"},
	}))

	require.NoError(t, store.DeleteDocument(ctx, "doc-1"))

	loaded, err := store.LoadDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "doc-2", loaded[0].ID)
}

func TestStore_DeleteDocument_NotFound(t *testing.T) {
	store := newTestStore(t)

	err := store.DeleteDocument(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_DeleteDocuments_IgnoresMissing(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveDocuments(ctx, []domain.Document{
		{ID: "doc-1"}, {ID: "doc-2"}, {ID: "doc-3"},
	}))

	require.NoError(t, store.DeleteDocuments(ctx, []string{"doc-1", "doc-3", "missing"}))

	loaded, err := store.LoadDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "doc-2", loaded[0].ID)
}
