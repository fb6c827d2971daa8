package cached

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sph3inz/MindFeed/internal/core/domain"
)

// fakeBackend records calls and serves as the durable store in tests.
type fakeBackend struct {
	docs       map[string]domain.Document
	saveCalls  [][]string // ids per SaveDocuments call
	loadCalls  int
	saveErr    error
	deleteErr  error
	closeCalls int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{docs: make(map[string]domain.Document)}
}

func (b *fakeBackend) SaveDocuments(_ context.Context, docs []domain.Document) error {
	if b.saveErr != nil {
		return b.saveErr
	}
	ids := make([]string, len(docs))
	for i, d := range docs {
		b.docs[d.ID] = d
		ids[i] = d.ID
	}
	b.saveCalls = append(b.saveCalls, ids)
	return nil
}

func (b *fakeBackend) LoadDocuments(_ context.Context) ([]domain.Document, error) {
	b.loadCalls++
	docs := make([]domain.Document, 0, len(b.docs))
	for _, d := range b.docs {
		docs = append(docs, d)
	}
	return docs, nil
}

func (b *fakeBackend) DeleteDocument(_ context.Context, id string) error {
	if b.deleteErr != nil {
		return b.deleteErr
	}
	delete(b.docs, id)
	return nil
}

func (b *fakeBackend) DeleteDocuments(_ context.Context, ids []string) error {
	if b.deleteErr != nil {
		return b.deleteErr
	}
	for _, id := range ids {
		delete(b.docs, id)
	}
	return nil
}

func (b *fakeBackend) Close() error {
	b.closeCalls++
	return nil
}

func makeDocs(n int) []domain.Document {
	docs := make([]domain.Document, n)
	for i := range docs {
		docs[i] = domain.Document{
			ID:        string(rune('a' + i)),
			Title:     "Note",
			Content:   "content",
			Embedding: []float32{float32(i), 1},
		}
	}
	return docs
}

func TestStore_SaveDocuments_BatchesOfFive(t *testing.T) {
	backend := newFakeBackend()
	store := New(backend)

	err := store.SaveDocuments(context.Background(), makeDocs(12))
	require.NoError(t, err)

	require.Len(t, backend.saveCalls, 3)
	assert.Len(t, backend.saveCalls[0], 5)
	assert.Len(t, backend.saveCalls[1], 5)
	assert.Len(t, backend.saveCalls[2], 2)
	assert.Equal(t, 12, store.Len())
}

func TestStore_SaveDocuments_BackendErrorSurfaced(t *testing.T) {
	backend := newFakeBackend()
	backend.saveErr = errors.New("firestore: unavailable")
	store := New(backend)

	err := store.SaveDocuments(context.Background(), makeDocs(3))
	require.Error(t, err)
	assert.Equal(t, 0, store.Len())
}

func TestStore_LoadDocuments_ReadThrough(t *testing.T) {
	backend := newFakeBackend()
	store := New(backend)
	ctx := context.Background()

	require.NoError(t, store.SaveDocuments(ctx, makeDocs(3)))
	store.Reset()

	// First load scans the backend.
	docs, err := store.LoadDocuments(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 3)
	assert.Equal(t, 1, backend.loadCalls)

	// Second load is served from cache.
	docs, err = store.LoadDocuments(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 3)
	assert.Equal(t, 1, backend.loadCalls)
}

func TestStore_RoundTrip_PreservesDocuments(t *testing.T) {
	backend := newFakeBackend()
	store := New(backend)
	ctx := context.Background()

	saved := []domain.Document{{
		ID:        "doc-1",
		Title:     "Trip notes",
		Content:   "remember the lighthouse",
		Embedding: []float32{0.25, -0.5, 0.75},
	}}
	require.NoError(t, store.SaveDocuments(ctx, saved))
	store.Reset()

	loaded, err := store.LoadDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, saved[0].ID, loaded[0].ID)
	assert.Equal(t, saved[0].Title, loaded[0].Title)
	assert.Equal(t, saved[0].Content, loaded[0].Content)
	require.Len(t, loaded[0].Embedding, 3)
	for i := range saved[0].Embedding {
		assert.InDelta(t, saved[0].Embedding[i], loaded[0].Embedding[i], 1e-6)
	}
}

func TestStore_DeleteDocument_RemovesFromBothStores(t *testing.T) {
	backend := newFakeBackend()
	store := New(backend)
	ctx := context.Background()

	require.NoError(t, store.SaveDocuments(ctx, makeDocs(2)))
	require.NoError(t, store.DeleteDocument(ctx, "a"))

	assert.Equal(t, 1, store.Len())
	_, ok := backend.docs["a"]
	assert.False(t, ok)
}

func TestStore_DeleteDocument_BackendErrorKeepsCache(t *testing.T) {
	backend := newFakeBackend()
	store := New(backend)
	ctx := context.Background()

	require.NoError(t, store.SaveDocuments(ctx, makeDocs(2)))
	backend.deleteErr = errors.New("firestore: permission denied")

	err := store.DeleteDocument(ctx, "a")
	require.Error(t, err)
	assert.Equal(t, 2, store.Len())
}

func TestStore_DeleteDocuments_Bulk(t *testing.T) {
	backend := newFakeBackend()
	store := New(backend)
	ctx := context.Background()

	require.NoError(t, store.SaveDocuments(ctx, makeDocs(4)))
	require.NoError(t, store.DeleteDocuments(ctx, []string{"a", "c"}))

	docs, err := store.LoadDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "b", docs[0].ID)
	assert.Equal(t, "d", docs[1].ID)
}

func TestStore_Close_ClosesBackend(t *testing.T) {
	backend := newFakeBackend()
	store := New(backend)
	require.NoError(t, store.Close())
	assert.Equal(t, 1, backend.closeCalls)
}
