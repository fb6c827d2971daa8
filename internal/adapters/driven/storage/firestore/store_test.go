package firestore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	firestore "google.golang.org/api/firestore/v1"

	"github.com/Sph3inz/MindFeed/internal/core/domain"
)

func TestEncodeFields_WithEmbedding(t *testing.T) {
	doc := domain.Document{
		ID:        "doc-1",
		Title:     "Sourdough",
		Content:   "feed the starter daily",
		Embedding: []float32{0.5, -0.25},
	}

	fields := encodeFields(&doc)

	assert.Equal(t, "feed the starter daily", fields["content"].StringValue)
	require.NotNil(t, fields["meta"].MapValue)
	assert.Equal(t, "Sourdough", fields["meta"].MapValue.Fields["title"].StringValue)

	embedding := fields["embedding"]
	require.NotNil(t, embedding.ArrayValue)
	require.Len(t, embedding.ArrayValue.Values, 2)
	assert.InDelta(t, 0.5, embedding.ArrayValue.Values[0].DoubleValue, 1e-6)
	assert.InDelta(t, -0.25, embedding.ArrayValue.Values[1].DoubleValue, 1e-6)
}

func TestEncodeFields_MissingEmbeddingIsNull(t *testing.T) {
	doc := domain.Document{ID: "doc-1", Content: "unembedded"}

	fields := encodeFields(&doc)

	assert.Nil(t, fields["embedding"].ArrayValue)
	assert.Equal(t, "NULL_VALUE", fields["embedding"].NullValue)
}

func TestDecodeDocument_RoundTrip(t *testing.T) {
	original := domain.Document{
		ID:        "doc-1",
		Title:     "Sourdough",
		Content:   "feed the starter daily",
		Embedding: []float32{0.5, -0.25, 1},
	}

	fdoc := &firestore.Document{
		Name:       "projects/p/databases/(default)/documents/documents/doc-1",
		Fields:     encodeFields(&original),
		UpdateTime: "2025-04-01T12:30:00.000000Z",
	}

	decoded, err := decodeDocument(fdoc)
	require.NoError(t, err)

	assert.Equal(t, original.ID, decoded.ID)
	assert.Equal(t, original.Title, decoded.Title)
	assert.Equal(t, original.Content, decoded.Content)
	require.Len(t, decoded.Embedding, 3)
	for i := range original.Embedding {
		assert.InDelta(t, original.Embedding[i], decoded.Embedding[i], 1e-6)
	}
	assert.Equal(t, 2025, decoded.UpdatedAt.Year())
}

func TestDecodeDocument_NullEmbedding(t *testing.T) {
	doc := domain.Document{ID: "doc-1", Content: "unembedded"}
	fdoc := &firestore.Document{
		Name:   "projects/p/databases/(default)/documents/documents/doc-1",
		Fields: encodeFields(&doc),
	}

	decoded, err := decodeDocument(fdoc)
	require.NoError(t, err)
	assert.False(t, decoded.HasEmbedding())
}

func TestIDFromName(t *testing.T) {
	assert.Equal(t, "abc", idFromName("projects/p/databases/(default)/documents/documents/abc"))
	assert.Equal(t, "bare", idFromName("bare"))
}
