package domain

import "time"

// SnippetLength is the maximum number of characters of document content
// included in query results before truncation.
const SnippetLength = 200

// Note is a user-submitted note as received from the client application.
// Content is expected to be already sanitised; HTML stripping happens
// upstream in the notes app.
type Note struct {
	// ID is the client-assigned identifier. Empty when the client leaves
	// id assignment to the service.
	ID string `json:"id,omitempty"`

	// Title is the human-readable note title.
	Title string `json:"title"`

	// Content is the full note text.
	Content string `json:"content"`
}

// Document is the canonical representation of a note inside the retrieval
// pipeline: content plus its vector embedding.
type Document struct {
	// ID is the unique identifier for the document within the corpus.
	ID string

	// Title is the human-readable title, stored as metadata alongside
	// the content in the durable store.
	Title string

	// Content is the full text the embedding was computed from.
	Content string

	// Embedding is the vector representation for similarity search.
	// Nil means the document has not been embedded yet; such documents
	// are never matched against a query.
	Embedding []float32

	// UpdatedAt is the server-assigned time of the last write.
	UpdatedAt time.Time
}

// HasEmbedding reports whether the document holds a usable vector.
func (d Document) HasEmbedding() bool {
	return len(d.Embedding) > 0
}

// Snippet returns the document content truncated to SnippetLength
// characters with a trailing ellipsis, for display in query results.
func (d Document) Snippet() string {
	runes := []rune(d.Content)
	if len(runes) <= SnippetLength {
		return d.Content
	}
	return string(runes[:SnippetLength]) + "..."
}
