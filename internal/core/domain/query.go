package domain

// NoDocumentsAnswer is returned by Query when the corpus is empty.
const NoDocumentsAnswer = "No documents found in the knowledge base."

// NoMatchesAnswer is returned by Query when retrieval produced no
// candidates for a non-empty corpus.
const NoMatchesAnswer = "No relevant documents found."

// NoAnswerFallback is returned when the generation backend produces
// empty output.
const NoAnswerFallback = "No answer generated"

// UntitledTitle substitutes for an absent document title in results.
const UntitledTitle = "Untitled"

// TopK is the number of documents retrieved per query.
const TopK = 5

// Timing stage names reported in QueryResult.Timing, in milliseconds.
const (
	StageEmbedding  = "embedding"
	StageRetrieval  = "retrieval"
	StagePrompt     = "prompt"
	StageGeneration = "generation"
	StageTotal      = "total"
)

// RetrievedDocument is a ranked snippet in a query result.
type RetrievedDocument struct {
	// Title is the document title, or "Untitled" when absent.
	Title string `json:"title"`

	// Content is the document content truncated to SnippetLength characters.
	Content string `json:"content"`

	// Similarity is the cosine similarity to the query expressed as a
	// percentage (0-100), rounded to two decimal places.
	Similarity float64 `json:"similarity"`
}

// QueryResult is the full answer to a retrieval-augmented query.
type QueryResult struct {
	// Answer is the generated conversational answer grounded in the
	// retrieved documents.
	Answer string `json:"answer"`

	// RelevantDocuments are the top-K retrieved snippets ordered by
	// non-increasing similarity.
	RelevantDocuments []RetrievedDocument `json:"relevant_documents"`

	// Timing maps pipeline stage names to elapsed milliseconds.
	Timing map[string]float64 `json:"timing"`
}

// AddResult reports the outcome of an insert or sync operation.
type AddResult struct {
	// Success is true when all notes were persisted.
	Success bool `json:"success"`

	// Message is a human-readable summary.
	Message string `json:"message"`

	// DocumentCount is the number of documents written.
	DocumentCount int `json:"document_count"`

	// CachedCount is the number of documents holding a valid embedding.
	CachedCount int `json:"cached_count"`
}
