package domain

// AIProvider identifies which backend serves embeddings or generation.
type AIProvider string

// Supported AI providers.
const (
	AIProviderOllama AIProvider = "ollama"
	AIProviderOpenAI AIProvider = "openai"
	AIProviderGemini AIProvider = "gemini"
)

// StorageBackend identifies the durable document store implementation.
type StorageBackend string

// Supported storage backends.
const (
	StorageBackendFirestore StorageBackend = "firestore"
	StorageBackendSQLite    StorageBackend = "sqlite"
)

// EmbeddingSettings configures the embedding backend.
type EmbeddingSettings struct {
	// Provider selects the backend (ollama or openai).
	Provider AIProvider

	// Model is the embedding model name (default: nomic-embed-text).
	Model string

	// BaseURL overrides the backend API base URL.
	BaseURL string

	// APIKey authenticates hosted providers. Unused by Ollama.
	APIKey string
}

// IsConfigured reports whether a provider has been selected.
func (s EmbeddingSettings) IsConfigured() bool {
	return s.Provider != ""
}

// GenerationSettings configures the text-generation backend and its
// sampling parameters. The sampling values are configuration, not
// algorithm: they default to the tuned conversational settings but are
// overridable from the config file.
type GenerationSettings struct {
	// Provider selects the backend (gemini or ollama).
	Provider AIProvider

	// Model is the generation model name.
	Model string

	// BaseURL overrides the backend API base URL.
	BaseURL string

	// APIKey authenticates hosted providers. Unused by Ollama.
	APIKey string

	// Temperature controls sampling randomness (default 0.88).
	Temperature float64

	// MaxTokens caps the generated answer length (default 1024).
	MaxTokens int

	// TopP is the nucleus sampling threshold (default 0.95).
	TopP float64

	// TopK is the sampling candidate cutoff (default 45).
	TopK int
}

// IsConfigured reports whether a provider has been selected.
func (s GenerationSettings) IsConfigured() bool {
	return s.Provider != ""
}

// Default sampling configuration, tuned for natural conversation.
const (
	DefaultTemperature = 0.88
	DefaultMaxTokens   = 1024
	DefaultTopP        = 0.95
	DefaultTopK        = 45
)

// ApplyDefaults fills unset sampling parameters with the defaults.
func (s *GenerationSettings) ApplyDefaults() {
	if s.Temperature == 0 {
		s.Temperature = DefaultTemperature
	}
	if s.MaxTokens == 0 {
		s.MaxTokens = DefaultMaxTokens
	}
	if s.TopP == 0 {
		s.TopP = DefaultTopP
	}
	if s.TopK == 0 {
		s.TopK = DefaultTopK
	}
}

// StorageSettings configures the durable document store.
type StorageSettings struct {
	// Backend selects the implementation (firestore or sqlite).
	Backend StorageBackend

	// Collection is the document collection (or table) name.
	Collection string

	// ProjectID is the Firestore project id.
	ProjectID string

	// CredentialsFile is the path to a service account JSON key.
	CredentialsFile string

	// DataDir is the SQLite data directory.
	DataDir string
}
