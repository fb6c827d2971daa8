package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sph3inz/MindFeed/internal/core/domain"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))

	require.NoError(t, err)
	assert.False(t, cfg.EmbeddingSettings().IsConfigured())

	generation := cfg.GenerationSettings()
	assert.InDelta(t, domain.DefaultTemperature, generation.Temperature, 1e-9)
	assert.Equal(t, domain.DefaultMaxTokens, generation.MaxTokens)
	assert.InDelta(t, domain.DefaultTopP, generation.TopP, 1e-9)
	assert.Equal(t, domain.DefaultTopK, generation.TopK)
}

func TestLoadParsesSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[embedding]
provider = "ollama"
model = "nomic-embed-text"

[generation]
provider = "gemini"
model = "gemini-1.5-flash-latest"
temperature = 0.5
max_tokens = 256

[storage]
backend = "firestore"
project_id = "notes-project"
collection = "docs"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)

	require.NoError(t, err)
	embedding := cfg.EmbeddingSettings()
	assert.Equal(t, domain.AIProviderOllama, embedding.Provider)
	assert.Equal(t, "nomic-embed-text", embedding.Model)

	generation := cfg.GenerationSettings()
	assert.Equal(t, domain.AIProviderGemini, generation.Provider)
	assert.InDelta(t, 0.5, generation.Temperature, 1e-9)
	assert.Equal(t, 256, generation.MaxTokens)
	// Unset sampling values still get defaults.
	assert.InDelta(t, domain.DefaultTopP, generation.TopP, 1e-9)

	storage := cfg.StorageSettings()
	assert.Equal(t, domain.StorageBackendFirestore, storage.Backend)
	assert.Equal(t, "notes-project", storage.ProjectID)
	assert.Equal(t, "docs", storage.Collection)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[embedding\nbroken"), 0600))

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoadFillsAPIKeysFromEnv(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "google-key")
	t.Setenv("OPENAI_API_KEY", "openai-key")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))

	require.NoError(t, err)
	assert.Equal(t, "google-key", cfg.GenerationSettings().APIKey)
	assert.Equal(t, "openai-key", cfg.EmbeddingSettings().APIKey)
}

func TestLoadFileKeyWinsOverEnv(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "env-key")
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[generation]\napi_key = \"file-key\"\n"), 0600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.Generation.APIKey)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := &Config{
		Storage: StorageConfig{Backend: "sqlite", DataDir: "/tmp/mindfeed"},
	}

	require.NoError(t, cfg.Save(path))
	loaded, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "sqlite", loaded.Storage.Backend)
	assert.Equal(t, "/tmp/mindfeed", loaded.Storage.DataDir)
}
