package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/Sph3inz/MindFeed/internal/core/domain"
)

// Config is the on-disk TOML configuration. Every field is optional;
// missing sections fall back to local defaults (Ollama embeddings, the
// SQLite backend and the tuned sampling parameters).
type Config struct {
	Embedding  EmbeddingConfig  `toml:"embedding"`
	Generation GenerationConfig `toml:"generation"`
	Storage    StorageConfig    `toml:"storage"`
	Service    ServiceConfig    `toml:"service"`
}

// EmbeddingConfig is the [embedding] section.
type EmbeddingConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	BaseURL  string `toml:"base_url"`
	APIKey   string `toml:"api_key"`
}

// GenerationConfig is the [generation] section.
type GenerationConfig struct {
	Provider    string  `toml:"provider"`
	Model       string  `toml:"model"`
	BaseURL     string  `toml:"base_url"`
	APIKey      string  `toml:"api_key"`
	Temperature float64 `toml:"temperature"`
	MaxTokens   int     `toml:"max_tokens"`
	TopP        float64 `toml:"top_p"`
	TopK        int     `toml:"top_k"`
}

// StorageConfig is the [storage] section.
type StorageConfig struct {
	Backend         string `toml:"backend"`
	Collection      string `toml:"collection"`
	ProjectID       string `toml:"project_id"`
	CredentialsFile string `toml:"credentials_file"`
	DataDir         string `toml:"data_dir"`
}

// ServiceConfig is the [service] section.
type ServiceConfig struct {
	PromptDir string `toml:"prompt_dir"`
}

// DefaultPath returns the default config file location,
// ~/.mindfeed/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".mindfeed", "config.toml"), nil
}

// Load reads the TOML config at path. An empty path means the default
// location, and a missing file yields an empty config rather than an
// error. Environment variables fill in API keys the file leaves blank.
func Load(path string) (*Config, error) {
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No config file yet - run on defaults.
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// Save writes the config as TOML with restricted permissions, creating
// the directory if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return err
		}
		path = defaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// applyEnv fills API keys from the environment when the file leaves
// them blank. Keys belong in the environment, not on disk.
func (c *Config) applyEnv() {
	if c.Generation.APIKey == "" {
		c.Generation.APIKey = os.Getenv("GOOGLE_API_KEY")
	}
	if c.Embedding.APIKey == "" {
		c.Embedding.APIKey = os.Getenv("OPENAI_API_KEY")
	}
}

// EmbeddingSettings converts the [embedding] section to domain settings.
func (c *Config) EmbeddingSettings() domain.EmbeddingSettings {
	return domain.EmbeddingSettings{
		Provider: domain.AIProvider(c.Embedding.Provider),
		Model:    c.Embedding.Model,
		BaseURL:  c.Embedding.BaseURL,
		APIKey:   c.Embedding.APIKey,
	}
}

// GenerationSettings converts the [generation] section to domain
// settings with the sampling defaults applied.
func (c *Config) GenerationSettings() domain.GenerationSettings {
	settings := domain.GenerationSettings{
		Provider:    domain.AIProvider(c.Generation.Provider),
		Model:       c.Generation.Model,
		BaseURL:     c.Generation.BaseURL,
		APIKey:      c.Generation.APIKey,
		Temperature: c.Generation.Temperature,
		MaxTokens:   c.Generation.MaxTokens,
		TopP:        c.Generation.TopP,
		TopK:        c.Generation.TopK,
	}
	settings.ApplyDefaults()
	return settings
}

// StorageSettings converts the [storage] section to domain settings.
func (c *Config) StorageSettings() domain.StorageSettings {
	return domain.StorageSettings{
		Backend:         domain.StorageBackend(c.Storage.Backend),
		Collection:      c.Storage.Collection,
		ProjectID:       c.Storage.ProjectID,
		CredentialsFile: c.Storage.CredentialsFile,
		DataDir:         c.Storage.DataDir,
	}
}
