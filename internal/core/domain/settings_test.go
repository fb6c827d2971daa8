package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmbeddingSettings_IsConfigured(t *testing.T) {
	assert.False(t, EmbeddingSettings{}.IsConfigured())
	assert.True(t, EmbeddingSettings{Provider: AIProviderOllama}.IsConfigured())

	// Config stores hand settings back by value, so the predicate must
	// be callable straight off a function result.
	defaults := func() EmbeddingSettings {
		return EmbeddingSettings{Provider: AIProviderOpenAI, Model: "text-embedding-3-small"}
	}
	assert.True(t, defaults().IsConfigured())
}

func TestGenerationSettings_IsConfigured(t *testing.T) {
	assert.False(t, GenerationSettings{}.IsConfigured())
	assert.True(t, GenerationSettings{Provider: AIProviderGemini}.IsConfigured())
}

func TestGenerationSettings_ApplyDefaults(t *testing.T) {
	s := GenerationSettings{Provider: AIProviderOllama}
	s.ApplyDefaults()
	assert.Equal(t, DefaultTemperature, s.Temperature)
	assert.Equal(t, DefaultMaxTokens, s.MaxTokens)
	assert.Equal(t, DefaultTopP, s.TopP)
	assert.Equal(t, DefaultTopK, s.TopK)

	tuned := GenerationSettings{Temperature: 0.2, MaxTokens: 64, TopP: 0.5, TopK: 10}
	tuned.ApplyDefaults()
	assert.Equal(t, 0.2, tuned.Temperature)
	assert.Equal(t, 64, tuned.MaxTokens)
	assert.Equal(t, 0.5, tuned.TopP)
	assert.Equal(t, 10, tuned.TopK)
}
