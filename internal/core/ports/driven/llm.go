// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import "context"

// GenerationService produces the conversational answer from a grounding
// prompt.
//
// Implementations may include:
//   - Gemini (gemini-1.5-flash-latest)
//   - Ollama (mistral, llama3.2)
type GenerationService interface {
	// Generate produces text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the generation model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour. Values come
// from domain.GenerationSettings; zero values mean backend defaults.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64

	// TopP is the nucleus sampling probability mass cutoff.
	TopP float64

	// TopK limits sampling to the K most likely tokens.
	TopK int
}
