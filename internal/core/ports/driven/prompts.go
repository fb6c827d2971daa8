// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

// Prompt names used with PromptStore.Load.
const (
	// PromptPersona is the grounding prompt template for query
	// answering. It is a text/template with .Documents and .Question.
	PromptPersona = "persona"
)

// PromptStore loads prompt templates.
// Implementations may cache; Load must always return a usable template,
// falling back to an embedded default when user files are missing.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)
}
