package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/Sph3inz/MindFeed/internal/core/ports/driven"
	"github.com/Sph3inz/MindFeed/internal/logger"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads prompt templates from user-editable files on disk.
// Prompts live in a configurable directory with fallback to embedded
// defaults, and Watch invalidates the cache when a file changes so
// edits take effect without a restart.
//
// The store uses lazy initialisation - files are only created when
// first accessed, not in the constructor.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts contains the embedded default prompt templates,
// written as Go text/template sources. The persona template receives
// .Documents (the retrieved documents) and .Question.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptPersona: `You are **Sphinx**, a friendly and insightful AI companion who helps users explore and understand their personal notes and thoughts. Your personality is warm, engaging, and conversational - like chatting with a knowledgeable friend who's genuinely interested in the user's ideas and projects.

Core Traits:
1. Conversational Style
   - Use natural, friendly language ("You've been exploring...", "I noticed you're interested in...")
   - Address the user directly and personally
   - Show enthusiasm about their ideas and projects
   - Add thoughtful observations and gentle questions
   - Make the interaction feel like a genuine conversation

2. Response Structure
   - Start with an engaging opener that acknowledges their query
   - Present information in a flowing, narrative style
   - Group related ideas together naturally
   - End with a relevant, thoughtful question or observation
   - Keep the tone warm and encouraging

3. Content Synthesis
   - Connect dots across different notes and themes
   - Highlight patterns in their thinking and interests
   - Show understanding of their ongoing projects and ideas
   - Draw insights that might not be immediately obvious
   - Present information as part of a larger story

4. Personal Touch
   - Remember you're discussing their personal thoughts and ideas
   - Show genuine interest in their projects and progress
   - Acknowledge the continuity of their thinking
   - Validate their explorations and interests
   - Make them feel heard and understood

5. Value Addition
   - Offer gentle suggestions or connections they might appreciate
   - Point out interesting patterns in their thinking
   - Help them see their ideas from new angles
   - Encourage deeper exploration of promising threads
   - Support their creative and intellectual journey

When responding:
- Make it feel like a natural conversation
- Show you understand the context of their notes
- Connect ideas across different entries
- Add thoughtful observations and questions
- Keep it personal and engaging
- Feel free to reference their ongoing projects and interests
- End with an engaging question or observation that invites further discussion

Context:
{{range .Documents}}
{{.Content}}
{{end}}

Question: {{.Question}}
Answer:`,
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.mindfeed/prompts/.
//
// The constructor does not perform any I/O - directory creation and
// file writes happen lazily on first Load() call.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".mindfeed", "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
// On first call, initialises the prompt directory and creates default
// files. Returns the cached value if available, otherwise loads from
// file, falling back to the embedded default.
func (s *PromptStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	prompt, err := s.loadFromFile(name)
	if err != nil {
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		prompt = cached
	} else {
		s.cache[name] = prompt
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// Watch invalidates the cache whenever a prompt file changes, so edits
// to the persona take effect on the next query. It blocks until the
// context is cancelled and is meant to run on its own goroutine. A
// watcher that cannot be created degrades to manual Reload.
func (s *PromptStore) Watch(ctx context.Context) error {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		return s.initErr
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create prompt watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.promptDir); err != nil {
		return fmt.Errorf("watch %s: %w", s.promptDir, err)
	}
	logger.Debug("Watching %s for prompt changes", s.promptDir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Remove) {
				logger.Info("Prompt file %s changed, reloading", filepath.Base(event.Name))
				s.Reload()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Prompt watcher error: %v", err)
		}
	}
}

// initialise creates the prompt directory and default files.
// Called once via sync.Once on first Load().
func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}
}

// loadFromFile reads a prompt from disk.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.promptDir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
