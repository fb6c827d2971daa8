package services

import (
	"context"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/Sph3inz/MindFeed/internal/core/domain"
	"github.com/Sph3inz/MindFeed/internal/core/ports/driven"
	"github.com/Sph3inz/MindFeed/internal/logger"
)

// promptContext is the data rendered into the persona template.
type promptContext struct {
	Documents []domain.Document
	Question  string
}

// GenerationOutcome carries the generated answer together with the
// per-stage timings in milliseconds.
type GenerationOutcome struct {
	Answer           string
	PromptMillis     float64
	GenerationMillis float64
}

// Orchestrator renders the persona prompt over retrieved documents and
// asks the generation provider for an answer.
type Orchestrator struct {
	generator driven.GenerationService
	prompts   driven.PromptStore
	options   driven.GenerateOptions

	// lastGood caches the most recently parsed template so a broken
	// edit to the prompt file degrades instead of failing queries.
	lastGoodText string
	lastGood     *template.Template
}

// NewOrchestrator creates an orchestrator that loads its persona prompt
// from the given store and generates with the given provider and
// sampling settings.
func NewOrchestrator(generator driven.GenerationService, prompts driven.PromptStore, settings domain.GenerationSettings) *Orchestrator {
	settings.ApplyDefaults()
	return &Orchestrator{
		generator: generator,
		prompts:   prompts,
		options: driven.GenerateOptions{
			MaxTokens:   settings.MaxTokens,
			Temperature: settings.Temperature,
			TopP:        settings.TopP,
			TopK:        settings.TopK,
		},
	}
}

// Answer builds the persona prompt from the documents and question and
// generates a response. A blank response from the provider is replaced
// with the fallback answer; provider errors are returned as-is.
func (o *Orchestrator) Answer(ctx context.Context, question string, docs []domain.Document) (*GenerationOutcome, error) {
	promptStart := time.Now()
	prompt, err := o.buildPrompt(question, docs)
	if err != nil {
		return nil, err
	}
	promptMillis := msSince(promptStart)

	generationStart := time.Now()
	answer, err := o.generator.Generate(ctx, prompt, o.options)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		logger.Warn("Generation provider %s returned an empty answer", o.generator.ModelName())
		answer = domain.NoAnswerFallback
	}

	return &GenerationOutcome{
		Answer:           answer,
		PromptMillis:     promptMillis,
		GenerationMillis: msSince(generationStart),
	}, nil
}

// buildPrompt renders the persona template with the documents and
// question. The template is reloaded on every call so edits to the
// prompt file take effect without a restart.
func (o *Orchestrator) buildPrompt(question string, docs []domain.Document) (string, error) {
	tmpl, err := o.personaTemplate()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	data := promptContext{Documents: docs, Question: question}
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render persona prompt: %w", err)
	}
	return sb.String(), nil
}

func (o *Orchestrator) personaTemplate() (*template.Template, error) {
	text, err := o.prompts.Load(driven.PromptPersona)
	if err != nil {
		if o.lastGood != nil {
			logger.Warn("Loading persona prompt failed, keeping previous version: %v", err)
			return o.lastGood, nil
		}
		return nil, fmt.Errorf("load persona prompt: %w", err)
	}

	if text == o.lastGoodText && o.lastGood != nil {
		return o.lastGood, nil
	}

	tmpl, err := template.New(driven.PromptPersona).Parse(text)
	if err != nil {
		if o.lastGood != nil {
			logger.Warn("Persona prompt does not parse, keeping previous version: %v", err)
			return o.lastGood, nil
		}
		return nil, fmt.Errorf("parse persona prompt: %w", err)
	}

	o.lastGoodText = text
	o.lastGood = tmpl
	return tmpl, nil
}
