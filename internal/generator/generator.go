// Package generator turns a word into publishable post content via a
// text-generation provider.
package generator

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yuhaochen/lexipost/internal/config"
	"github.com/yuhaochen/lexipost/internal/generator/providers"
	"github.com/yuhaochen/lexipost/internal/prompt"
	"github.com/yuhaochen/lexipost/internal/types"
)

// Provider defines the interface for text-generation backends
type Provider interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Generator produces structured word-learning posts
type Generator struct {
	provider Provider
	log      zerolog.Logger
}

// New creates a generator with the provider selected by config
func New(cfg config.GenerationConfig, log zerolog.Logger) (*Generator, error) {
	var provider Provider

	switch cfg.Provider {
	case config.ProviderOllama:
		provider = providers.NewOllama(cfg.OllamaURL, cfg.Model, cfg.Temperature)
	case config.ProviderAnthropic:
		provider = providers.NewAnthropic(cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown generation provider: %s", cfg.Provider)
	}

	return NewWithProvider(provider, log), nil
}

// NewWithProvider creates a generator over an explicit provider.
func NewWithProvider(p Provider, log zerolog.Logger) *Generator {
	return &Generator{
		provider: p,
		log:      log.With().Str("component", "generator").Logger(),
	}
}

// GenerateWordPost builds the word-learning prompt, runs the provider
// and parses the structured response.
func (g *Generator) GenerateWordPost(ctx context.Context, word, level string) (*types.PostContent, error) {
	raw, err := g.provider.GenerateText(ctx, prompt.BuildWordLearning(word, level))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content for %q: %w", word, err)
	}

	content := ParseWordPost(raw, word)
	g.log.Debug().Str("word", word).Str("title", content.Title).
		Int("tags", len(content.Tags)).Msg("content generated")
	return content, nil
}

// GenerateThemePost builds a free-theme post without the word-learning
// structure. The result carries no word and is exempt from dedup.
func (g *Generator) GenerateThemePost(ctx context.Context, theme string) (*types.PostContent, error) {
	raw, err := g.provider.GenerateText(ctx, prompt.BuildTheme(theme))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content for theme %q: %w", theme, err)
	}

	content := ParseThemePost(raw, theme)
	g.log.Debug().Str("theme", theme).Str("title", content.Title).Msg("content generated")
	return content, nil
}
