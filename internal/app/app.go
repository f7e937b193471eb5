// Package app wires the generation, image, publish and recording
// components into the posting cycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/yuhaochen/lexipost/internal/analytics"
	"github.com/yuhaochen/lexipost/internal/config"
	"github.com/yuhaochen/lexipost/internal/generator"
	"github.com/yuhaochen/lexipost/internal/imagegen"
	"github.com/yuhaochen/lexipost/internal/prompt"
	"github.com/yuhaochen/lexipost/internal/publisher"
	"github.com/yuhaochen/lexipost/internal/recorder"
	"github.com/yuhaochen/lexipost/internal/store"
	"github.com/yuhaochen/lexipost/internal/types"
	"github.com/yuhaochen/lexipost/internal/wordlist"
)

// DefaultLevel is used when a request carries no difficulty level.
const DefaultLevel = "CET-4"

// PostRequest asks for one generation/publish cycle. Theme switches to a
// free-theme post without a word; otherwise the word path applies, with
// the word picked from the configured wordlist when empty.
type PostRequest struct {
	Word  string `json:"word"`
	Theme string `json:"theme"`
	Level string `json:"level"`
}

// PostResult reports the outcome of one cycle.
type PostResult struct {
	Success   bool              `json:"success"`
	Skipped   bool              `json:"skipped"`
	Word      string            `json:"word"`
	Level     string            `json:"level"`
	Title     string            `json:"title,omitempty"`
	ImagePath string            `json:"image_path,omitempty"`
	PostID    int64             `json:"post_id,omitempty"`
	Publish   *publisher.Result `json:"publish,omitempty"`
	Message   string            `json:"message,omitempty"`
}

// App holds the application state.
type App struct {
	mu sync.RWMutex

	// Immutable after creation.
	rec    *recorder.Recorder
	engine *analytics.Engine
	log    zerolog.Logger

	// Mutable fields, replaced by ReloadConfig. Use getSnapshot() for
	// concurrent access.
	config *config.Config
	gen    *generator.Generator
	images *imagegen.Generator
	pub    *publisher.Publisher
	words  *wordlist.Catalog
}

type snapshot struct {
	config *config.Config
	gen    *generator.Generator
	images *imagegen.Generator
	pub    *publisher.Publisher
	words  *wordlist.Catalog
}

func (a *App) getSnapshot() snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return snapshot{
		config: a.config,
		gen:    a.gen,
		images: a.images,
		pub:    a.pub,
		words:  a.words,
	}
}

// New creates a new App instance.
func New(cfg *config.Config, gen *generator.Generator, images *imagegen.Generator,
	pub *publisher.Publisher, rec *recorder.Recorder, engine *analytics.Engine, log zerolog.Logger) *App {
	return &App{
		config: cfg,
		gen:    gen,
		images: images,
		pub:    pub,
		rec:    rec,
		engine: engine,
		words:  wordlist.New(cfg.Wordlists.Files),
		log:    log.With().Str("component", "app").Logger(),
	}
}

// CreateAndPublish runs one full cycle: pick or accept a word, skip if
// already produced, generate content, render the cover image, publish
// per the configured mode, and record the post.
func (a *App) CreateAndPublish(ctx context.Context, req PostRequest) (*PostResult, error) {
	s := a.getSnapshot()

	if req.Theme != "" && req.Word == "" {
		a.log.Info().Str("theme", req.Theme).Msg("starting theme posting cycle")
		content, err := s.gen.GenerateThemePost(ctx, req.Theme)
		if err != nil {
			return nil, err
		}
		return a.finishCycle(ctx, s, content, req.Theme, "", prompt.ThemeVersion)
	}

	level := req.Level
	if level == "" {
		level = DefaultLevel
	}

	word := req.Word
	if word == "" {
		picked, err := s.words.PickUnposted(level, func(w string) (bool, error) {
			return a.rec.HasPosted(w, level, prompt.Version)
		})
		if err != nil {
			return nil, err
		}
		word = picked
	}

	a.log.Info().Str("word", word).Str("level", level).Msg("starting posting cycle")

	// Soft dedup before spending tokens on generation. The store's
	// uniqueness constraint backs this up at record time.
	already, err := a.rec.HasPosted(word, level, prompt.Version)
	if err != nil {
		return nil, err
	}
	if already {
		a.log.Info().Str("word", word).Msg("word already produced, skipping")
		return &PostResult{
			Skipped: true,
			Success: true,
			Word:    word,
			Level:   level,
			Message: "already produced, skipped",
		}, nil
	}

	content, err := s.gen.GenerateWordPost(ctx, word, level)
	if err != nil {
		return nil, err
	}
	return a.finishCycle(ctx, s, content, content.Word, level, prompt.Version)
}

// finishCycle runs the shared tail of a posting cycle: cover image,
// publish, record. imageSubject names the card (the word, or the theme
// for wordless posts).
func (a *App) finishCycle(ctx context.Context, s snapshot, content *types.PostContent,
	imageSubject, level, versionFallback string) (*PostResult, error) {
	a.log.Info().Str("title", content.Title).Strs("tags", content.Tags).Msg("content generated")

	imagePath, err := s.images.WordCard(ctx, imageSubject, content.ImageSuggestion)
	if err != nil {
		return nil, fmt.Errorf("failed to generate image: %w", err)
	}
	a.log.Info().Str("image", imagePath).Msg("cover image ready")

	pubResult, err := s.pub.Publish(ctx, content, imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to publish: %w", err)
	}
	if pubResult.Success {
		a.log.Info().Str("method", pubResult.Method).Msg("publish step done")
	} else {
		a.log.Warn().Str("method", pubResult.Method).Str("message", pubResult.Message).Msg("publish step failed")
	}

	result := &PostResult{
		Success:   pubResult.Success,
		Word:      content.Word,
		Level:     level,
		Title:     content.Title,
		ImagePath: imagePath,
		Publish:   pubResult,
	}

	// Record the cycle. A recording failure is logged but does not fail
	// a cycle whose content already went out.
	meta := recorder.PostMeta{
		Word:            content.Word,
		Level:           level,
		PromptVersion:   content.PromptVersion(versionFallback),
		Title:           content.Title,
		Tags:            content.Tags,
		ImageSuggestion: content.ImageSuggestion,
		PostURL:         pubResult.PostURL,
		CreatedAt:       time.Now(),
	}
	if pubResult.Success && pubResult.Method != "local" {
		meta.PublishedAt = time.Now()
	}

	id, skipped, err := a.rec.RecordPost(meta)
	switch {
	case errors.Is(err, recorder.ErrRecordingDisabled):
		// Nothing to record.
	case err != nil:
		a.log.Warn().Err(err).Msg("failed to record post")
	case skipped:
		result.Skipped = true
	default:
		result.PostID = id
	}

	return result, nil
}

// UpdateInteractions applies a partial engagement update for a post.
func (a *App) UpdateInteractions(postID int64, delta store.InteractionDelta) error {
	return a.rec.UpdateInteractions(postID, delta)
}

// Analytics returns the grouped comparison report.
func (a *App) Analytics() (*analytics.Report, error) {
	return a.engine.Report()
}

// ReloadConfig reloads configuration from disk and rebuilds the
// components derived from it.
func (a *App) ReloadConfig(authPub *publisher.Publisher) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	gen, err := generator.New(cfg.Generation, a.log)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.config = cfg
	a.gen = gen
	a.images = imagegen.New(cfg.Image, a.log)
	if authPub != nil {
		a.pub = authPub
	}
	a.words = wordlist.New(cfg.Wordlists.Files)
	a.mu.Unlock()

	a.log.Info().Msg("configuration reloaded")
	return nil
}
