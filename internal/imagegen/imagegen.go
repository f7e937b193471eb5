// Package imagegen renders the word-card cover image, either through a
// local Stable Diffusion server or a drawn template fallback.
package imagegen

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yuhaochen/lexipost/internal/config"
)

// Generator produces cover images for word posts
type Generator struct {
	cfg    config.ImageConfig
	client *http.Client
	log    zerolog.Logger
}

// New creates an image generator
func New(cfg config.ImageConfig, log zerolog.Logger) *Generator {
	return &Generator{
		cfg: cfg,
		client: &http.Client{
			Timeout: 180 * time.Second, // txt2img can take a while
		},
		log: log.With().Str("component", "imagegen").Logger(),
	}
}

// WordCard generates a cover image for word and returns the file path.
// With the sd backend a failed generation falls back to the template
// card so the posting cycle never stalls on the image step.
func (g *Generator) WordCard(ctx context.Context, word, meaning string) (string, error) {
	if g.cfg.Backend == config.ImageBackendSD {
		path, err := g.txt2img(ctx, word)
		if err == nil {
			return path, nil
		}
		g.log.Warn().Err(err).Str("word", word).Msg("sd generation failed, using template card")
	}
	return g.templateCard(word, meaning)
}

// safeFilename makes word usable as a file name component.
func safeFilename(word string) string {
	return strings.ReplaceAll(strings.TrimSpace(word), " ", "_")
}
