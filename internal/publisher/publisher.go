// Package publisher delivers a finished post: saved locally for manual
// upload, pushed through the platform open API, or typed into the
// creator site via browser automation.
package publisher

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/yuhaochen/lexipost/internal/auth"
	"github.com/yuhaochen/lexipost/internal/config"
	"github.com/yuhaochen/lexipost/internal/types"
)

// Result describes the outcome of one publish attempt.
type Result struct {
	Success   bool   `json:"success"`
	Method    string `json:"method"`
	Message   string `json:"message"`
	PostURL   string `json:"post_url,omitempty"`
	TextPath  string `json:"text_path,omitempty"`
	JSONPath  string `json:"json_path,omitempty"`
	ImagePath string `json:"image_path,omitempty"`
}

// Publisher delivers posts via the configured mode
type Publisher struct {
	cfg         config.PublishConfig
	authManager *auth.Manager
	client      *http.Client
	log         zerolog.Logger
}

// New creates a publisher. authManager may be nil when the browser mode
// is not used.
func New(cfg config.PublishConfig, authManager *auth.Manager, log zerolog.Logger) *Publisher {
	return &Publisher{
		cfg:         cfg,
		authManager: authManager,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		log: log.With().Str("component", "publisher").Logger(),
	}
}

// Publish delivers post with its cover image according to the configured
// mode and returns the outcome.
func (p *Publisher) Publish(ctx context.Context, post *types.PostContent, imagePath string) (*Result, error) {
	content := FormatContent(post.Content, post.Tags)

	switch p.cfg.Mode {
	case config.PublishModeLocal:
		return p.saveLocal(post, content, imagePath)
	case config.PublishModeAPI:
		return p.publishViaAPI(ctx, post.Title, content, imagePath)
	case config.PublishModeBrowser:
		return p.publishViaBrowser(ctx, post.Title, content, imagePath)
	default:
		return nil, fmt.Errorf("unknown publish mode: %s", p.cfg.Mode)
	}
}
