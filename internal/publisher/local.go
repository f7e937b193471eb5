package publisher

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuhaochen/lexipost/internal/types"
)

// localPost is the JSON sidecar written next to the text file, for later
// re-editing or batch upload.
type localPost struct {
	Word      string   `json:"word"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	ImagePath string   `json:"image_path"`
	CreatedAt string   `json:"created_at"`
}

// saveLocal writes the post as a timestamped text + JSON pair under the
// output directory instead of publishing. The text file mirrors what
// would be pasted into the composer.
func (p *Publisher) saveLocal(post *types.PostContent, content, imagePath string) (*Result, error) {
	if err := os.MkdirAll(p.cfg.OutputDir, 0755); err != nil {
		return nil, err
	}

	ts := time.Now().Format("20060102_150405")
	base := "post"
	if post.Word != "" {
		base = strings.ReplaceAll(post.Word, " ", "_")
	}

	textPath := filepath.Join(p.cfg.OutputDir, fmt.Sprintf("%s_%s.txt", base, ts))
	jsonPath := filepath.Join(p.cfg.OutputDir, fmt.Sprintf("%s_%s.json", base, ts))

	var sb strings.Builder
	sb.WriteString(post.Title)
	sb.WriteString("\n\n")
	sb.WriteString(content)
	if err := os.WriteFile(textPath, []byte(sb.String()), 0644); err != nil {
		return nil, fmt.Errorf("failed to write post text: %w", err)
	}

	data, err := json.MarshalIndent(localPost{
		Word:      post.Word,
		Title:     post.Title,
		Content:   content,
		Tags:      post.Tags,
		ImagePath: imagePath,
		CreatedAt: ts,
	}, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(jsonPath, data, 0644); err != nil {
		// The text file and image are already on disk; treat the
		// sidecar as best effort.
		p.log.Warn().Err(err).Msg("failed to write JSON sidecar")
		jsonPath = ""
	}

	p.log.Info().Str("text", textPath).Str("image", imagePath).Msg("post saved locally")

	return &Result{
		Success:   true,
		Method:    "local",
		Message:   "saved locally, not published",
		TextPath:  textPath,
		JSONPath:  jsonPath,
		ImagePath: imagePath,
	}, nil
}
