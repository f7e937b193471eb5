// Package analytics is the read-only aggregation layer: grouped
// comparisons by prompt version and difficulty level, a recency-ordered
// listing, and a flat CSV export of per-post engagement.
package analytics

import (
	"fmt"
	"io"
	"strings"

	"github.com/yuhaochen/lexipost/internal/store"
)

// Engine aggregates over the post store. It holds no state of its own.
type Engine struct {
	store *store.Store
}

// New creates an Engine over s.
func New(s *store.Store) *Engine {
	return &Engine{store: s}
}

// Report bundles the grouped comparisons with the most recent posts.
type Report struct {
	PromptVersions []store.VersionStats  `json:"prompt_versions"`
	Levels         []store.LevelStats    `json:"levels"`
	RecentPosts    []store.PostWithStats `json:"recent_posts"`
}

// Report produces the full analytics aggregate: prompt-version
// comparison, level comparison, and the ten most recent posts.
func (e *Engine) Report() (*Report, error) {
	versions, err := e.store.CompareByPromptVersion()
	if err != nil {
		return nil, err
	}

	levels, err := e.store.CompareByLevel()
	if err != nil {
		return nil, err
	}

	recent, err := e.store.ListRecent(10)
	if err != nil {
		return nil, err
	}

	return &Report{
		PromptVersions: versions,
		Levels:         levels,
		RecentPosts:    recent,
	}, nil
}

// Render writes a human-readable report to w.
func (r *Report) Render(w io.Writer) {
	fmt.Fprintln(w, "Prompt version comparison:")
	for _, v := range r.PromptVersions {
		fmt.Fprintf(w, "  %s: avg likes %.2f, avg favorites %.2f, avg comments %.2f (%d posts)\n",
			v.PromptVersion, v.AvgLikes, v.AvgFavorites, v.AvgComments, v.TotalPosts)
	}

	fmt.Fprintln(w, "\nLevel comparison:")
	for _, l := range r.Levels {
		fmt.Fprintf(w, "  %s: avg likes %.2f, avg favorites %.2f, avg comments %.2f (%d posts)\n",
			l.Level, l.AvgLikes, l.AvgFavorites, l.AvgComments, l.TotalPosts)
	}

	fmt.Fprintln(w, "\nRecent posts:")
	for _, p := range r.RecentPosts {
		level := p.Post.Level
		if level == "" {
			level = store.LevelUnspecified
		}
		fmt.Fprintf(w, "  [%s] %s (%s) likes %d, favorites %d, comments %d\n",
			p.Post.CreatedAt.Format("2006-01-02 15:04"), displayWord(p.Post), level,
			p.Stats.Likes, p.Stats.Favorites, p.Stats.Comments)
	}
}

func displayWord(p store.PostRecord) string {
	if p.Word != "" {
		return p.Word
	}
	return strings.TrimSpace(p.Title)
}
