// Package recorder is the write-side facade over the post store: it
// records one row per generated post, deduplicates by
// (word, level, prompt_version), and accepts partial engagement updates.
package recorder

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/yuhaochen/lexipost/internal/store"
)

// ErrRecordingDisabled is returned by write operations when the recorder
// was constructed with recording turned off.
var ErrRecordingDisabled = errors.New("recording is disabled")

// PostMeta is the metadata captured for one generation/publish cycle.
type PostMeta struct {
	Word            string
	Level           string
	PromptVersion   string
	Title           string
	Tags            []string
	ImageSuggestion string
	PostURL         string
	CreatedAt       time.Time
	PublishedAt     time.Time
}

// Recorder combines the post and interaction stores behind a single
// create/update/query surface. Recording is an explicit constructor
// flag, not ambient state.
type Recorder struct {
	store   *store.Store
	enabled bool
	log     zerolog.Logger
}

// New creates a Recorder over s. When enabled is false every write
// becomes a no-op returning ErrRecordingDisabled.
func New(s *store.Store, enabled bool, log zerolog.Logger) *Recorder {
	return &Recorder{
		store:   s,
		enabled: enabled,
		log:     log.With().Str("component", "recorder").Logger(),
	}
}

// Enabled reports whether writes are recorded.
func (r *Recorder) Enabled() bool {
	return r.enabled
}

// HasPosted reports whether a post with the given dedup triple was
// already recorded. Always false when recording is disabled.
func (r *Recorder) HasPosted(word, level, promptVersion string) (bool, error) {
	if !r.enabled {
		return false, nil
	}
	return r.store.PostExists(word, level, promptVersion)
}

// RecordPost validates meta and inserts a new post row. When the dedup
// triple already exists the call reports skipped=true with no new id;
// duplicates are not an error. The uniqueness constraint in the store
// backs the pre-check, so two near-simultaneous cycles for the same
// triple cannot both insert.
func (r *Recorder) RecordPost(meta PostMeta) (id int64, skipped bool, err error) {
	if !r.enabled {
		return 0, false, ErrRecordingDisabled
	}

	if meta.Word != "" {
		exists, err := r.store.PostExists(meta.Word, meta.Level, meta.PromptVersion)
		if err != nil {
			return 0, false, err
		}
		if exists {
			r.log.Info().Str("word", meta.Word).Str("level", meta.Level).
				Str("prompt_version", meta.PromptVersion).Msg("duplicate post, skipping")
			return 0, true, nil
		}
	}

	id, err = r.store.InsertPost(&store.PostRecord{
		Word:            meta.Word,
		Level:           meta.Level,
		PromptVersion:   meta.PromptVersion,
		Title:           meta.Title,
		Tags:            meta.Tags,
		ImageSuggestion: meta.ImageSuggestion,
		PostURL:         meta.PostURL,
		CreatedAt:       meta.CreatedAt,
		PublishedAt:     meta.PublishedAt,
	})
	if errors.Is(err, store.ErrDuplicatePost) {
		// Lost the race to a concurrent cycle; same outcome as the
		// pre-check.
		return 0, true, nil
	}
	if err != nil {
		return 0, false, err
	}

	r.log.Info().Int64("post_id", id).Str("word", meta.Word).Msg("post recorded")
	return id, false, nil
}

// UpdateInteractions applies a partial metrics update for postID.
// Fields not carried by delta keep their prior values.
func (r *Recorder) UpdateInteractions(postID int64, delta store.InteractionDelta) error {
	if !r.enabled {
		return ErrRecordingDisabled
	}
	return r.store.UpsertInteractions(postID, delta)
}

// Stats returns the aggregate for the optional filter criteria.
func (r *Recorder) Stats(filter store.StatsFilter) (*store.PostStats, error) {
	return r.store.Stats(filter)
}

// RecentPosts returns up to limit posts, most recent first, merged with
// their current metrics.
func (r *Recorder) RecentPosts(limit int) ([]store.PostWithStats, error) {
	return r.store.ListRecent(limit)
}
