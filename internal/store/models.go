package store

import "time"

// PostRecord is one generated/published post and its generation metadata.
// Word and Level are empty for non-word themes (stored as NULL).
type PostRecord struct {
	ID              int64     `json:"id"`
	Word            string    `json:"word"`
	Level           string    `json:"level"`
	PromptVersion   string    `json:"prompt_version"`
	Title           string    `json:"title"`
	Tags            []string  `json:"tags"`
	ImageSuggestion string    `json:"image_suggestion"`
	PostURL         string    `json:"post_url"`
	CreatedAt       time.Time `json:"created_at"`
	PublishedAt     time.Time `json:"published_at"` // zero until published
}

// InteractionRecord holds engagement metrics for a single post.
type InteractionRecord struct {
	PostID    int64     `json:"post_id"`
	Likes     int       `json:"likes"`
	Favorites int       `json:"favorites"`
	Comments  int       `json:"comments"`
	Views     int       `json:"views"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InteractionDelta is a partial metrics update. Nil fields are left
// untouched.
type InteractionDelta struct {
	Likes     *int
	Favorites *int
	Comments  *int
	Views     *int
}

// Empty reports whether the delta carries no fields.
func (d InteractionDelta) Empty() bool {
	return d.Likes == nil && d.Favorites == nil && d.Comments == nil && d.Views == nil
}

// PostWithStats combines a post with its current metrics (zero-valued if
// none have been recorded yet).
type PostWithStats struct {
	Post  PostRecord
	Stats InteractionRecord
}

// StatsFilter narrows an aggregate query. Empty fields are unfiltered.
type StatsFilter struct {
	PromptVersion string
	Level         string
	Word          string
}

// PostStats is an aggregate over posts joined with their interactions.
// Posts without an interaction row count as zero for every metric.
type PostStats struct {
	TotalPosts     int     `json:"total_posts"`
	AvgLikes       float64 `json:"avg_likes"`
	AvgFavorites   float64 `json:"avg_favorites"`
	AvgComments    float64 `json:"avg_comments"`
	AvgViews       float64 `json:"avg_views"`
	TotalLikes     int     `json:"total_likes"`
	TotalFavorites int     `json:"total_favorites"`
	TotalComments  int     `json:"total_comments"`
}

// VersionStats is one row of the prompt-version comparison.
type VersionStats struct {
	PromptVersion string  `json:"prompt_version"`
	TotalPosts    int     `json:"total_posts"`
	AvgLikes      float64 `json:"avg_likes"`
	AvgFavorites  float64 `json:"avg_favorites"`
	AvgComments   float64 `json:"avg_comments"`
}

// LevelStats is one row of the difficulty-level comparison. Posts with no
// level are grouped under LevelUnspecified.
type LevelStats struct {
	Level        string  `json:"level"`
	TotalPosts   int     `json:"total_posts"`
	AvgLikes     float64 `json:"avg_likes"`
	AvgFavorites float64 `json:"avg_favorites"`
	AvgComments  float64 `json:"avg_comments"`
}

// LevelUnspecified is the comparison bucket for posts without a level.
const LevelUnspecified = "unspecified"
