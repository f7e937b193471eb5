package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// InsertPost persists a new post record and returns its assigned id.
// The (word, level, prompt_version) triple is enforced unique at the
// schema level for word posts; a conflict surfaces as ErrDuplicatePost.
func (s *Store) InsertPost(p *PostRecord) (int64, error) {
	if p.PromptVersion == "" {
		return 0, &ValidationError{Field: "prompt_version"}
	}
	if p.CreatedAt.IsZero() {
		return 0, &ValidationError{Field: "created_at"}
	}

	tagsJSON, _ := json.Marshal(p.Tags)

	publishedAt := sql.NullTime{Time: p.PublishedAt, Valid: !p.PublishedAt.IsZero()}

	res, err := s.db.Exec(`
		INSERT INTO posts (word, level, prompt_version, title, tags,
			image_suggestion, post_url, created_at, published_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, nullable(p.Word), nullable(p.Level), p.PromptVersion, p.Title, string(tagsJSON),
		p.ImageSuggestion, p.PostURL, p.CreatedAt, publishedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicatePost
		}
		return 0, fmt.Errorf("failed to insert post: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read insert id: %w", err)
	}
	p.ID = id
	return id, nil
}

// PostExists checks whether a post with the given dedup triple already
// exists. Used to skip duplicate generation.
func (s *Store) PostExists(word, level, promptVersion string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM posts
			WHERE word = ? AND COALESCE(level, '') = ? AND prompt_version = ?
		)
	`, word, level, promptVersion).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check post existence: %w", err)
	}
	return exists, nil
}

// GetPost returns the post with the given id, or ErrPostNotFound.
func (s *Store) GetPost(id int64) (*PostRecord, error) {
	row := s.db.QueryRow(`
		SELECT id, word, level, prompt_version, title, tags,
			image_suggestion, post_url, created_at, published_at
		FROM posts
		WHERE id = ?
	`, id)

	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return p, nil
}

// ListRecent returns up to limit posts ordered most recent first, each
// joined with its current metrics (zeros when none recorded). Ties on
// created_at fall back to insertion order.
func (s *Store) ListRecent(limit int) ([]PostWithStats, error) {
	rows, err := s.db.Query(`
		SELECT p.id, p.word, p.level, p.prompt_version, p.title, p.tags,
			p.image_suggestion, p.post_url, p.created_at, p.published_at,
			COALESCE(i.likes, 0), COALESCE(i.favorites, 0),
			COALESCE(i.comments, 0), COALESCE(i.views, 0)
		FROM posts p
		LEFT JOIN interactions i ON p.id = i.post_id
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent posts: %w", err)
	}
	defer rows.Close()

	return scanPostsWithStats(rows)
}

// StreamPosts invokes fn for every post in insertion order, each joined
// with its current metrics. Used by the tabular export.
func (s *Store) StreamPosts(fn func(PostWithStats) error) error {
	rows, err := s.db.Query(`
		SELECT p.id, p.word, p.level, p.prompt_version, p.title, p.tags,
			p.image_suggestion, p.post_url, p.created_at, p.published_at,
			COALESCE(i.likes, 0), COALESCE(i.favorites, 0),
			COALESCE(i.comments, 0), COALESCE(i.views, 0)
		FROM posts p
		LEFT JOIN interactions i ON p.id = i.post_id
		ORDER BY p.id ASC
	`)
	if err != nil {
		return fmt.Errorf("failed to stream posts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		ps, err := scanPostWithStats(rows)
		if err != nil {
			return err
		}
		if err := fn(ps); err != nil {
			return err
		}
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*PostRecord, error) {
	var p PostRecord
	var word, level sql.NullString
	var tagsJSON sql.NullString
	var publishedAt sql.NullTime

	err := row.Scan(
		&p.ID, &word, &level, &p.PromptVersion, &p.Title, &tagsJSON,
		&p.ImageSuggestion, &p.PostURL, &p.CreatedAt, &publishedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Word = word.String
	p.Level = level.String
	if tagsJSON.Valid {
		json.Unmarshal([]byte(tagsJSON.String), &p.Tags)
	}
	if publishedAt.Valid {
		p.PublishedAt = publishedAt.Time
	}
	return &p, nil
}

func scanPostWithStats(rows *sql.Rows) (PostWithStats, error) {
	var ps PostWithStats
	var word, level sql.NullString
	var tagsJSON sql.NullString
	var publishedAt sql.NullTime

	err := rows.Scan(
		&ps.Post.ID, &word, &level, &ps.Post.PromptVersion, &ps.Post.Title, &tagsJSON,
		&ps.Post.ImageSuggestion, &ps.Post.PostURL, &ps.Post.CreatedAt, &publishedAt,
		&ps.Stats.Likes, &ps.Stats.Favorites, &ps.Stats.Comments, &ps.Stats.Views,
	)
	if err != nil {
		return ps, err
	}

	ps.Post.Word = word.String
	ps.Post.Level = level.String
	if tagsJSON.Valid {
		json.Unmarshal([]byte(tagsJSON.String), &ps.Post.Tags)
	}
	if publishedAt.Valid {
		ps.Post.PublishedAt = publishedAt.Time
	}
	ps.Stats.PostID = ps.Post.ID
	return ps, nil
}

func scanPostsWithStats(rows *sql.Rows) ([]PostWithStats, error) {
	var posts []PostWithStats
	for rows.Next() {
		ps, err := scanPostWithStats(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, ps)
	}
	return posts, rows.Err()
}
