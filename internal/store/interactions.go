package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// UpsertInteractions creates the metrics row for postID if absent
// (defaulting every field to 0) and overwrites only the fields carried by
// delta. The whole operation runs in one transaction so concurrent
// updates to disjoint fields cannot lose each other. Returns
// ErrPostNotFound when postID has no post row; nothing is written in
// that case.
func (s *Store) UpsertInteractions(postID int64, delta InteractionDelta) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM posts WHERE id = ?)`, postID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check post: %w", err)
	}
	if !exists {
		return ErrPostNotFound
	}

	now := time.Now()

	_, err = tx.Exec(`
		INSERT INTO interactions (post_id, updated_at) VALUES (?, ?)
		ON CONFLICT(post_id) DO NOTHING
	`, postID, now)
	if err != nil {
		return fmt.Errorf("failed to ensure interaction row: %w", err)
	}

	sets := []string{"updated_at = ?"}
	args := []any{now}
	if delta.Likes != nil {
		sets = append(sets, "likes = ?")
		args = append(args, *delta.Likes)
	}
	if delta.Favorites != nil {
		sets = append(sets, "favorites = ?")
		args = append(args, *delta.Favorites)
	}
	if delta.Comments != nil {
		sets = append(sets, "comments = ?")
		args = append(args, *delta.Comments)
	}
	if delta.Views != nil {
		sets = append(sets, "views = ?")
		args = append(args, *delta.Views)
	}
	args = append(args, postID)

	_, err = tx.Exec(`UPDATE interactions SET `+strings.Join(sets, ", ")+` WHERE post_id = ?`, args...)
	if err != nil {
		return fmt.Errorf("failed to update interactions: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit interactions: %w", err)
	}
	return nil
}

// GetInteractions returns the current metrics for postID, zero-valued
// when none have been recorded.
func (s *Store) GetInteractions(postID int64) (*InteractionRecord, error) {
	var rec InteractionRecord
	err := s.db.QueryRow(`
		SELECT post_id, likes, favorites, comments, views, updated_at
		FROM interactions
		WHERE post_id = ?
	`, postID).Scan(&rec.PostID, &rec.Likes, &rec.Favorites, &rec.Comments, &rec.Views, &rec.UpdatedAt)
	if err == sql.ErrNoRows {
		return &InteractionRecord{PostID: postID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get interactions: %w", err)
	}
	return &rec, nil
}
