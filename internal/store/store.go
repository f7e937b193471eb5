package store

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store handles all database operations
type Store struct {
	db *sql.DB
}

// New creates a new Store with SQLite backend
func New(dbPath string) (*Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// Writes from the posting cycle and interaction updates may arrive
	// from different goroutines; a single connection serializes them.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS posts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		word TEXT,
		level TEXT,
		prompt_version TEXT NOT NULL,
		title TEXT,
		tags TEXT,
		image_suggestion TEXT,
		post_url TEXT,
		created_at DATETIME NOT NULL,
		published_at DATETIME
	);

	CREATE TABLE IF NOT EXISTS interactions (
		post_id INTEGER PRIMARY KEY REFERENCES posts(id),
		likes INTEGER NOT NULL DEFAULT 0,
		favorites INTEGER NOT NULL DEFAULT 0,
		comments INTEGER NOT NULL DEFAULT 0,
		views INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_posts_dedup
		ON posts(word, COALESCE(level, ''), prompt_version)
		WHERE word IS NOT NULL;

	CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at);
	CREATE INDEX IF NOT EXISTS idx_posts_prompt_version ON posts(prompt_version);
	`

	_, err := s.db.Exec(schema)
	return err
}

// nullable returns a NULL-able form of v, treating "" as NULL.
func nullable(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
