// Package wordlist loads per-level word files (one word per line) and
// picks words that have not been posted yet.
package wordlist

import (
	"bufio"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strings"
)

// ErrAllWordsUsed signals that every word of a level already has a post.
var ErrAllWordsUsed = errors.New("all words of this level have been posted")

// Catalog maps difficulty levels to word files.
type Catalog struct {
	files map[string]string
}

// New creates a catalog from a level -> file path map.
func New(files map[string]string) *Catalog {
	return &Catalog{files: files}
}

// Levels returns the configured level tags, sorted.
func (c *Catalog) Levels() []string {
	levels := make([]string, 0, len(c.files))
	for level := range c.files {
		levels = append(levels, level)
	}
	sort.Strings(levels)
	return levels
}

// Words returns every word of the given level's file.
func (c *Catalog) Words(level string) ([]string, error) {
	path, ok := c.files[level]
	if !ok {
		return nil, fmt.Errorf("no wordlist configured for level %q (have %v)", level, c.Levels())
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open wordlist %s: %w", path, err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read wordlist %s: %w", path, err)
	}

	if len(words) == 0 {
		return nil, fmt.Errorf("wordlist %s is empty", path)
	}
	return words, nil
}

// PickUnposted returns a random word of the level for which posted
// reports false. Returns ErrAllWordsUsed when the level is exhausted.
func (c *Catalog) PickUnposted(level string, posted func(word string) (bool, error)) (string, error) {
	words, err := c.Words(level)
	if err != nil {
		return "", err
	}

	var unused []string
	for _, word := range words {
		done, err := posted(word)
		if err != nil {
			return "", err
		}
		if !done {
			unused = append(unused, word)
		}
	}

	if len(unused) == 0 {
		return "", fmt.Errorf("%w: %s", ErrAllWordsUsed, level)
	}
	return unused[rand.Intn(len(unused))], nil
}
