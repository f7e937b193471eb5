package wordlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWordFile(t *testing.T, words string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte(words), 0644))
	return path
}

func TestWords(t *testing.T) {
	path := writeWordFile(t, "abandon\n\n  serendipity  \nubiquitous\n")
	c := New(map[string]string{"CET-4": path})

	words, err := c.Words("CET-4")
	require.NoError(t, err)
	assert.Equal(t, []string{"abandon", "serendipity", "ubiquitous"}, words)
}

func TestWordsUnknownLevel(t *testing.T) {
	c := New(map[string]string{"CET-4": "somewhere.txt"})

	_, err := c.Words("GRE")
	assert.ErrorContains(t, err, "GRE")
}

func TestWordsEmptyFile(t *testing.T) {
	path := writeWordFile(t, "\n\n")
	c := New(map[string]string{"CET-4": path})

	_, err := c.Words("CET-4")
	assert.ErrorContains(t, err, "empty")
}

func TestLevelsSorted(t *testing.T) {
	c := New(map[string]string{"GRE": "a", "CET-4": "b", "CET-6": "c"})
	assert.Equal(t, []string{"CET-4", "CET-6", "GRE"}, c.Levels())
}

func TestPickUnposted(t *testing.T) {
	path := writeWordFile(t, "abandon\nserendipity\nubiquitous\n")
	c := New(map[string]string{"CET-4": path})

	posted := map[string]bool{"abandon": true, "ubiquitous": true}
	word, err := c.PickUnposted("CET-4", func(w string) (bool, error) {
		return posted[w], nil
	})
	require.NoError(t, err)
	assert.Equal(t, "serendipity", word)
}

func TestPickUnpostedAllUsed(t *testing.T) {
	path := writeWordFile(t, "abandon\nserendipity\n")
	c := New(map[string]string{"CET-4": path})

	_, err := c.PickUnposted("CET-4", func(string) (bool, error) {
		return true, nil
	})
	assert.ErrorIs(t, err, ErrAllWordsUsed)
}
