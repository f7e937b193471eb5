package analytics

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuhaochen/lexipost/internal/store"
)

func newTestEngine(t *testing.T) (*Engine, *store.Store) {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return New(s), s
}

func seedPost(t *testing.T, s *store.Store, word, level, version string, likes int, at time.Time) int64 {
	t.Helper()
	id, err := s.InsertPost(&store.PostRecord{
		Word:          word,
		Level:         level,
		PromptVersion: version,
		Title:         "📚 今天学单词：" + word,
		CreatedAt:     at,
	})
	require.NoError(t, err)
	if likes > 0 {
		require.NoError(t, s.UpsertInteractions(id, store.InteractionDelta{Likes: &likes}))
	}
	return id
}

func TestReport(t *testing.T) {
	e, s := newTestEngine(t)

	t1 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	seedPost(t, s, "abandon", "CET-4", "v1", 10, t1)
	seedPost(t, s, "serendipity", "CET-6", "v2", 30, t1.Add(time.Hour))

	report, err := e.Report()
	require.NoError(t, err)

	require.Len(t, report.PromptVersions, 2)
	assert.Equal(t, "v2", report.PromptVersions[0].PromptVersion)
	assert.Equal(t, "v1", report.PromptVersions[1].PromptVersion)

	require.Len(t, report.Levels, 2)
	assert.Equal(t, "CET-6", report.Levels[0].Level)

	require.Len(t, report.RecentPosts, 2)
	assert.Equal(t, "serendipity", report.RecentPosts[0].Post.Word)
}

func TestReportEmptyStore(t *testing.T) {
	e, _ := newTestEngine(t)

	report, err := e.Report()
	require.NoError(t, err)
	assert.Empty(t, report.PromptVersions)
	assert.Empty(t, report.Levels)
	assert.Empty(t, report.RecentPosts)

	var buf bytes.Buffer
	report.Render(&buf)
	assert.Contains(t, buf.String(), "Prompt version comparison:")
}

func TestReportRender(t *testing.T) {
	e, s := newTestEngine(t)

	seedPost(t, s, "abandon", "CET-4", "v1", 10, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	report, err := e.Report()
	require.NoError(t, err)

	var buf bytes.Buffer
	report.Render(&buf)
	out := buf.String()
	assert.Contains(t, out, "v1: avg likes 10.00")
	assert.Contains(t, out, "CET-4")
	assert.Contains(t, out, "abandon")
}

func TestWriteCSV(t *testing.T) {
	e, s := newTestEngine(t)

	t1 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	seedPost(t, s, "abandon", "CET-4", "v1", 10, t1)
	id2 := seedPost(t, s, "serendipity", "CET-6", "v1", 0, t1.Add(time.Hour))
	favs := 3
	require.NoError(t, s.UpsertInteractions(id2, store.InteractionDelta{Favorites: &favs}))

	var buf bytes.Buffer
	require.NoError(t, e.WriteCSV(&buf))

	lines := splitLines(buf.String())
	require.Len(t, lines, 3)
	assert.Equal(t, "word,level,prompt_version,likes,favorites,comments", lines[0])
	assert.Equal(t, "abandon,CET-4,v1,10,0,0", lines[1])
	assert.Equal(t, "serendipity,CET-6,v1,0,3,0", lines[2])
}

func TestWriteCSVEmptyStore(t *testing.T) {
	e, _ := newTestEngine(t)

	var buf bytes.Buffer
	require.NoError(t, e.WriteCSV(&buf))

	lines := splitLines(buf.String())
	require.Len(t, lines, 1)
	assert.Equal(t, "word,level,prompt_version,likes,favorites,comments", lines[0])
}

func splitLines(s string) []string {
	var lines []string
	for _, l := range bytes.Split([]byte(s), []byte("\n")) {
		if len(bytes.TrimSpace(l)) > 0 {
			lines = append(lines, string(bytes.TrimRight(l, "\r")))
		}
	}
	return lines
}
