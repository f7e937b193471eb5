package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuhaochen/lexipost/internal/store"
)

func newTestRecorder(t *testing.T, enabled bool) *Recorder {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return New(s, enabled, zerolog.Nop())
}

func wordMeta(word string) PostMeta {
	return PostMeta{
		Word:          word,
		Level:         "CET-4",
		PromptVersion: "word_learning_v1",
		Title:         "📚 今天学单词：" + word,
		Tags:          []string{"英语学习"},
		CreatedAt:     time.Now(),
	}
}

func TestRecordPost(t *testing.T) {
	r := newTestRecorder(t, true)

	id, skipped, err := r.RecordPost(wordMeta("abandon"))
	require.NoError(t, err)
	assert.False(t, skipped)
	assert.Greater(t, id, int64(0))

	posted, err := r.HasPosted("abandon", "CET-4", "word_learning_v1")
	require.NoError(t, err)
	assert.True(t, posted)
}

func TestRecordPostDuplicateIsSkipped(t *testing.T) {
	r := newTestRecorder(t, true)

	_, skipped, err := r.RecordPost(wordMeta("abandon"))
	require.NoError(t, err)
	require.False(t, skipped)

	id, skipped, err := r.RecordPost(wordMeta("abandon"))
	require.NoError(t, err)
	assert.True(t, skipped)
	assert.Zero(t, id)

	st, err := r.Stats(store.StatsFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, st.TotalPosts)
}

func TestRecordPostDifferentVersionNotSkipped(t *testing.T) {
	r := newTestRecorder(t, true)

	_, _, err := r.RecordPost(wordMeta("abandon"))
	require.NoError(t, err)

	meta := wordMeta("abandon")
	meta.PromptVersion = "word_learning_v2"
	_, skipped, err := r.RecordPost(meta)
	require.NoError(t, err)
	assert.False(t, skipped)
}

func TestRecorderDisabled(t *testing.T) {
	r := newTestRecorder(t, false)

	assert.False(t, r.Enabled())

	_, _, err := r.RecordPost(wordMeta("abandon"))
	assert.ErrorIs(t, err, ErrRecordingDisabled)

	err = r.UpdateInteractions(1, store.InteractionDelta{})
	assert.ErrorIs(t, err, ErrRecordingDisabled)

	posted, err := r.HasPosted("abandon", "CET-4", "word_learning_v1")
	require.NoError(t, err)
	assert.False(t, posted)
}

func TestUpdateInteractionsRoundTrip(t *testing.T) {
	r := newTestRecorder(t, true)

	id, _, err := r.RecordPost(wordMeta("abandon"))
	require.NoError(t, err)

	likes := 12
	require.NoError(t, r.UpdateInteractions(id, store.InteractionDelta{Likes: &likes}))

	posts, err := r.RecentPosts(1)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, 12, posts[0].Stats.Likes)
}

func TestUpdateInteractionsUnknownPost(t *testing.T) {
	r := newTestRecorder(t, true)

	likes := 1
	err := r.UpdateInteractions(77, store.InteractionDelta{Likes: &likes})
	assert.ErrorIs(t, err, store.ErrPostNotFound)
}
