package publisher

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuhaochen/lexipost/internal/config"
	"github.com/yuhaochen/lexipost/internal/types"
)

func TestTagLine(t *testing.T) {
	assert.Equal(t, "#英语学习# #背单词#", TagLine([]string{"英语学习", "背单词"}))
	assert.Equal(t, "", TagLine(nil))
}

func TestFormatContent(t *testing.T) {
	content := "第一段\n\n第二段\n第三段"

	out := FormatContent(content, []string{"英语学习"})
	assert.Equal(t, "第一段\n\n第二段\n\n第三段\n\n#英语学习#", out)
}

func TestFormatContentNoTags(t *testing.T) {
	out := FormatContent("正文", nil)
	assert.Equal(t, "正文", out)
	assert.NotContains(t, out, "#")
}

func TestPublishLocal(t *testing.T) {
	dir := t.TempDir()
	p := New(config.PublishConfig{
		Mode:      config.PublishModeLocal,
		OutputDir: dir,
	}, nil, zerolog.Nop())

	post := &types.PostContent{
		Word:    "abandon",
		Title:   "📚 今天学单词：abandon",
		Content: "正文内容",
		Tags:    []string{"英语学习", "背单词"},
	}

	result, err := p.Publish(context.Background(), post, "/tmp/abandon.png")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "local", result.Method)
	require.NotEmpty(t, result.TextPath)
	require.NotEmpty(t, result.JSONPath)

	text, err := os.ReadFile(result.TextPath)
	require.NoError(t, err)
	assert.Contains(t, string(text), post.Title)
	assert.Contains(t, string(text), "正文内容")
	assert.Contains(t, string(text), "#英语学习# #背单词#")

	data, err := os.ReadFile(result.JSONPath)
	require.NoError(t, err)
	var sidecar localPost
	require.NoError(t, json.Unmarshal(data, &sidecar))
	assert.Equal(t, "abandon", sidecar.Word)
	assert.Equal(t, "/tmp/abandon.png", sidecar.ImagePath)
	assert.Equal(t, []string{"英语学习", "背单词"}, sidecar.Tags)
}

func TestPublishLocalCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "output")
	p := New(config.PublishConfig{
		Mode:      config.PublishModeLocal,
		OutputDir: dir,
	}, nil, zerolog.Nop())

	_, err := p.Publish(context.Background(), &types.PostContent{
		Title:   "无词主题帖",
		Content: "内容",
	}, "")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestPublishUnknownMode(t *testing.T) {
	p := New(config.PublishConfig{Mode: "carrier-pigeon"}, nil, zerolog.Nop())

	_, err := p.Publish(context.Background(), &types.PostContent{}, "")
	assert.ErrorContains(t, err, "carrier-pigeon")
}
