package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleOutput = `【标题】
📚 abandon：这个单词别再记错了！

【单词卡】
abandon /əˈbændən/ v. 放弃，抛弃

【配图建议】
简约风格单词卡片，粉色背景

【正文】
这个词在四级考试里出现频率很高。
常见搭配：abandon oneself to

【标签】
#英语学习 #四级单词 #abandon #背单词

【meta】
prompt = word_learning_v1
model = qwen2.5:3b
`

func TestParseWordPost(t *testing.T) {
	post := ParseWordPost(sampleOutput, "abandon")

	assert.Equal(t, "abandon", post.Word)
	assert.Equal(t, "📚 abandon：这个单词别再记错了！", post.Title)
	assert.Equal(t, []string{"英语学习", "四级单词", "abandon", "背单词"}, post.Tags)
	assert.Equal(t, "简约风格单词卡片，粉色背景", post.ImageSuggestion)
	assert.Equal(t, sampleOutput, post.Raw)

	require.NotNil(t, post.Meta)
	assert.Equal(t, "word_learning_v1", post.Meta["prompt"])
	assert.Equal(t, "qwen2.5:3b", post.Meta["model"])

	assert.Contains(t, post.Content, "abandon /əˈbændən/ v. 放弃，抛弃")
	assert.Contains(t, post.Content, "常见搭配：abandon oneself to")
}

func TestParseWordPostMissingSections(t *testing.T) {
	post := ParseWordPost("模型输出了完全不符合格式的内容", "serendipity")

	assert.Equal(t, "📚 今天学单词：serendipity", post.Title)
	assert.Equal(t, defaultTags, post.Tags)
	assert.Empty(t, post.ImageSuggestion)
	assert.Nil(t, post.Meta)
	assert.Contains(t, post.Content, "serendipity")
}

func TestParseWordPostTagCap(t *testing.T) {
	var tags []string
	for _, r := range "abcdefghijkl" {
		tags = append(tags, "#tag"+string(r))
	}
	text := "【标签】\n" + strings.Join(tags, " ")

	post := ParseWordPost(text, "abandon")
	assert.Len(t, post.Tags, maxTags)
	assert.Equal(t, "taga", post.Tags[0])
}

func TestParseWordPostSectionsOutOfOrder(t *testing.T) {
	text := "【正文】\n正文内容\n【标题】\n乱序标题\n【单词卡】\n卡片内容"

	post := ParseWordPost(text, "abandon")
	assert.Equal(t, "乱序标题", post.Title)
	assert.Contains(t, post.Content, "正文内容")
	assert.Contains(t, post.Content, "卡片内容")
}

func TestParseThemePost(t *testing.T) {
	text := "【标题】\n🔥 英语口语速成\n【配图建议】\n咖啡馆场景\n【正文】\n主题正文内容\n【标签】\n#英语口语\n【meta】\nprompt=theme_v1"

	post := ParseThemePost(text, "英语口语")
	assert.Empty(t, post.Word)
	assert.Equal(t, "🔥 英语口语速成", post.Title)
	assert.Equal(t, []string{"英语口语"}, post.Tags)
	assert.Equal(t, "咖啡馆场景", post.ImageSuggestion)
	assert.Equal(t, "theme_v1", post.Meta["prompt"])
	assert.Contains(t, post.Content, "主题正文内容")
}

func TestParseThemePostFallbackTitle(t *testing.T) {
	post := ParseThemePost("无格式输出", "英语口语")
	assert.Equal(t, "✨ 今日分享：英语口语", post.Title)
	assert.Equal(t, defaultTags, post.Tags)
}

func TestPromptVersionFromMeta(t *testing.T) {
	post := ParseWordPost(sampleOutput, "abandon")
	assert.Equal(t, "word_learning_v1", post.PromptVersion("fallback_v0"))

	post = ParseWordPost("no meta here", "abandon")
	assert.Equal(t, "fallback_v0", post.PromptVersion("fallback_v0"))
}

func TestRenderBodyDeterministic(t *testing.T) {
	a := renderBody("abandon", "card", "body")
	b := renderBody("abandon", "card", "body")
	assert.Equal(t, a, b)

	assert.Contains(t, a, "✨ abandon ✨")
	assert.Contains(t, a, "🔑 核心含义\ncard")
	assert.Contains(t, a, "🧠 用法 + 记忆技巧\nbody")

	header := strings.Split(a, "\n\n")[0]
	assert.Contains(t, bodyHeaders, header)
}

func TestRenderBodySkipsEmptySections(t *testing.T) {
	out := renderBody("abandon", "", "")
	assert.NotContains(t, out, "核心含义")
	assert.NotContains(t, out, "记忆技巧")
	assert.Contains(t, out, "✨ abandon ✨")
}
