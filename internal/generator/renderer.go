package generator

import (
	"hash/fnv"
	"strings"
)

// The renderer is the single place deciding the final body layout.
// Header and footer are pinned per word so a re-generated post for the
// same word is byte-identical, which keeps A/B comparisons replayable.

var bodyHeaders = []string{
	"📘 今天一起轻松记一个高频单词，点赞支持这个英语学习帖吧～",
	"📚 每天一个单词，慢慢把英语捡回来～点赞 + 收藏更好吸收",
}

var bodyFooters = []string{
	"👍 点赞是对我最大的支持，收藏起来反复看～",
	"📌 建议收藏，下次刷到还能复习这个单词",
}

// renderBody assembles the final post body from the parsed word card and
// main text.
func renderBody(word, card, body string) string {
	seed := fnv32(word)

	var parts []string
	parts = append(parts, bodyHeaders[seed%uint32(len(bodyHeaders))])
	parts = append(parts, "✨ "+word+" ✨")
	if card != "" {
		parts = append(parts, "🔑 核心含义\n"+card)
	}
	if body != "" {
		parts = append(parts, "🧠 用法 + 记忆技巧\n"+body)
	}
	parts = append(parts, bodyFooters[seed%uint32(len(bodyFooters))])

	return strings.Join(parts, "\n\n")
}

// renderThemeBody assembles a free-theme post body. No word card, just
// the main text framed by the pinned footer.
func renderThemeBody(theme, body string) string {
	seed := fnv32(theme)

	var parts []string
	if body != "" {
		parts = append(parts, body)
	}
	parts = append(parts, bodyFooters[seed%uint32(len(bodyFooters))])

	return strings.Join(parts, "\n\n")
}

func fnv32(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}
