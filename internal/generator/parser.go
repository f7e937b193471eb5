package generator

import (
	"regexp"
	"strings"

	"github.com/yuhaochen/lexipost/internal/types"
)

// Section markers of the structured word-learning output, in order.
var wordSections = []string{"【标题】", "【单词卡】", "【配图建议】", "【正文】", "【标签】", "【meta】"}

// defaultTags fills in when the model produced no usable tag line.
var defaultTags = []string{"英语学习", "记单词", "英语词汇", "学习打卡", "英语干货"}

const maxTags = 8

var tagPattern = regexp.MustCompile(`#([^#\s]+)`)

// ParseWordPost splits the six-section structured output into a
// PostContent. Missing sections degrade to fallbacks instead of failing:
// the model output is advisory, the renderer owns the final layout.
func ParseWordPost(text, word string) *types.PostContent {
	sections := splitSections(text, wordSections)

	title := strings.TrimSpace(sections["【标题】"])
	if title == "" {
		title = "📚 今天学单词：" + word
	}

	card := strings.TrimSpace(sections["【单词卡】"])
	body := strings.TrimSpace(sections["【正文】"])

	tags := extractTags(sections["【标签】"])
	if len(tags) == 0 {
		tags = append([]string(nil), defaultTags...)
	}

	return &types.PostContent{
		Word:            word,
		Title:           title,
		Content:         renderBody(word, card, body),
		Tags:            tags,
		ImageSuggestion: strings.TrimSpace(sections["【配图建议】"]),
		Meta:            extractMeta(sections["【meta】"]),
		Raw:             text,
	}
}

// ParseThemePost splits the five-section free-theme output. The post
// carries no word, so it is exempt from deduplication.
func ParseThemePost(text, theme string) *types.PostContent {
	sections := splitSections(text, wordSections)

	title := strings.TrimSpace(sections["【标题】"])
	if title == "" {
		title = "✨ 今日分享：" + theme
	}

	tags := extractTags(sections["【标签】"])
	if len(tags) == 0 {
		tags = append([]string(nil), defaultTags...)
	}

	return &types.PostContent{
		Title:           title,
		Content:         renderThemeBody(theme, strings.TrimSpace(sections["【正文】"])),
		Tags:            tags,
		ImageSuggestion: strings.TrimSpace(sections["【配图建议】"]),
		Meta:            extractMeta(sections["【meta】"]),
		Raw:             text,
	}
}

// splitSections extracts each marked section's content. A section runs
// from its marker to the nearest following marker.
func splitSections(text string, markers []string) map[string]string {
	out := make(map[string]string, len(markers))
	for _, mark := range markers {
		start := strings.Index(text, mark)
		if start == -1 {
			continue
		}
		rest := text[start+len(mark):]

		end := len(rest)
		for _, next := range markers {
			if next == mark {
				continue
			}
			if j := strings.Index(rest, next); j != -1 && j < end {
				end = j
			}
		}
		out[mark] = strings.TrimSpace(rest[:end])
	}
	return out
}

func extractTags(section string) []string {
	matches := tagPattern.FindAllStringSubmatch(section, -1)
	var tags []string
	for _, m := range matches {
		tags = append(tags, m[1])
		if len(tags) == maxTags {
			break
		}
	}
	return tags
}

// extractMeta parses key=value lines from the meta section.
func extractMeta(section string) map[string]string {
	if strings.TrimSpace(section) == "" {
		return nil
	}
	meta := make(map[string]string)
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		meta[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if len(meta) == 0 {
		return nil
	}
	return meta
}
