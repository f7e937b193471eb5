// Package prompt holds the generation templates. Templates only shape
// content material; the final post layout is owned by the renderer.
package prompt

import "fmt"

// Version tags which template produced a post, for A/B comparison.
const Version = "word_learning_v1"

// BuildWordLearning returns the structured word-learning prompt. The
// model must answer in six marked sections so the parser can split them.
func BuildWordLearning(word, level string) string {
	return fmt.Sprintf(`请为小红书平台生成一篇关于英语单词“%s”（难度 %s）的记单词帖子素材。

严格按以下六个段落输出，段落标记必须原样保留：

【标题】
吸引眼球的标题，15-25字，可以带emoji。

【单词卡】
单词的音标、词性和中文释义，如：n. 释义; v. 释义。

【配图建议】
一句话描述适合这个单词的配图。

【正文】
记忆技巧（联想、词根词缀或小故事）+ 2-3个中英对照例句 + 相关词汇扩展，轻松活泼，200-400字。

【标签】
5-8个话题标签，格式：#话题#

【meta】
prompt=%s

除以上六个段落外不要输出任何内容。`, word, level, Version)
}

// ThemeVersion tags posts produced from the free-theme template.
const ThemeVersion = "theme_v1"

// BuildTheme returns the prompt for a general English-learning post on a
// free theme, without the word-card section.
func BuildTheme(theme string) string {
	return fmt.Sprintf(`请为小红书平台生成一篇主题为“%s”的英语学习帖子素材。

严格按以下五个段落输出，段落标记必须原样保留：

【标题】
吸引眼球的标题，15-25字，可以带emoji。

【配图建议】
一句话描述适合这个主题的配图。

【正文】
干货内容 + 2-3个中英对照例句，轻松活泼，200-400字。

【标签】
5-8个话题标签，格式：#话题#

【meta】
prompt=%s

除以上五个段落外不要输出任何内容。`, theme, ThemeVersion)
}
