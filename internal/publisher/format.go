package publisher

import "strings"

// FormatContent normalizes paragraph spacing and appends the tag line in
// the platform's #tag# form.
func FormatContent(content string, tags []string) string {
	formatted := strings.ReplaceAll(content, "\n\n", "\n")
	formatted = strings.ReplaceAll(formatted, "\n", "\n\n")

	if len(tags) > 0 {
		formatted += "\n\n" + TagLine(tags)
	}
	return formatted
}

// TagLine renders tags as a single #a# #b# line.
func TagLine(tags []string) string {
	parts := make([]string, len(tags))
	for i, tag := range tags {
		parts[i] = "#" + tag + "#"
	}
	return strings.Join(parts, " ")
}
