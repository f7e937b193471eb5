package types

// PostContent is one generated piece of word-learning content, parsed
// from the structured LLM output and ready for publishing.
type PostContent struct {
	Word            string            `json:"word"`
	Title           string            `json:"title"`
	Content         string            `json:"content"`
	Tags            []string          `json:"tags"`
	ImageSuggestion string            `json:"image_suggestion"`
	Meta            map[string]string `json:"meta,omitempty"`
	Raw             string            `json:"-"`
}

// PromptVersion returns the prompt tag reported by the model in the meta
// section, or fallback when absent.
func (p *PostContent) PromptVersion(fallback string) string {
	if v, ok := p.Meta["prompt"]; ok && v != "" {
		return v
	}
	return fallback
}
