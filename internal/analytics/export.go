package analytics

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/yuhaochen/lexipost/internal/store"
)

// csvHeader fixes the export field order.
var csvHeader = []string{"word", "level", "prompt_version", "likes", "favorites", "comments"}

// WriteCSV streams the flat row-per-post engagement table to w: one
// header row, UTF-8, one row per post in insertion order. Posts without
// recorded interactions export zeroes.
func (e *Engine) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(csvHeader); err != nil {
		return err
	}

	err := e.store.StreamPosts(func(ps store.PostWithStats) error {
		return writer.Write([]string{
			ps.Post.Word,
			ps.Post.Level,
			ps.Post.PromptVersion,
			strconv.Itoa(ps.Stats.Likes),
			strconv.Itoa(ps.Stats.Favorites),
			strconv.Itoa(ps.Stats.Comments),
		})
	})
	if err != nil {
		return err
	}

	writer.Flush()
	return writer.Error()
}
