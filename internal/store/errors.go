package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPostNotFound signals that the referenced post does not exist.
var ErrPostNotFound = errors.New("post not found")

// ErrDuplicatePost signals that a post with the same
// (word, level, prompt_version) triple already exists. Callers treat this
// as "skipped", not as a failure.
var ErrDuplicatePost = errors.New("post already recorded")

// ValidationError reports a missing or malformed post field, rejected
// before any write.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid post record: missing %s", e.Field)
}

// isUniqueViolation reports whether err is a SQLite unique-constraint
// failure on the dedup index.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
