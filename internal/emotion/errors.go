package emotion

import (
	"errors"
	"fmt"
)

var (
	// ErrNoContentWords is returned when a sentence has no noun, verb,
	// adverb, adjective or interjection.
	ErrNoContentWords = errors.New("no content words in sentence")
	// ErrEmptyVector is returned when none of the content words are known
	// to the embedding.
	ErrEmptyVector = errors.New("no content word has an embedding")
)

// ConfigError reports an emotion catalog that cannot be turned into
// reference vectors. It is fatal at startup.
type ConfigError struct {
	Label  string
	Word   string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Word == "" {
		return fmt.Sprintf("emotion %q: %s", e.Label, e.Reason)
	}
	return fmt.Sprintf("emotion %q: word %q: %s", e.Label, e.Word, e.Reason)
}
