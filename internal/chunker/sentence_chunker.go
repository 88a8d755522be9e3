package chunker

import (
	"regexp"
	"strings"
)

// SentenceChunker splits text into sentences on Japanese and ASCII
// terminators and line breaks.
type SentenceChunker struct {
	splitter *regexp.Regexp
}

func NewSentenceChunker() *SentenceChunker {
	return &SentenceChunker{
		splitter: regexp.MustCompile(`[^。．！？!?\n]+[。．！？!?]*`),
	}
}

// Chunk returns the trimmed, non-empty sentences of text in order.
// Terminators stay attached to their sentence.
func (c *SentenceChunker) Chunk(text string) []string {
	var out []string
	for _, s := range c.splitter.FindAllString(text, -1) {
		s = strings.TrimSpace(s)
		if s == "" || strings.Trim(s, "。．！？!?") == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
