package kagome

import (
	"fmt"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"meigen/internal/domain"
)

// posFields is the depth of the IPA part-of-speech hierarchy.
const posFields = 4

// Segmenter splits Japanese text into morphemes with the IPA dictionary.
type Segmenter struct {
	tokenizer *tokenizer.Tokenizer
}

// NewSegmenter loads the embedded IPA dictionary.
func NewSegmenter() (*Segmenter, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("kagome tokenizer: %w", err)
	}
	return &Segmenter{tokenizer: t}, nil
}

// Name returns the identifier of this segmenter implementation.
func (s *Segmenter) Name() string { return "kagome" }

// Segment returns the morphemes of text in order. Unknown words keep their
// surface form as base form.
func (s *Segmenter) Segment(text string) ([]domain.Token, error) {
	tokens := s.tokenizer.Tokenize(text)
	out := make([]domain.Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Class == tokenizer.DUMMY {
			continue
		}
		out = append(out, toToken(t.Surface, t.Features()))
	}
	return out, nil
}

func toToken(surface string, features []string) domain.Token {
	n := posFields
	if len(features) < n {
		n = len(features)
	}
	pos := make(domain.PartOfSpeech, posFields)
	for i := range pos {
		pos[i] = "*"
		if i < n {
			pos[i] = features[i]
		}
	}
	base := surface
	if len(features) > 6 && features[6] != "" && features[6] != "*" {
		base = features[6]
	}
	return domain.Token{Surface: surface, POS: pos, BaseForm: base}
}
