package emotion

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"

	"meigen/internal/domain"
)

// contentCategories are the parts of speech that carry meaning in a sentence.
var contentCategories = map[string]struct{}{
	"名詞":  {},
	"動詞":  {},
	"副詞":  {},
	"形容詞": {},
	"感動詞": {},
}

// negationBaseForms are the morphemes that negate the preceding word.
var negationBaseForms = map[string]struct{}{
	"ない": {},
	"ず":  {},
	"ぬ":  {},
	"ん":  {},
}

// ありません segments as あり (independent verb) + ませ + ん, which would
// negate あり itself instead of the word before it.
var negatedExistence = strings.NewReplacer("ありません", "ない")

// Vectorizer turns a sentence into the mean of its content words' unit
// vectors, with negated words pointing the opposite way.
type Vectorizer struct {
	segmenter domain.Segmenter
	embedding domain.WordEmbedding
	// OnSkip, when set, is called for every content word missing from the embedding.
	OnSkip func(word string)
}

func NewVectorizer(segmenter domain.Segmenter, embedding domain.WordEmbedding) *Vectorizer {
	return &Vectorizer{segmenter: segmenter, embedding: embedding}
}

// ContentWords segments the sentence and returns its content words with
// negation applied.
func (v *Vectorizer) ContentWords(sentence string) ([]*domain.WordWithPolarity, error) {
	tokens, err := v.segmenter.Segment(negatedExistence.Replace(sentence))
	if err != nil {
		return nil, fmt.Errorf("segment: %w", err)
	}
	return Polarize(tokens), nil
}

// Vectorize returns the sentence vector. It fails with ErrNoContentWords or
// ErrEmptyVector rather than returning an undefined mean.
func (v *Vectorizer) Vectorize(sentence string) ([]float64, error) {
	words, err := v.ContentWords(sentence)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, ErrNoContentWords
	}
	sum := make([]float64, v.embedding.Dimension())
	n := 0
	for _, w := range words {
		vec, ok := v.embedding.Vector(w.Token.Surface)
		if ok && len(vec) == len(sum) {
			vec, ok = unit(vec)
		} else {
			ok = false
		}
		if !ok {
			if v.OnSkip != nil {
				v.OnSkip(w.Token.Surface)
			}
			continue
		}
		floats.AddScaled(sum, float64(w.Polarity), vec)
		n++
	}
	if n == 0 {
		return nil, ErrEmptyVector
	}
	floats.Scale(1/float64(n), sum)
	return sum, nil
}

// Polarize collects the content words of a token stream. Each negation
// morpheme inverts the nearest preceding independent content word.
func Polarize(tokens []domain.Token) []*domain.WordWithPolarity {
	var words []*domain.WordWithPolarity
	for _, t := range tokens {
		if IsContentWord(t) {
			words = append(words, domain.NewWordWithPolarity(t))
			continue
		}
		if !IsNegation(t) {
			continue
		}
		for i := len(words) - 1; i >= 0; i-- {
			if words[i].IsIndependent() {
				words[i].InvertPolarity()
				break
			}
		}
	}
	return words
}

// IsContentWord reports whether the token is a noun, verb, adverb, adjective
// or interjection.
func IsContentWord(t domain.Token) bool {
	_, ok := contentCategories[t.POS.Category()]
	return ok
}

// IsNegation reports whether the token's base form is a negation morpheme.
func IsNegation(t domain.Token) bool {
	_, ok := negationBaseForms[t.BaseForm]
	return ok
}
