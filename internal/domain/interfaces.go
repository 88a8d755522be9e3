package domain

import "strings"

// PartOfSpeech is a hierarchical part-of-speech tag, most general field first
// (e.g. 名詞, 一般, *, *).
type PartOfSpeech []string

// Category returns the top-level part of speech.
func (p PartOfSpeech) Category() string {
	if len(p) == 0 {
		return ""
	}
	return p[0]
}

// IsDependent reports whether the tag marks a dependent (非自立) form.
func (p PartOfSpeech) IsDependent() bool {
	for _, f := range p {
		if f == "非自立" {
			return true
		}
	}
	return false
}

func (p PartOfSpeech) String() string { return strings.Join(p, ",") }

// Token is a single morpheme produced by a Segmenter.
type Token struct {
	Surface  string
	POS      PartOfSpeech
	BaseForm string
}

// WordWithPolarity is a content word together with its sign in the sentence.
type WordWithPolarity struct {
	Token    Token
	Polarity int
}

// NewWordWithPolarity wraps a token with positive polarity.
func NewWordWithPolarity(t Token) *WordWithPolarity {
	return &WordWithPolarity{Token: t, Polarity: 1}
}

// IsIndependent reports whether the word can be the target of a negation.
func (w *WordWithPolarity) IsIndependent() bool { return !w.Token.POS.IsDependent() }

// InvertPolarity flips the sign of the word.
func (w *WordWithPolarity) InvertPolarity() { w.Polarity = -w.Polarity }

// EmotionVector is the reference direction of one emotion label.
type EmotionVector struct {
	Label  string
	Vector []float64
}

// EmotionScore is a label with its similarity score in [0, 1].
type EmotionScore struct {
	Label string
	Score float64
}

// Saying is a quotation attributed to a speaker.
type Saying struct {
	Speaker string `yaml:"speaker"`
	Text    string `yaml:"text"`
}

// WordEmbedding maps single words to fixed-dimension vectors.
// Vector reports false when the word is not in the model.
type WordEmbedding interface {
	Dimension() int
	Vector(word string) ([]float64, bool)
}

// Segmenter splits raw text into an ordered sequence of tokens.
type Segmenter interface {
	Segment(text string) ([]Token, error)
}

// SayingPicker returns a quotation matching an emotion label.
type SayingPicker interface {
	Pick(label string) (Saying, error)
}

// EstimatorService defines the operations exposed by the application core.
type EstimatorService interface {
	Estimate(sentence string) ([]EmotionScore, error)
	Reply(message string) string
}
