package service

import (
	"errors"
	"fmt"
	"strings"

	"meigen/internal/domain"
	"meigen/internal/emotion"
	"meigen/internal/logging"
)

// FallbackReply is sent when no emotion could be estimated.
const FallbackReply = "あなたの感情を推定できませんでした。"

var _ domain.EstimatorService = (*EstimatorServiceImpl)(nil)

type EstimatorServiceImpl struct {
	vectorizer *emotion.Vectorizer
	table      *emotion.Table
	sayings    domain.SayingPicker
	topK       int
	log        *logging.Logger
}

// NewEstimatorService wires the request path around an already built table.
func NewEstimatorService(segmenter domain.Segmenter, embedding domain.WordEmbedding, table *emotion.Table, sayings domain.SayingPicker, topK int, log *logging.Logger) *EstimatorServiceImpl {
	if log == nil {
		log = logging.Discard()
	}
	if topK <= 0 {
		topK = 3
	}
	v := emotion.NewVectorizer(segmenter, embedding)
	v.OnSkip = func(word string) { log.Debug("skip %q: not in embedding", word) }
	return &EstimatorServiceImpl{vectorizer: v, table: table, sayings: sayings, topK: topK, log: log}
}

// Estimate ranks every configured emotion for the sentence, best first.
func (s *EstimatorServiceImpl) Estimate(sentence string) ([]domain.EmotionScore, error) {
	vec, err := s.vectorizer.Vectorize(sentence)
	if err != nil {
		return nil, err
	}
	scores := s.table.Rank(vec)
	s.log.Debug("[Emotions] %s", FormatScores(scores, len(scores)))
	return scores, nil
}

// Reply answers a message with a saying matching its strongest emotion and
// the top-k estimation result.
func (s *EstimatorServiceImpl) Reply(message string) string {
	scores, err := s.Estimate(message)
	if err != nil {
		if errors.Is(err, emotion.ErrNoContentWords) || errors.Is(err, emotion.ErrEmptyVector) {
			s.log.Info("estimate %q: %v", message, err)
		} else {
			s.log.Warn("estimate %q: %v", message, err)
		}
		return FallbackReply
	}
	top := scores[0].Label
	saying, err := s.sayings.Pick(top)
	if err != nil {
		s.log.Warn("pick saying for %s: %v", top, err)
		return FallbackReply
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%sを感じていますか？%sはこう言いました、「%s」", top, saying.Speaker, saying.Text)
	b.WriteString("\n\n感情推定結果：")
	b.WriteString(FormatScores(scores, s.topK))
	return b.String()
}

// FormatScores renders the first k scores as "label (0.123)" joined by 、.
func FormatScores(scores []domain.EmotionScore, k int) string {
	if k > len(scores) {
		k = len(scores)
	}
	if k < 0 {
		k = 0
	}
	parts := make([]string, 0, k)
	for _, sc := range scores[:k] {
		parts = append(parts, fmt.Sprintf("%s (%.3f)", sc.Label, sc.Score))
	}
	return strings.Join(parts, "、")
}
