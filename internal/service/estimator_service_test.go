package service

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meigen/internal/catalog"
	"meigen/internal/domain"
	"meigen/internal/embedding"
	"meigen/internal/emotion"
	"meigen/internal/logging"
)

var (
	adjective = domain.PartOfSpeech{"形容詞", "自立", "*", "*"}
	particle  = domain.PartOfSpeech{"助詞", "終助詞", "*", "*"}
	auxiliary = domain.PartOfSpeech{"助動詞", "*", "*", "*"}
	noun      = domain.PartOfSpeech{"名詞", "一般", "*", "*"}
)

type mapSegmenter map[string][]domain.Token

func (m mapSegmenter) Segment(text string) ([]domain.Token, error) {
	if text == "壊れた" {
		return nil, errors.New("segmenter exploded")
	}
	return m[text], nil
}

const testCatalog = `
emotions:
  - label: 喜び
    synonyms: [嬉しい, 楽しい]
    sayings:
      - {speaker: アラン, text: 笑うから幸福なのだ}
  - label: 悲しみ
    synonyms: [悲しい, 辛い]
    sayings:
      - {speaker: トーマス・フラー, text: 夜明け前が一番暗い}
  - label: 怒り
    synonyms: [怒る]
    sayings:
      - {speaker: セネカ, text: 怒りに対する最大の治療法は、遅延である}
`

func newTestService(t *testing.T, log *logging.Logger) *EstimatorServiceImpl {
	t.Helper()
	emb, err := embedding.NewMapEmbedder(map[string][]float64{
		"喜び":  {1, 0, 0},
		"嬉しい": {1, 0.1, 0},
		"楽しい": {0.9, 0.2, 0},
		"楽しく": {0.9, 0.2, 0},
		"悲しみ": {0, 1, 0},
		"悲しい": {0, 1, 0.1},
		"辛い":  {0.1, 0.9, 0},
		"怒り":  {0, 0, 1},
		"怒る":  {0, 0.1, 1},
	})
	require.NoError(t, err)
	cat, err := catalog.Parse([]byte(testCatalog))
	require.NoError(t, err)
	table, err := emotion.Build(cat.Entries(), emb)
	require.NoError(t, err)

	seg := mapSegmenter{
		"嬉しい": {{Surface: "嬉しい", POS: adjective, BaseForm: "嬉しい"}},
		"楽しくない": {
			{Surface: "楽しく", POS: adjective, BaseForm: "楽しい"},
			{Surface: "ない", POS: auxiliary, BaseForm: "ない"},
		},
		"ねよ": {
			{Surface: "ね", POS: particle, BaseForm: "ね"},
			{Surface: "よ", POS: particle, BaseForm: "よ"},
		},
		"ぴえん": {{Surface: "ぴえん", POS: noun, BaseForm: "ぴえん"}},
	}
	return NewEstimatorService(seg, emb, table, cat, 2, log)
}

func TestEstimate(t *testing.T) {
	svc := newTestService(t, nil)
	scores, err := svc.Estimate("嬉しい")
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Equal(t, "喜び", scores[0].Label)
	for i := 1; i < len(scores); i++ {
		assert.GreaterOrEqual(t, scores[i-1].Score, scores[i].Score)
	}
}

func TestEstimateErrors(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.Estimate("ねよ")
	assert.ErrorIs(t, err, emotion.ErrNoContentWords)

	_, err = svc.Estimate("ぴえん")
	assert.ErrorIs(t, err, emotion.ErrEmptyVector)

	scores, err := svc.Estimate("壊れた")
	assert.Error(t, err)
	assert.Nil(t, scores)
}

func TestReply(t *testing.T) {
	var buf bytes.Buffer
	svc := newTestService(t, logging.NewWriter(&buf, logging.DEBUG))

	reply := svc.Reply("嬉しい")
	assert.Contains(t, reply, "喜びを感じていますか？アランはこう言いました、「笑うから幸福なのだ」")
	assert.Contains(t, reply, "\n\n感情推定結果：喜び (")
	_, result, ok := strings.Cut(reply, "感情推定結果：")
	require.True(t, ok)
	assert.Len(t, strings.Split(result, "、"), 2)
	assert.Contains(t, buf.String(), "[Emotions] 喜び")

	reply = svc.Reply("楽しくない")
	assert.NotContains(t, reply, "喜びを感じていますか？")
	assert.Contains(t, reply, "を感じていますか？")
}

func TestReplyFallback(t *testing.T) {
	var buf bytes.Buffer
	svc := newTestService(t, logging.NewWriter(&buf, logging.DEBUG))

	assert.Equal(t, FallbackReply, svc.Reply("ねよ"))
	assert.Equal(t, FallbackReply, svc.Reply("ぴえん"))
	assert.Equal(t, FallbackReply, svc.Reply("壊れた"))
	assert.Contains(t, buf.String(), `skip "ぴえん"`)
	assert.Contains(t, buf.String(), "[WARN]")
}

func TestFormatScores(t *testing.T) {
	scores := []domain.EmotionScore{
		{Label: "喜び", Score: 0.91234},
		{Label: "悲しみ", Score: 0.5},
		{Label: "怒り", Score: 0.1},
	}
	assert.Equal(t, "喜び (0.912)、悲しみ (0.500)", FormatScores(scores, 2))
	assert.Equal(t, "喜び (0.912)、悲しみ (0.500)、怒り (0.100)", FormatScores(scores, 10))
	assert.Equal(t, "", FormatScores(scores, 0))
}

func TestEstimateConcurrent(t *testing.T) {
	svc := newTestService(t, nil)
	want, err := svc.Estimate("嬉しい")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := svc.Estimate("嬉しい")
			if err != nil {
				errs <- err
				return
			}
			if got[0] != want[0] {
				errs <- errors.New("ranking differs between goroutines")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
