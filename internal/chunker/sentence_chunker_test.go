package chunker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunk(t *testing.T) {
	c := NewSentenceChunker()
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"japanese", "今日はとても嬉しい。明日は雨らしい！本当？", []string{"今日はとても嬉しい。", "明日は雨らしい！", "本当？"}},
		{"lines", "楽しい\n\n  悲しい  \n", []string{"楽しい", "悲しい"}},
		{"repeated terminators", "えっ！？まじで!!", []string{"えっ！？", "まじで!!"}},
		{"no terminator", "楽しくない", []string{"楽しくない"}},
		{"empty", " \n ", nil},
		{"only punctuation", "。。！", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Chunk(tt.text))
		})
	}
}
