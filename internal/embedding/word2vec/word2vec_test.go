package word2vec

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const textModel = `3 2
嬉しい 1 0
悲しい 0 1
楽しい 0.5 0.5
`

func binaryModel(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("2 3\n")
	for _, w := range []struct {
		word string
		vec  []float32
	}{
		{"喜び", []float32{1, 2, 3}},
		{"怒り", []float32{-1, 0, 0.5}},
	} {
		buf.WriteString(w.word + " ")
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, w.vec))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func TestReadText(t *testing.T) {
	m, err := ReadText(strings.NewReader(textModel))
	require.NoError(t, err)
	assert.Equal(t, 2, m.Dimension())
	assert.Equal(t, 3, m.Len())

	v, ok := m.Vector("楽しい")
	require.True(t, ok)
	assert.Equal(t, []float64{0.5, 0.5}, v)

	_, ok = m.Vector("辛い")
	assert.False(t, ok)
}

func TestVectorReturnsCopy(t *testing.T) {
	m, err := ReadText(strings.NewReader(textModel))
	require.NoError(t, err)
	v, _ := m.Vector("嬉しい")
	v[0] = 42
	again, _ := m.Vector("嬉しい")
	assert.Equal(t, 1.0, again[0])
}

func TestReadTextErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"bad header", "three 2\n"},
		{"short row", "1 3\nword 1 2\n"},
		{"bad value", "1 2\nword 1 x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadText(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestReadBinary(t *testing.T) {
	m, err := ReadBinary(bytes.NewReader(binaryModel(t)))
	require.NoError(t, err)
	assert.Equal(t, 3, m.Dimension())

	v, ok := m.Vector("怒り")
	require.True(t, ok)
	assert.Equal(t, []float64{-1, 0, 0.5}, v)
}

func TestReadBinaryTruncated(t *testing.T) {
	data := binaryModel(t)
	_, err := ReadBinary(bytes.NewReader(data[:len(data)-6]))
	assert.Error(t, err)
}

func TestLoadDefaultPrefersBinary(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultTextFile), []byte(textModel), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultBinaryFile), binaryModel(t), 0o644))

	m, err := LoadDefault(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Dimension())

	require.NoError(t, os.Remove(filepath.Join(dir, DefaultBinaryFile)))
	m, err = LoadDefault(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Dimension())
}

func TestLoadDefaultMissing(t *testing.T) {
	_, err := LoadDefault(t.TempDir())
	assert.ErrorIs(t, err, ErrModelNotFound)
}

func TestLoadAutoDetectsFormat(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "vectors.bin")
	require.NoError(t, os.WriteFile(bin, binaryModel(t), 0o644))

	m, err := Load(bin, FormatAuto)
	require.NoError(t, err)
	_, ok := m.Vector("喜び")
	assert.True(t, ok)

	_, err = Load(bin, Format("glove"))
	assert.Error(t, err)
}
