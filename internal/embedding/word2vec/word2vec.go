package word2vec

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Format selects the on-disk layout of a word2vec model.
type Format string

const (
	FormatAuto   Format = "auto"
	FormatText   Format = "text"
	FormatBinary Format = "binary"
)

// Default file names probed by LoadDefault, in order.
const (
	DefaultBinaryFile = "word_vectors.bin"
	DefaultTextFile   = "word_vectors.txt"
)

// ErrModelNotFound is returned by LoadDefault when no model file exists.
var ErrModelNotFound = errors.New("pretrained word vectors not found")

// Model is a pretrained word2vec model held in memory.
type Model struct {
	dimension int
	index     map[string]int
	data      []float32
}

// Dimension returns the length of every vector in the model.
func (m *Model) Dimension() int { return m.dimension }

// Len returns the vocabulary size.
func (m *Model) Len() int { return len(m.index) }

// Vector returns a fresh copy of the word's vector.
func (m *Model) Vector(word string) ([]float64, bool) {
	i, ok := m.index[word]
	if !ok {
		return nil, false
	}
	row := m.data[i*m.dimension : (i+1)*m.dimension]
	out := make([]float64, m.dimension)
	for j, v := range row {
		out[j] = float64(v)
	}
	return out, true
}

// LoadDefault loads word_vectors.bin or, failing that, word_vectors.txt from dir.
func LoadDefault(dir string) (*Model, error) {
	bin := filepath.Join(dir, DefaultBinaryFile)
	if _, err := os.Stat(bin); err == nil {
		return Load(bin, FormatBinary)
	}
	txt := filepath.Join(dir, DefaultTextFile)
	if _, err := os.Stat(txt); err == nil {
		return Load(txt, FormatText)
	}
	return nil, fmt.Errorf("%w in %s", ErrModelNotFound, dir)
}

// Load reads a model file. FormatAuto picks binary for a .bin extension.
func Load(path string, format Format) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if format == FormatAuto || format == "" {
		format = FormatText
		if strings.EqualFold(filepath.Ext(path), ".bin") {
			format = FormatBinary
		}
	}
	var m *Model
	switch format {
	case FormatText:
		m, err = ReadText(f)
	case FormatBinary:
		m, err = ReadBinary(f)
	default:
		return nil, fmt.Errorf("unknown word2vec format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return m, nil
}

// ReadText parses the text format: a "count dimension" header followed by
// one "word v1 ... vD" line per word.
func ReadText(r io.Reader) (*Model, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, errors.New("missing header")
	}
	count, dim, err := parseHeader(sc.Text())
	if err != nil {
		return nil, err
	}
	m := newModel(count, dim)
	line := 1
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != dim+1 {
			return nil, fmt.Errorf("line %d: expected %d values, got %d", line, dim, len(fields)-1)
		}
		row := make([]float32, dim)
		for i, s := range fields[1:] {
			v, err := strconv.ParseFloat(s, 32)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			row[i] = float32(v)
		}
		m.add(fields[0], row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// ReadBinary parses the binary format: a "count dimension" header line, then
// for each word its bytes, a space and dimension little-endian float32 values.
func ReadBinary(r io.Reader) (*Model, error) {
	br := bufio.NewReader(r)
	header, err := br.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	count, dim, err := parseHeader(header)
	if err != nil {
		return nil, err
	}
	m := newModel(count, dim)
	for i := 0; i < count; i++ {
		word, err := br.ReadString(' ')
		if err != nil {
			return nil, fmt.Errorf("word %d: %w", i, err)
		}
		word = strings.TrimLeft(strings.TrimSuffix(word, " "), "\n")
		row := make([]float32, dim)
		if err := binary.Read(br, binary.LittleEndian, row); err != nil {
			return nil, fmt.Errorf("vector %d (%s): %w", i, word, err)
		}
		m.add(word, row)
	}
	return m, nil
}

func parseHeader(s string) (count, dim int, err error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("malformed header %q", strings.TrimSpace(s))
	}
	if count, err = strconv.Atoi(fields[0]); err != nil {
		return 0, 0, fmt.Errorf("malformed header: %w", err)
	}
	if dim, err = strconv.Atoi(fields[1]); err != nil {
		return 0, 0, fmt.Errorf("malformed header: %w", err)
	}
	if count < 0 || dim <= 0 {
		return 0, 0, fmt.Errorf("malformed header %q", strings.TrimSpace(s))
	}
	return count, dim, nil
}

func newModel(count, dim int) *Model {
	return &Model{
		dimension: dim,
		index:     make(map[string]int, count),
		data:      make([]float32, 0, count*dim),
	}
}

// add keeps the first occurrence of a duplicated word.
func (m *Model) add(word string, row []float32) {
	if _, dup := m.index[word]; dup {
		return
	}
	m.index[word] = len(m.index)
	m.data = append(m.data, row...)
}
