package embedding

import "errors"

// Embedder maps single words to fixed-dimension vectors.
// Vector reports false when the word is not in the model.
type Embedder interface {
	Dimension() int
	Vector(word string) ([]float64, bool)
}

// MapEmbedder is an in-memory word lookup backed by a map.
type MapEmbedder struct {
	dimension int
	vectors   map[string][]float64
}

// NewMapEmbedder builds a lookup from a word → vector map. All vectors must
// share one non-zero dimension.
func NewMapEmbedder(vectors map[string][]float64) (*MapEmbedder, error) {
	dim := 0
	for _, v := range vectors {
		if dim == 0 {
			dim = len(v)
		}
		if len(v) != dim {
			return nil, errors.New("vector dimension mismatch")
		}
	}
	if dim == 0 {
		return nil, errors.New("empty vocabulary")
	}
	m := make(map[string][]float64, len(vectors))
	for w, v := range vectors {
		m[w] = append([]float64(nil), v...)
	}
	return &MapEmbedder{dimension: dim, vectors: m}, nil
}

func (e *MapEmbedder) Dimension() int { return e.dimension }

// Vector returns a copy of the stored vector so callers may scale it in place.
func (e *MapEmbedder) Vector(word string) ([]float64, bool) {
	v, ok := e.vectors[word]
	if !ok {
		return nil, false
	}
	return append([]float64(nil), v...), true
}

// Len returns the vocabulary size.
func (e *MapEmbedder) Len() int { return len(e.vectors) }
