package emotion

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"meigen/internal/domain"
)

// Entry is one configured emotion: its label and the synonyms that describe it.
type Entry struct {
	Label    string
	Synonyms []string
}

// Table holds one reference vector per emotion in configuration order.
// It is immutable once built and safe for concurrent use.
type Table struct {
	dimension int
	labels    []string
	vectors   [][]float64
	norms     []float64
}

// Build computes the reference vector of every entry: the mean of the unit
// vectors of its synonyms and of the label itself. A word missing from the
// embedding is a *ConfigError.
func Build(entries []Entry, emb domain.WordEmbedding) (*Table, error) {
	if len(entries) == 0 {
		return nil, &ConfigError{Reason: "no emotions configured"}
	}
	dim := emb.Dimension()
	t := &Table{
		dimension: dim,
		labels:    make([]string, 0, len(entries)),
		vectors:   make([][]float64, 0, len(entries)),
		norms:     make([]float64, 0, len(entries)),
	}
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.Label]; dup {
			return nil, &ConfigError{Label: e.Label, Reason: "duplicate label"}
		}
		seen[e.Label] = struct{}{}

		words := append(append([]string(nil), e.Synonyms...), e.Label)
		mean := make([]float64, dim)
		for _, w := range words {
			v, ok := emb.Vector(w)
			if !ok {
				return nil, &ConfigError{Label: e.Label, Word: w, Reason: "not in embedding"}
			}
			if len(v) != dim {
				return nil, &ConfigError{Label: e.Label, Word: w, Reason: "dimension mismatch"}
			}
			u, ok := unit(v)
			if !ok {
				return nil, &ConfigError{Label: e.Label, Word: w, Reason: "zero vector"}
			}
			floats.Add(mean, u)
		}
		floats.Scale(1/float64(len(words)), mean)

		t.labels = append(t.labels, e.Label)
		t.vectors = append(t.vectors, mean)
		t.norms = append(t.norms, floats.Norm(mean, 2))
	}
	return t, nil
}

// Len returns the number of emotions.
func (t *Table) Len() int { return len(t.labels) }

// Dimension returns the vector dimension.
func (t *Table) Dimension() int { return t.dimension }

// Labels returns the emotion labels in configuration order.
func (t *Table) Labels() []string { return append([]string(nil), t.labels...) }

// Vectors returns copies of the reference vectors in configuration order.
func (t *Table) Vectors() []domain.EmotionVector {
	out := make([]domain.EmotionVector, len(t.labels))
	for i := range t.labels {
		out[i] = domain.EmotionVector{Label: t.labels[i], Vector: append([]float64(nil), t.vectors[i]...)}
	}
	return out
}

// Rank scores every emotion against vector and returns them best first.
// Scores are 0.5 + 0.5*cosine; equal scores keep configuration order.
func (t *Table) Rank(vector []float64) []domain.EmotionScore {
	n := floats.Norm(vector, 2)
	out := make([]domain.EmotionScore, len(t.labels))
	for i := range t.labels {
		out[i] = domain.EmotionScore{Label: t.labels[i], Score: score(cosine(vector, n, t.vectors[i], t.norms[i]))}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// cosine is zero when either operand has no direction.
func cosine(a []float64, na float64, b []float64, nb float64) float64 {
	if na == 0 || nb == 0 || len(a) != len(b) {
		return 0
	}
	return floats.Dot(a, b) / (na * nb)
}

func score(similarity float64) float64 {
	return math.Max(0, math.Min(1, 0.5+0.5*similarity))
}

// unit returns v scaled to unit length. It reports false for a zero vector.
func unit(v []float64) ([]float64, bool) {
	n := floats.Norm(v, 2)
	if n == 0 {
		return nil, false
	}
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x / n
	}
	return out, true
}
