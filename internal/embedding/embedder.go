package embedding

import "math"

// Embedder converts free text into a sparse vector over a fixed vocabulary.
// Implementations require a preparation phase over the corpus.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(text string) (SparseVector, error)
}

// SparseVector holds the non-zero entries of a vector. Indices are strictly
// increasing and parallel to Values.
type SparseVector struct {
	Indices []int
	Values  []float64
}

// Len returns the number of non-zero entries.
func (v SparseVector) Len() int { return len(v.Indices) }

// Norm returns the Euclidean norm of v.
func (v SparseVector) Norm() float64 {
	sum := 0.0
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Dot returns the inner product of a and b.
func Dot(a, b SparseVector) float64 {
	sum := 0.0
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] == b.Indices[j]:
			sum += a.Values[i] * b.Values[j]
			i++
			j++
		case a.Indices[i] < b.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}
