package memory

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"newsir/internal/embedding"
	"newsir/internal/vectorstore"
)

// DefaultTopK is used when Search is called with a non-positive topK.
const DefaultTopK = 5

// Storage is an in-memory document matrix using brute-force cosine similarity.
// Rows are assumed L2-normalized, so a dot product is the cosine.
type Storage struct {
	mu        sync.RWMutex
	dimension int
	rows      []embedding.SparseVector
}

func NewStorage() *Storage { return &Storage{} }

// Init resets the store for vectors of the given dimension. A zero dimension
// is accepted: every row is then empty and scores zero.
func (s *Storage) Init(dimension int) error {
	if dimension < 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	s.rows = nil
	return nil
}

// Upsert appends rows; row i of the call gets index Len()+i.
func (s *Storage) Upsert(rows []embedding.SparseVector) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range rows {
		if len(r.Indices) != len(r.Values) {
			return fmt.Errorf("row %d: indices and values length mismatch", i)
		}
		for _, idx := range r.Indices {
			if idx < 0 || idx >= s.dimension {
				return fmt.Errorf("row %d: column %d out of range [0,%d)", i, idx, s.dimension)
			}
		}
	}
	s.rows = append(s.rows, rows...)
	return nil
}

// Search scores every row against vector and returns the topK best, highest
// score first. Equal scores keep ascending row order. Scores are clamped to
// [0,1] to absorb rounding on normalized vectors.
func (s *Storage) Search(vector embedding.SparseVector, topK int) ([]vectorstore.Hit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if topK <= 0 {
		topK = DefaultTopK
	}
	hits := make([]vectorstore.Hit, len(s.rows))
	for i := range s.rows {
		hits[i] = vectorstore.Hit{Index: i, Score: clamp(embedding.Dot(s.rows[i], vector))}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Index < hits[j].Index
	})
	if topK > len(hits) {
		topK = len(hits)
	}
	return hits[:topK], nil
}

// Len returns the number of stored rows.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

func (s *Storage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = nil
	return nil
}

func clamp(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
