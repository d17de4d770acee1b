package vectorstore

import "newsir/internal/embedding"

// Hit is a scored row of the document matrix.
type Hit struct {
	Index int
	Score float64
}

// Storage holds the document matrix and supports similarity search.
type Storage interface {
	Init(dimension int) error
	Upsert(rows []embedding.SparseVector) error
	Search(vector embedding.SparseVector, topK int) ([]Hit, error)
	Len() int
	Clear() error
}
