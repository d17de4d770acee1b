package domain

import "errors"

var (
	// ErrConfiguration reports input that does not match the configured schema,
	// e.g. a designated text field missing from every record.
	ErrConfiguration = errors.New("configuration error")
	// ErrState reports an operation invoked before its prerequisite step.
	ErrState = errors.New("state error")
)

// Document is a single loaded text with its stable position in the collection.
type Document struct {
	Index int
	Text  string
}

// Record is one input row keyed by column name.
type Record map[string]string

// RankedResult is a single hit of a ranked search.
type RankedResult struct {
	Rank          int
	DocumentIndex int
	Score         float64
	Text          string
}

// Searcher indexes a document collection once and answers top-K queries.
type Searcher interface {
	LoadRecords(records []Record) (int, error)
	Fit() error
	Search(query string, topK int) ([]RankedResult, error)
}

// Texts returns the document text of each result, in rank order.
func Texts(results []RankedResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Text
	}
	return out
}
