package tfidf

import (
	"errors"
	"math"
	"sort"
	"unicode/utf8"

	"newsir/internal/embedding"
	"newsir/internal/textnorm"
)

// DefaultMaxFeatures caps the vocabulary when Options.MaxFeatures is zero.
const DefaultMaxFeatures = 10000

// Options configures the vectorizer. The zero value selects the English
// stopword list, unigrams plus bigrams and DefaultMaxFeatures.
type Options struct {
	Stopwords   textnorm.Stopwords
	MaxFeatures int
	MinN, MaxN  int
}

// Embedder implements a TF-IDF vectorizer over unigram and bigram terms.
// It builds a vocabulary from the corpus and computes IDF values; both are
// frozen after Prepare.
type Embedder struct {
	vocabulary map[string]int
	idf        []float64
	dimension  int
	prepared   bool

	stopwords   textnorm.Stopwords
	maxFeatures int
	minN, maxN  int
}

// NewEmbedder creates an unprepared TF-IDF embedder.
func NewEmbedder(opts Options) *Embedder {
	if opts.Stopwords == nil {
		opts.Stopwords = textnorm.EnglishStopwords()
	}
	if opts.MaxFeatures <= 0 {
		opts.MaxFeatures = DefaultMaxFeatures
	}
	if opts.MinN <= 0 {
		opts.MinN = 1
	}
	if opts.MaxN == 0 {
		opts.MaxN = 2
	}
	if opts.MaxN < opts.MinN {
		opts.MaxN = opts.MinN
	}
	return &Embedder{
		vocabulary:  make(map[string]int),
		stopwords:   opts.Stopwords,
		maxFeatures: opts.MaxFeatures,
		minN:        opts.MinN,
		maxN:        opts.MaxN,
	}
}

// Name returns the identifier of this embedder implementation.
func (e *Embedder) Name() string { return "tfidf" }

type termStat struct {
	term      string
	count     int
	df        int
	firstSeen int
}

// Prepare builds the vocabulary and IDF values from the provided corpus.
// The embedder is only modified once the whole vocabulary has been built.
func (e *Embedder) Prepare(corpus []string) error {
	if len(corpus) == 0 {
		return errors.New("empty corpus for TF-IDF prepare")
	}
	stats := make(map[string]*termStat)
	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, term := range e.terms(text) {
			st, ok := stats[term]
			if !ok {
				st = &termStat{term: term, firstSeen: len(stats)}
				stats[term] = st
			}
			st.count++
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			st.df++
		}
	}

	// Keep the most frequent terms; earlier terms win ties.
	ranked := make([]*termStat, 0, len(stats))
	for _, st := range stats {
		ranked = append(ranked, st)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].firstSeen < ranked[j].firstSeen
	})
	if len(ranked) > e.maxFeatures {
		ranked = ranked[:e.maxFeatures]
	}
	// Create stable ordering for vocabulary
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].term < ranked[j].term })

	vocabulary := make(map[string]int, len(ranked))
	idf := make([]float64, len(ranked))
	N := float64(len(corpus))
	for i, st := range ranked {
		vocabulary[st.term] = i
		// Smoothed IDF
		idf[i] = math.Log((1+N)/(1+float64(st.df))) + 1.0
	}

	e.vocabulary = vocabulary
	e.idf = idf
	e.dimension = len(ranked)
	e.prepared = true
	return nil
}

// Dimension returns the vocabulary size.
func (e *Embedder) Dimension() int { return e.dimension }

// Vocabulary returns a copy of the term to column mapping.
func (e *Embedder) Vocabulary() map[string]int {
	out := make(map[string]int, len(e.vocabulary))
	for k, v := range e.vocabulary {
		out[k] = v
	}
	return out
}

// IDF returns the inverse document frequency of term and whether it is known.
func (e *Embedder) IDF(term string) (float64, bool) {
	idx, ok := e.vocabulary[term]
	if !ok {
		return 0, false
	}
	return e.idf[idx], true
}

// Embed computes the L2-normalized TF-IDF vector for text. Terms outside the
// vocabulary are ignored; text without known terms yields an empty vector.
func (e *Embedder) Embed(text string) (embedding.SparseVector, error) {
	if !e.prepared {
		return embedding.SparseVector{}, errors.New("tfidf embedder not prepared")
	}
	tf := make(map[int]int)
	for _, term := range e.terms(text) {
		if idx, ok := e.vocabulary[term]; ok {
			tf[idx]++
		}
	}
	if len(tf) == 0 {
		return embedding.SparseVector{}, nil
	}
	vec := embedding.SparseVector{
		Indices: make([]int, 0, len(tf)),
		Values:  make([]float64, 0, len(tf)),
	}
	for idx := range tf {
		vec.Indices = append(vec.Indices, idx)
	}
	sort.Ints(vec.Indices)
	for _, idx := range vec.Indices {
		vec.Values = append(vec.Values, float64(tf[idx])*e.idf[idx])
	}
	// L2 normalize
	if norm := vec.Norm(); norm > 0 {
		for i := range vec.Values {
			vec.Values[i] /= norm
		}
	}
	return vec, nil
}

// terms returns the n-gram terms of text: words of two or more characters,
// stopwords removed, then joined into n-grams.
func (e *Embedder) terms(text string) []string {
	raw := textnorm.Words(text)
	tokens := raw[:0]
	for _, t := range raw {
		if utf8.RuneCountInString(t) < 2 || e.stopwords.Contains(t) {
			continue
		}
		tokens = append(tokens, t)
	}
	return textnorm.Ngrams(tokens, e.minN, e.maxN)
}
