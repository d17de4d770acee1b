// Package engine implements the TF-IDF news search engine: it loads a document
// collection once, indexes it into a frozen vocabulary and document matrix,
// and answers ranked top-K queries against it.
package engine

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"newsir/internal/domain"
	"newsir/internal/embedding"
	"newsir/internal/embedding/tfidf"
	"newsir/internal/textnorm"
	"newsir/internal/vectorstore"
	"newsir/internal/vectorstore/memory"
)

const (
	DefaultTextField     = "headline"
	DefaultMaxVocabulary = 10000
	DefaultTopK          = 5
)

// Config configures a search engine instance.
type Config struct {
	TextField     string
	MaxVocabulary int
	TopK          int
	// Stopwords replaces the built-in English list when non-nil.
	Stopwords textnorm.Stopwords
}

func (c Config) withDefaults() Config {
	if c.TextField == "" {
		c.TextField = DefaultTextField
	}
	if c.MaxVocabulary <= 0 {
		c.MaxVocabulary = DefaultMaxVocabulary
	}
	if c.TopK <= 0 {
		c.TopK = DefaultTopK
	}
	if c.Stopwords == nil {
		c.Stopwords = textnorm.EnglishStopwords()
	}
	return c
}

// Engine is a TF-IDF search engine over an immutable document collection.
// Search is safe for concurrent use once Fit has returned.
type Engine struct {
	cfg    Config
	logger *zap.Logger

	mu       sync.RWMutex
	docs     []domain.Document
	embedder embedding.Embedder
	store    vectorstore.Storage
}

var _ domain.Searcher = (*Engine)(nil)

// New creates an empty engine. A nil logger disables logging.
func New(cfg Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{cfg: cfg.withDefaults(), logger: logger.Named("engine")}
}

// Config returns the effective configuration.
func (e *Engine) Config() Config { return e.cfg }

// Load stores the non-blank texts as documents, indexed in their filtered
// order.
func (e *Engine) Load(texts []string) (int, error) {
	docs := make([]domain.Document, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t) == "" {
			continue
		}
		docs = append(docs, domain.Document{Index: len(docs), Text: t})
	}
	if len(docs) == 0 {
		return 0, fmt.Errorf("%w: no usable documents among %d rows", domain.ErrConfiguration, len(texts))
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.store != nil {
		return 0, fmt.Errorf("%w: engine already indexed", domain.ErrState)
	}
	e.docs = docs
	e.logger.Info("documents loaded",
		zap.Int("rows", len(texts)),
		zap.Int("documents", len(docs)))
	return len(docs), nil
}

// LoadRecords extracts the configured text field from each record and loads
// the result. Records without the field, or with blank text, are dropped.
func (e *Engine) LoadRecords(records []domain.Record) (int, error) {
	field := e.cfg.TextField
	texts := make([]string, 0, len(records))
	found := false
	for _, r := range records {
		text, ok := r[field]
		if !ok {
			continue
		}
		found = true
		texts = append(texts, text)
	}
	if !found {
		return 0, fmt.Errorf("%w: input must contain a %q field, available fields: %v",
			domain.ErrConfiguration, field, availableFields(records))
	}
	return e.Load(texts)
}

// Fit builds the vocabulary and the normalized document matrix. On failure
// the engine keeps its previous state.
func (e *Engine) Fit() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.docs) == 0 {
		return fmt.Errorf("%w: no documents loaded, call Load first", domain.ErrState)
	}
	if e.store != nil {
		return fmt.Errorf("%w: engine already indexed", domain.ErrState)
	}

	corpus := make([]string, len(e.docs))
	for i, d := range e.docs {
		corpus[i] = d.Text
	}
	emb := tfidf.NewEmbedder(tfidf.Options{
		Stopwords:   e.cfg.Stopwords,
		MaxFeatures: e.cfg.MaxVocabulary,
	})
	if err := emb.Prepare(corpus); err != nil {
		return fmt.Errorf("prepare vectorizer: %w", err)
	}

	rows := make([]embedding.SparseVector, len(corpus))
	for i, text := range corpus {
		vec, err := emb.Embed(text)
		if err != nil {
			return fmt.Errorf("embed document %d: %w", i, err)
		}
		rows[i] = vec
	}
	store := memory.NewStorage()
	if err := store.Init(emb.Dimension()); err != nil {
		return err
	}
	if err := store.Upsert(rows); err != nil {
		return err
	}

	e.embedder = emb
	e.store = store
	if emb.Dimension() == 0 {
		e.logger.Warn("empty vocabulary, every query will score zero",
			zap.Int("documents", len(e.docs)))
	}
	e.logger.Info("index built",
		zap.Int("documents", len(e.docs)),
		zap.Int("vocabulary", emb.Dimension()))
	return nil
}

// Search ranks all documents against query and returns the topK best,
// ties broken by ascending document index. A non-positive topK selects the
// configured default.
func (e *Engine) Search(query string, topK int) ([]domain.RankedResult, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.store == nil {
		return nil, fmt.Errorf("%w: engine not indexed, call Fit first", domain.ErrState)
	}
	if topK <= 0 {
		topK = e.cfg.TopK
	}

	vec, err := e.embedder.Embed(query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	hits, err := e.store.Search(vec, topK)
	if err != nil {
		return nil, fmt.Errorf("search matrix: %w", err)
	}

	results := make([]domain.RankedResult, len(hits))
	for i, h := range hits {
		results[i] = domain.RankedResult{
			Rank:          i + 1,
			DocumentIndex: h.Index,
			Score:         h.Score,
			Text:          e.docs[h.Index].Text,
		}
	}
	e.logger.Debug("search",
		zap.String("query", query),
		zap.Int("top_k", topK),
		zap.Int("known_terms", vec.Len()),
		zap.Int("results", len(results)))
	return results, nil
}

// Documents returns a copy of the loaded documents.
func (e *Engine) Documents() []domain.Document {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]domain.Document(nil), e.docs...)
}

// Indexed reports whether Fit has completed.
func (e *Engine) Indexed() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store != nil
}

// VocabularySize returns the number of indexed terms, zero before Fit.
func (e *Engine) VocabularySize() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.embedder == nil {
		return 0
	}
	return e.embedder.Dimension()
}

func availableFields(records []domain.Record) []string {
	set := map[string]struct{}{}
	for _, r := range records {
		for k := range r {
			set[k] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
