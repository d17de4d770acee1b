package service

import (
	"fmt"

	"go.uber.org/zap"

	"newsir/internal/domain"
	"newsir/internal/loader"
	"newsir/internal/summarizer"
)

// Summarizer produces an extractive summary over an ordered list of texts.
type Summarizer interface {
	Summarize(texts []string, maxSentences int) summarizer.Summary
}

// QueryResult bundles the ranked hits of a query with the summary of their texts.
type QueryResult struct {
	Query   string
	Results []domain.RankedResult
	Summary summarizer.Summary
}

// NewsService runs the search-then-summarize pipeline.
type NewsService struct {
	searcher            domain.Searcher
	summarizer          Summarizer
	summaryMaxSentences int
	logger              *zap.Logger
}

func NewNewsService(searcher domain.Searcher, summarizer Summarizer, summaryMaxSentences int, logger *zap.Logger) *NewsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NewsService{
		searcher:            searcher,
		summarizer:          summarizer,
		summaryMaxSentences: summaryMaxSentences,
		logger:              logger.Named("service"),
	}
}

// Ingest loads records into the searcher and indexes them. It returns the
// number of documents indexed.
func (s *NewsService) Ingest(records []domain.Record) (int, error) {
	n, err := s.searcher.LoadRecords(records)
	if err != nil {
		return 0, err
	}
	if err := s.searcher.Fit(); err != nil {
		return 0, err
	}
	return n, nil
}

// IngestFile reads a CSV file and ingests its rows.
func (s *NewsService) IngestFile(path string) (int, error) {
	records, err := loader.LoadCSV(path)
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", path, err)
	}
	n, err := s.Ingest(records)
	if err != nil {
		return 0, fmt.Errorf("ingest %s: %w", path, err)
	}
	s.logger.Info("ingested", zap.String("path", path), zap.Int("rows", len(records)), zap.Int("documents", n))
	return n, nil
}

// Query ranks documents against query and summarizes the texts of the hits.
func (s *NewsService) Query(query string, topK int) (QueryResult, error) {
	results, err := s.searcher.Search(query, topK)
	if err != nil {
		return QueryResult{}, err
	}
	summary := s.summarizer.Summarize(domain.Texts(results), s.summaryMaxSentences)
	s.logger.Debug("query answered",
		zap.String("query", query),
		zap.Int("results", len(results)),
		zap.Int("summary_sentences", len(summary.Sentences)))
	return QueryResult{Query: query, Results: results, Summary: summary}, nil
}
