package summarizer

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"newsir/internal/textnorm"
)

const (
	DefaultMaxSentences      = 3
	DefaultMinSentenceLength = 30
)

// Status tells a real summary apart from the degenerate outcomes.
type Status int

const (
	// StatusOK means sentences were scored and the best ones selected.
	StatusOK Status = iota
	// StatusFallback means no sentence qualified for scoring and the leading
	// sentences were returned unscored.
	StatusFallback
	StatusNoDocuments
	StatusNoSentences
	// StatusNoTokens means every word in the input was a stopword.
	StatusNoTokens
)

const (
	NoDocumentsMessage = "(No documents to summarize.)"
	NoSentencesMessage = "(No sentences found to summarize.)"
	NoTokensMessage    = "(Insufficient content for summarization.)"
)

// Summary is the outcome of one Summarize call.
type Summary struct {
	Text      string
	Sentences []string
	Status    Status
}

// Empty reports whether the summary is one of the sentinel outcomes.
func (s Summary) Empty() bool {
	return s.Status == StatusNoDocuments || s.Status == StatusNoSentences || s.Status == StatusNoTokens
}

func (s Summary) String() string { return s.Text }

// Config tunes the frequency summarizer.
type Config struct {
	MaxSentences      int
	MinSentenceLength int
	Stopwords         textnorm.Stopwords
}

// FrequencySummarizer ranks sentences by corpus-wide word frequency
// (stopwords filtered) normalized by the log of sentence length.
type FrequencySummarizer struct {
	maxSentences      int
	minSentenceLength int
	stopwords         textnorm.Stopwords
}

// NewFrequencySummarizer creates a frequency-based sentence ranker summarizer.
func NewFrequencySummarizer(cfg Config) *FrequencySummarizer {
	if cfg.MaxSentences <= 0 {
		cfg.MaxSentences = DefaultMaxSentences
	}
	if cfg.MinSentenceLength <= 0 {
		cfg.MinSentenceLength = DefaultMinSentenceLength
	}
	if cfg.Stopwords == nil {
		cfg.Stopwords = textnorm.BasicStopwords()
	}
	return &FrequencySummarizer{
		maxSentences:      cfg.MaxSentences,
		minSentenceLength: cfg.MinSentenceLength,
		stopwords:         cfg.Stopwords,
	}
}

// Summarize joins texts, splits them into sentences and returns at most
// maxSentences of the best scoring ones in their original order. A
// non-positive maxSentences selects the configured default.
func (s *FrequencySummarizer) Summarize(texts []string, maxSentences int) Summary {
	if len(texts) == 0 {
		return Summary{Text: NoDocumentsMessage, Status: StatusNoDocuments}
	}
	if maxSentences <= 0 {
		maxSentences = s.maxSentences
	}

	sentences := textnorm.SplitSentences(strings.Join(texts, " "))
	if len(sentences) == 0 {
		return Summary{Text: NoSentencesMessage, Status: StatusNoSentences}
	}

	// Compute word frequencies over all sentences
	tokens := make([][]string, len(sentences))
	freq := map[string]int{}
	for i, sent := range sentences {
		tokens[i] = textnorm.Tokenize(sent, s.stopwords)
		for _, tok := range tokens[i] {
			freq[tok]++
		}
	}
	if len(freq) == 0 {
		return Summary{Text: NoTokensMessage, Status: StatusNoTokens}
	}

	// Score sentences
	type pair struct {
		idx   int
		score float64
	}
	var scores []pair
	for i, sent := range sentences {
		if utf8.RuneCountInString(sent) < s.minSentenceLength || len(tokens[i]) == 0 {
			continue
		}
		sum := 0
		for _, tok := range tokens[i] {
			sum += freq[tok]
		}
		// Normalize by log sentence length to avoid bias for long sentences
		scores = append(scores, pair{i, float64(sum) / math.Log(float64(len(tokens[i])+1))})
	}

	if len(scores) == 0 {
		n := min(maxSentences, len(sentences))
		selected := sentences[:n:n]
		return Summary{Text: strings.Join(selected, " "), Sentences: selected, Status: StatusFallback}
	}

	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })
	if maxSentences > len(scores) {
		maxSentences = len(scores)
	}
	// Keep original order among selected
	selected := make([]int, maxSentences)
	for i := 0; i < maxSentences; i++ {
		selected[i] = scores[i].idx
	}
	sort.Ints(selected)
	out := make([]string, 0, len(selected))
	for _, idx := range selected {
		out = append(out, sentences[idx])
	}
	return Summary{Text: strings.Join(out, " "), Sentences: out, Status: StatusOK}
}
