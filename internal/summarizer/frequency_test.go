package summarizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsir/internal/textnorm"
)

const (
	boosts    = "Rate cut boosts stocks across global markets today."
	weather   = "Weather was mild."
	hopes     = "Rate cut hopes lift stocks and bonds in early trading."
	analysts  = "Analysts expect the central bank to announce a rate cut soon."
	gardening = "Unrelated gardening tips for the coming spring season appear here."
)

func TestSummarize_Sentinels(t *testing.T) {
	s := NewFrequencySummarizer(Config{})

	tests := []struct {
		name   string
		texts  []string
		text   string
		status Status
	}{
		{"no texts", nil, NoDocumentsMessage, StatusNoDocuments},
		{"empty slice", []string{}, NoDocumentsMessage, StatusNoDocuments},
		{"blank texts", []string{"", "   "}, NoSentencesMessage, StatusNoSentences},
		{"stopwords only", []string{"The. Of. And."}, NoTokensMessage, StatusNoTokens},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Summarize(tt.texts, 3)
			assert.Equal(t, tt.text, got.Text)
			assert.Equal(t, tt.status, got.Status)
			assert.True(t, got.Empty())
			assert.Empty(t, got.Sentences)
		})
	}
}

func TestSummarize_FallbackWhenNothingIsLongEnough(t *testing.T) {
	s := NewFrequencySummarizer(Config{})

	got := s.Summarize([]string{"Short."}, 3)
	assert.Equal(t, "Short.", got.Text)
	assert.Equal(t, StatusFallback, got.Status)
	assert.False(t, got.Empty())

	got = s.Summarize([]string{"Tiny one. Tiny two. Tiny three. Tiny four."}, 2)
	assert.Equal(t, "Tiny one. Tiny two.", got.Text)
	assert.Equal(t, []string{"Tiny one.", "Tiny two."}, got.Sentences)
}

func TestSummarize_SelectsHighestScoring(t *testing.T) {
	s := NewFrequencySummarizer(Config{})
	texts := []string{boosts, weather, hopes, analysts, gardening}

	got := s.Summarize(texts, 1)
	assert.Equal(t, boosts, got.Text)
	assert.Equal(t, StatusOK, got.Status)

	got = s.Summarize(texts, 2)
	assert.Equal(t, boosts+" "+hopes, got.Text)

	// short sentences are never selectable, even when N covers everything
	got = s.Summarize(texts, 10)
	assert.Equal(t, strings.Join([]string{boosts, hopes, analysts, gardening}, " "), got.Text)
	assert.NotContains(t, got.Text, weather)
}

func TestSummarize_PreservesSourceOrder(t *testing.T) {
	s := NewFrequencySummarizer(Config{})

	// boosts outscores hopes, but hopes comes first in the input
	got := s.Summarize([]string{gardening, analysts, hopes, boosts}, 2)
	assert.Equal(t, []string{hopes, boosts}, got.Sentences)

	got = s.Summarize([]string{gardening, analysts, hopes, boosts}, 3)
	assert.Equal(t, []string{analysts, hopes, boosts}, got.Sentences)
}

func TestSummarize_Idempotent(t *testing.T) {
	s := NewFrequencySummarizer(Config{})
	texts := []string{boosts, weather, hopes, analysts, gardening}

	first := s.Summarize(texts, 3)
	require.Equal(t, StatusOK, first.Status)
	require.Len(t, first.Sentences, 3)

	second := s.Summarize([]string{first.Text}, 3)
	assert.Equal(t, first.Text, second.Text)

	fallback := s.Summarize([]string{"Short."}, 3)
	assert.Equal(t, fallback.Text, s.Summarize([]string{fallback.Text}, 3).Text)
}

func TestSummarize_TiesKeepOriginalOrder(t *testing.T) {
	s := NewFrequencySummarizer(Config{})
	a := "Alpha bravo charlie delta echo foxtrot golf."
	b := "Hotel india juliet kilo lima mike november."
	c := "Oscar papa quebec romeo sierra tango uniform."

	got := s.Summarize([]string{c, a, b}, 2)
	assert.Equal(t, []string{c, a}, got.Sentences)
}

func TestSummarize_Defaults(t *testing.T) {
	s := NewFrequencySummarizer(Config{MaxSentences: 1})
	got := s.Summarize([]string{boosts, hopes}, 0)
	assert.Len(t, got.Sentences, 1)

	custom := NewFrequencySummarizer(Config{MinSentenceLength: 5, Stopwords: textnorm.NewStopwords("stocks")})
	got = custom.Summarize([]string{"Stocks stocks stocks.", "Bonds rise sharply."}, 1)
	assert.Equal(t, "Bonds rise sharply.", got.Text)
	assert.Equal(t, StatusOK, got.Status)
}
