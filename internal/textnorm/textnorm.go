// Package textnorm holds the stateless text helpers shared by the search
// engine and the summarizer: sentence splitting, tokenization and stopwords.
package textnorm

import (
	"regexp"
	"strings"
)

var (
	wordPattern     = regexp.MustCompile(`[\p{L}\p{N}_]+`)
	boundaryPattern = regexp.MustCompile(`[.!?]\s+`)
)

// SplitSentences splits text after every '.', '?' or '!' that is followed by
// whitespace. Sentences are trimmed and empty fragments dropped.
func SplitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	var out []string
	start := 0
	for _, loc := range boundaryPattern.FindAllStringIndex(text, -1) {
		// keep the punctuation mark, drop the whitespace run
		if s := strings.TrimSpace(text[start : loc[0]+1]); s != "" {
			out = append(out, s)
		}
		start = loc[1]
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

// Words returns the lowercase maximal runs of letters, digits and underscores.
func Words(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// Tokenize lowercases text, extracts words and drops those found in stop.
// A nil stop set keeps every word.
func Tokenize(text string, stop Stopwords) []string {
	raw := Words(text)
	if len(raw) == 0 {
		return nil
	}
	out := raw[:0]
	for _, t := range raw {
		if stop.Contains(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Ngrams returns the contiguous n-grams of tokens for every n in [minN, maxN],
// unigrams first, each n-gram joined by a single space.
func Ngrams(tokens []string, minN, maxN int) []string {
	if minN < 1 {
		minN = 1
	}
	var out []string
	for n := minN; n <= maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			if n == 1 {
				out = append(out, tokens[i])
				continue
			}
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}
