package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsir/internal/domain"
	"newsir/internal/service"
	"newsir/internal/summarizer"
)

type fakePort struct {
	queries []string
	topK    int
	res     service.QueryResult
	err     error
}

func (f *fakePort) Query(query string, topK int) (service.QueryResult, error) {
	f.queries = append(f.queries, query)
	f.topK = topK
	if f.err != nil {
		return service.QueryResult{}, f.err
	}
	res := f.res
	res.Query = query
	return res, nil
}

func enter(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(text)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model), cmd
}

func sized(m Model) Model {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model)
}

func TestModel_QueryRendersResultsAndSummary(t *testing.T) {
	port := &fakePort{res: service.QueryResult{
		Results: []domain.RankedResult{
			{Rank: 1, DocumentIndex: 2, Score: 0.75, Text: "Rate cut lifts stocks"},
			{Rank: 2, DocumentIndex: 0, Score: 0.5, Text: "Bank weighs rate cut"},
		},
		Summary: summarizer.Summary{Text: "Rate cut lifts stocks.", Status: summarizer.StatusOK},
	}}
	m := sized(New(port, 4, 10))
	assert.Contains(t, m.View(), "Indexed 10 documents")

	m, cmd := enter(t, m, "  rate cut  ")
	assert.Nil(t, cmd)
	assert.Equal(t, []string{"rate cut"}, port.queries)
	assert.Equal(t, 4, port.topK)
	assert.Empty(t, m.input.Value())

	content := m.renderResults()
	assert.Contains(t, content, "[1] (score=0.7500)")
	assert.Contains(t, content, "[2] (score=0.5000)")
	assert.Contains(t, content, "Summary of top results:")
	assert.Contains(t, content, "Rate cut lifts stocks.")
	assert.Contains(t, m.status, `Top 2 results for "rate cut"`)
}

func TestModel_CursorWraps(t *testing.T) {
	port := &fakePort{res: service.QueryResult{Results: []domain.RankedResult{
		{Rank: 1, Text: "a"}, {Rank: 2, Text: "b"}, {Rank: 3, Text: "c"},
	}}}
	m := sized(New(port, 3, 3))
	m, _ = enter(t, m, "x")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(Model)
	assert.Equal(t, 2, m.cursor)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Model)
	assert.Equal(t, 0, m.cursor)
}

func TestModel_IgnoresEmptyAndQuitsOnExit(t *testing.T) {
	port := &fakePort{}
	m := sized(New(port, 5, 1))

	m, cmd := enter(t, m, "   ")
	assert.Nil(t, cmd)
	assert.Empty(t, port.queries)

	for _, word := range []string{"exit", "QUIT"} {
		_, cmd = enter(t, m, word)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
	assert.Empty(t, port.queries)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_ShowsErrors(t *testing.T) {
	port := &fakePort{err: errors.New("engine not indexed")}
	m := sized(New(port, 5, 0))
	m, _ = enter(t, m, "rates")
	assert.Equal(t, "Error: engine not indexed", m.status)
	assert.Equal(t, "No results yet.", m.renderResults())
}

func TestModel_NotReadyBeforeResize(t *testing.T) {
	m := New(&fakePort{}, 5, 0)
	assert.Equal(t, "Loading...", m.View())
}

func TestHighlightTerms(t *testing.T) {
	assert.Equal(t, "plain text", highlightTerms("plain text", "the"))
	assert.Contains(t, highlightTerms("Rate cut, again", "cut"), "cut,")
}
