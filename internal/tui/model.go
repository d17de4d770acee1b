package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"newsir/internal/service"
	"newsir/internal/textnorm"
)

// NewsPort is the TUI-facing subset of the news service.
type NewsPort interface {
	Query(query string, topK int) (service.QueryResult, error)
}

// Model is the Bubble Tea model for the interactive search loop.
type Model struct {
	service  NewsPort
	topK     int
	input    textinput.Model
	viewport viewport.Model
	result   service.QueryResult
	status   string
	cursor   int
	ready    bool
}

// New creates a new TUI model instance over an indexed collection.
func New(service NewsPort, topK, docCount int) Model {
	ti := textinput.New()
	ti.Prompt = "Query: "
	ti.Placeholder = "type a query, 'exit' or 'quit' to leave"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		service:  service,
		topK:     topK,
		input:    ti,
		viewport: vp,
		status:   fmt.Sprintf("Indexed %d documents. Type to search.", docCount),
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		// account for frames around result and query boxes
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		totalHeaderLines := 1                                    // header
		totalFooterLines := 1                                    // status
		reserved := totalHeaderLines + totalFooterLines + qh + 1 // 1 spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderResults())
		return m, nil
	case tea.KeyMsg:
		// Global quits
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			switch strings.ToLower(q) {
			case "":
				return m, nil
			case "exit", "quit":
				return m, tea.Quit
			}
			res, err := m.service.Query(q, m.topK)
			if err != nil {
				m.status = "Error: " + err.Error()
				m.result = service.QueryResult{}
			} else {
				m.status = fmt.Sprintf("Top %d results for %q", len(res.Results), q)
				if len(res.Results) == 0 {
					m.status = "No results found."
				}
				m.result = res
				m.cursor = 0
			}
			m.input.SetValue("")
			m.viewport.SetContent(m.renderResults())
			m.viewport.GotoTop()
			return m, nil
		case "down":
			if n := len(m.result.Results); n > 0 {
				m.cursor = (m.cursor + 1) % n
				m.viewport.SetContent(m.renderResults())
				return m, nil
			}
		case "up":
			if n := len(m.result.Results); n > 0 {
				m.cursor = (m.cursor - 1 + n) % n
				m.viewport.SetContent(m.renderResults())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout and current results.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("=== News Headline Search & Summarization ===")
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderResults() string {
	if len(m.result.Results) == 0 {
		return "No results yet."
	}
	var b strings.Builder
	for i, r := range m.result.Results {
		line := fmt.Sprintf("[%d] (score=%.4f) %s", r.Rank, r.Score, highlightTerms(r.Text, m.result.Query))
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(summaryTitleStyle.Render("Summary of top results:"))
	b.WriteString("\n")
	summary := m.result.Summary.Text
	if m.result.Summary.Empty() {
		summary = dimStyle.Render(summary)
	}
	b.WriteString(summary)
	return b.String()
}

var (
	resultBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	selectedStyle     = lipgloss.NewStyle().Reverse(true)
	summaryTitleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// highlightTerms emphasizes the words of text that also occur in query.
func highlightTerms(text, query string) string {
	qTokens := toTokenSet(query)
	if len(qTokens) == 0 {
		return text
	}
	words := strings.Fields(text)
	for i, w := range words {
		for _, tok := range textnorm.Words(w) {
			if _, ok := qTokens[tok]; ok {
				words[i] = highlightStyle.Render(w)
				break
			}
		}
	}
	return strings.Join(words, " ")
}

func toTokenSet(s string) map[string]struct{} {
	tokens := textnorm.Tokenize(s, textnorm.BasicStopwords())
	m := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		m[t] = struct{}{}
	}
	return m
}
