// Package tui is an interactive terminal client for exploring a
// library index with the same query syntax the MCP tools accept.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/seforimlab/libsearch/search"
)

// SearchPort is the TUI-facing subset of the search agent.
type SearchPort interface {
	Search(ctx context.Context, rawQuery string, limit int) []search.SearchResult
}

// Model is the Bubble Tea model for the TUI application.
type Model struct {
	agent     SearchPort
	limit     int
	input     textinput.Model
	viewport  viewport.Model
	results   []search.SearchResult
	summary   string
	status    string
	cursor    int
	ready     bool
	lastQuery string
}

// New creates a new TUI model over agent. summary is shown under the
// header, typically the index path and document count.
func New(agent SearchPort, summary string, limit int) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a query and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		agent:    agent,
		limit:    limit,
		input:    ti,
		viewport: vp,
		summary:  summary,
		status:   "Index loaded. Type to search.",
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
		totalHeaderLines := 2 // header + summary
		totalFooterLines := 1 // status
		reserved := totalHeaderLines + totalFooterLines + qh + 1
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderCurrentResult())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				m.results = m.agent.Search(context.Background(), q, m.limit)
				m.cursor = 0
				m.lastQuery = q
				if len(m.results) == 0 {
					m.status = fmt.Sprintf("No results for %q", q)
				} else {
					m.status = fmt.Sprintf("%d results for %q", len(m.results), q)
				}
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		case "down":
			if len(m.results) > 0 {
				m.cursor = (m.cursor + 1) % len(m.results)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		case "up":
			if len(m.results) > 0 {
				m.cursor = (m.cursor - 1 + len(m.results)) % len(m.results)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout and current result.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Library Search")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderCurrentResult() string {
	if len(m.results) == 0 {
		return "No results yet."
	}
	r := m.results[m.cursor]

	head := fmt.Sprintf("Result %d/%d  score=%.3f", m.cursor+1, len(m.results), r.Score)

	var b strings.Builder
	b.WriteString(head)
	b.WriteString("\n\n")
	if r.Title != "" {
		b.WriteString(titleStyle.Render(r.Title))
		b.WriteString("\n")
	}
	if r.Reference != "" {
		b.WriteString(r.Reference)
		b.WriteString("\n")
	}
	if r.Topics != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(r.Topics))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	for i, hl := range r.Highlights {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(highlightStyle.Render(hl))
	}
	return b.String()
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	titleStyle     = lipgloss.NewStyle().Bold(true)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
