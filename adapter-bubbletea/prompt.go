package adapter_bubbletea

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ionut-t/hecto/core"
	"go.uber.org/zap"
)

func (m *Model) openPrompt(kind promptKind, label string) tea.Cmd {
	m.promptKind = kind
	m.prompt.Prompt = label
	m.prompt.Width = max(0, m.width-lipgloss.Width(label)-1)
	m.prompt.SetValue("")
	m.message = ""
	m.err = nil
	return m.prompt.Focus()
}

func (m *Model) closePrompt() {
	m.promptKind = promptNone
	m.prompt.Blur()
	m.prompt.SetValue("")
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch m.promptKind {
	case promptSearch:
		return m.handleSearchKey(msg)
	case promptSaveAs:
		return m.handleSaveAsKey(msg)
	}
	return nil
}

func (m *Model) handleSaveAsKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keyMap.Cancel):
		m.closePrompt()
		return m.DispatchMessage("save aborted", messageDuration)

	case key.Matches(msg, m.keyMap.Accept):
		name := strings.TrimSpace(m.prompt.Value())
		m.closePrompt()
		if name == "" {
			return m.DispatchMessage("save aborted", messageDuration)
		}
		m.doc.SetFilename(name)
		return m.saveDocument()
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return cmd
}

// startSearch opens the search prompt. The cursor follows the current match
// while the query is typed and returns to where it was on cancel.
func (m *Model) startSearch() tea.Cmd {
	m.search = core.NewSearch(m.cursor, m.searchOptions)
	m.savedOffset = m.offset
	return m.openPrompt(promptSearch, "Search (Esc to cancel, Arrows to navigate): ")
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	km := m.keyMap

	switch {
	case key.Matches(msg, km.Cancel):
		m.cursor = m.search.Origin()
		m.offset = m.savedOffset
		m.endSearch()
		return nil

	case key.Matches(msg, km.Accept):
		m.endSearch()
		return nil

	case key.Matches(msg, km.NextMatch):
		m.search.Next()
		m.stepSearch()
		return nil

	case key.Matches(msg, km.PrevMatch):
		m.search.Prev()
		m.stepSearch()
		return nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)

	if query := m.prompt.Value(); query != m.search.Query() {
		m.search.SetQuery(query)
		m.doc.HighlightQuery(query)
		m.stepSearch()
	}

	return cmd
}

func (m *Model) stepSearch() {
	pos, ok := m.search.Step(m.doc)
	if !ok {
		if query := m.search.Query(); query != "" {
			m.logger.Debug("search miss",
				zap.String("query", query),
				zap.Int("direction", int(m.search.Direction())),
			)
		}
		return
	}
	m.cursor = pos
}

func (m *Model) endSearch() {
	m.doc.HighlightQuery("")
	m.search = nil
	m.closePrompt()
}
