package adapter_bubbletea

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/ionut-t/hecto/adapter-bubbletea/highlighter"
	"github.com/ionut-t/hecto/core"
	"github.com/ionut-t/hecto/internal/grapheme"
)

// renderRows draws the visible slice of the document. Screen lines past the
// end of the document show a tilde, and an empty document shows the welcome
// message a third of the way down.
func (m *Model) renderRows() string {
	height := m.textHeight()
	showCursor := m.promptKind != promptSaveAs
	lines := make([]string, 0, height)

	for i := 0; i < height; i++ {
		y := m.offset.Y + i
		row, ok := m.doc.Row(y)
		switch {
		case ok:
			lines = append(lines, m.renderRow(row, showCursor && y == m.cursor.Y))
		case showCursor && y == m.cursor.Y:
			lines = append(lines, m.theme.CursorStyle.Render(" "))
		case m.doc.IsEmpty() && i == height/3:
			lines = append(lines, m.welcomeMessage())
		default:
			lines = append(lines, m.theme.TildeStyle.Render("~"))
		}
	}

	return strings.Join(lines, "\n")
}

// renderRow renders the horizontal window [offset.X, offset.X+width) of row.
// Each rendered span ends with a reset so the cursor cell can sit between two.
func (m *Model) renderRow(row core.RowView, withCursor bool) string {
	start, end := m.offset.X, m.offset.X+m.width
	if !withCursor || m.width == 0 {
		return row.RenderWith(start, end, m.palette)
	}

	cx := m.cursor.X
	var sb strings.Builder
	sb.WriteString(row.RenderWith(start, cx, m.palette))
	sb.WriteString(m.theme.CursorStyle.Render(cursorCell(row, cx)))
	sb.WriteString(row.RenderWith(cx+1, end, m.palette))
	return sb.String()
}

// cursorCell is the grapheme under the cursor as it is drawn on screen.
func cursorCell(row core.RowView, x int) string {
	cell := grapheme.Slice(row.String(), x, x+1)
	if cell == "" || cell == "\t" {
		return " "
	}
	return cell
}

func (m *Model) welcomeMessage() string {
	msg := fmt.Sprintf("Hecto editor -- version %s", Version)
	padding := max(0, m.width-len(msg)) / 2
	line := "~" + strings.Repeat(" ", padding) + msg
	if len(line) > m.width {
		line = line[:m.width]
	}
	return line
}

// statusLine shows the file name, row count and dirty flag on the left and
// the language and cursor row on the right.
func (m *Model) statusLine() string {
	if m.StatusLineFunc != nil {
		return m.StatusLineFunc()
	}

	name := m.doc.Filename()
	if name == "" {
		name = "[No Name]"
	}
	if r := []rune(name); len(r) > 20 {
		name = string(r[:20])
	}

	modified := ""
	if m.doc.IsDirty() {
		modified = " (modified)"
	}

	left := fmt.Sprintf(" %s - %d lines%s", name, m.doc.Len(), modified)
	right := fmt.Sprintf("%s | %d/%d ", m.languageName(), m.cursor.Y+1, m.doc.Len())

	gap := max(1, m.width-ansi.StringWidth(left)-ansi.StringWidth(right))
	line := left + strings.Repeat(" ", gap) + right
	if m.width > 0 {
		line = ansi.Truncate(line, m.width, "")
	}
	return m.theme.StatusLineStyle.Render(line)
}

// languageName prefers the highlighting file type and falls back to the name
// chroma knows the file by.
func (m *Model) languageName() string {
	ft := m.doc.FileType()
	if ft != core.PlainText {
		return ft.Name()
	}
	if name := highlighter.LanguageName(m.doc.Filename()); name != "" {
		return name
	}
	return ft.Name()
}

func (m *Model) messageLine() string {
	switch {
	case m.promptKind != promptNone:
		return m.prompt.View()
	case m.err != nil:
		return m.theme.ErrorStyle.Render(m.err.Error())
	case m.message != "":
		return m.theme.MessageStyle.Render(m.message)
	}
	return ""
}
