package adapter_bubbletea

import (
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ionut-t/hecto/core"
	"github.com/ionut-t/hecto/internal/grapheme"
)

// scroll adjusts the offset so the cursor is just inside the visible window.
func (m *Model) scroll() {
	width, height := m.width, m.textHeight()
	x, y := m.cursor.X, m.cursor.Y

	if y < m.offset.Y {
		m.offset.Y = y
	} else if height > 0 && y >= m.offset.Y+height {
		m.offset.Y = y - height + 1
	}

	if x < m.offset.X {
		m.offset.X = x
	} else if width > 0 && x >= m.offset.X+width {
		m.offset.X = x - width + 1
	}
}

func (m *Model) moveCursor(msg tea.KeyMsg) {
	km := m.keyMap
	height := m.textHeight()
	docLen := m.doc.Len()
	x, y := m.cursor.X, m.cursor.Y

	switch {
	case key.Matches(msg, km.WordLeft):
		m.wordLeft()
		return
	case key.Matches(msg, km.WordRight):
		m.wordRight()
		return
	case key.Matches(msg, km.Up):
		y = max(0, y-1)
	case key.Matches(msg, km.Down):
		// The row after the last one is reachable so text can be appended.
		if y < docLen {
			y++
		}
	case key.Matches(msg, km.Left):
		m.moveLeft()
		return
	case key.Matches(msg, km.Right):
		if x < m.rowLen(y) {
			x++
		} else if y < docLen {
			y++
			x = 0
		}
	case key.Matches(msg, km.PageUp):
		y = max(0, y-height)
	case key.Matches(msg, km.PageDown):
		y = min(docLen, y+height)
	case key.Matches(msg, km.Home):
		x = 0
	case key.Matches(msg, km.End):
		x = m.rowLen(y)
	}

	m.cursor.X = min(x, m.rowLen(y))
	m.cursor.Y = y
}

// moveLeft steps one grapheme left, wrapping to the end of the previous row.
func (m *Model) moveLeft() {
	switch {
	case m.cursor.X > 0:
		m.cursor.X--
	case m.cursor.Y > 0:
		m.cursor.Y--
		m.cursor.X = m.rowLen(m.cursor.Y)
	}
}

type charClass int

const (
	classSpace charClass = iota
	classWord
	classPunct
)

// classOf classifies a grapheme by its first rune.
func classOf(g string) charClass {
	r, _ := utf8.DecodeRuneInString(g)
	switch {
	case r == ' ' || r == '\t':
		return classSpace
	case unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_':
		return classWord
	}
	return classPunct
}

// wordRight moves to the start of the next word or punctuation run. At the
// end of a row it moves to the first non-blank of the next row.
func (m *Model) wordRight() {
	x, y := m.cursor.X, m.cursor.Y
	row, ok := m.doc.Row(y)
	if !ok {
		return
	}

	clusters := grapheme.Split(row.String())
	if x >= len(clusters) {
		if y+1 >= m.doc.Len() {
			return
		}
		next, _ := m.doc.Row(y + 1)
		m.cursor = core.Position{X: firstNonBlank(grapheme.Split(next.String())), Y: y + 1}
		return
	}

	if c := classOf(clusters[x]); c != classSpace {
		for x < len(clusters) && classOf(clusters[x]) == c {
			x++
		}
	}
	for x < len(clusters) && classOf(clusters[x]) == classSpace {
		x++
	}
	m.cursor.X = x
}

// wordLeft moves to the start of the previous word or punctuation run. At the
// start of a row it moves to the end of the previous row.
func (m *Model) wordLeft() {
	x, y := m.cursor.X, m.cursor.Y
	if x == 0 {
		if y > 0 {
			m.cursor = core.Position{X: m.rowLen(y - 1), Y: y - 1}
		}
		return
	}

	row, ok := m.doc.Row(y)
	if !ok {
		return
	}
	clusters := grapheme.Split(row.String())

	x = min(x, len(clusters)) - 1
	for x > 0 && classOf(clusters[x]) == classSpace {
		x--
	}
	c := classOf(clusters[x])
	for x > 0 && classOf(clusters[x-1]) == c {
		x--
	}
	m.cursor.X = x
}

func firstNonBlank(clusters []string) int {
	for i, g := range clusters {
		if classOf(g) != classSpace {
			return i
		}
	}
	return 0
}
