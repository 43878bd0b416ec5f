package adapter_bubbletea

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ionut-t/hecto/adapter-bubbletea/highlighter"
	"github.com/ionut-t/hecto/core"
	"go.uber.org/zap"
)

// Version is shown in the welcome message of an empty document.
const Version = "0.1.0"

const messageDuration = 5 * time.Second

// quitTimes is the number of quit presses needed to leave with unsaved changes.
const quitTimes = 2

var ErrUnsavedChanges = errors.New("file has unsaved changes")

type Theme struct {
	StatusLineStyle lipgloss.Style
	MessageStyle    lipgloss.Style
	ErrorStyle      lipgloss.Style
	PromptStyle     lipgloss.Style
	TildeStyle      lipgloss.Style
	CursorStyle     lipgloss.Style
}

var DefaultTheme = Theme{
	StatusLineStyle: lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("255")),
	MessageStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	ErrorStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	PromptStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true),
	TildeStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	CursorStyle:     lipgloss.NewStyle().Reverse(true),
}

// Clipboard is the system clipboard as seen by the editor.
type Clipboard interface {
	Write(text string) error
	Read() (string, error)
}

type atottoClipboard struct{}

func (c *atottoClipboard) Write(text string) error {
	return clipboard.WriteAll(text)
}

func (c *atottoClipboard) Read() (string, error) {
	return clipboard.ReadAll()
}

type ErrorMsg struct {
	Error error
}

// SaveMsg is sent after the document was written to Path.
type SaveMsg struct {
	Path string
}

type QuitMsg struct{}

// YankMsg is sent after the current row was copied to the clipboard.
type YankMsg struct {
	Content string
}

type PasteMsg struct {
	Content string
}

type clearMsg struct{}

type promptKind int

const (
	promptNone promptKind = iota
	promptSearch
	promptSaveAs
)

type Model struct {
	doc    *core.Document
	cursor core.Position
	offset core.Position
	width  int
	height int

	theme            Theme
	palette          core.Palette
	highlighterTheme string
	keyMap           KeyMap
	clipboard        Clipboard
	logger           *zap.Logger
	searchOptions    core.SearchOptions

	prompt      textinput.Model
	promptKind  promptKind
	search      *core.Search
	savedOffset core.Position

	StatusLineFunc func() string

	quitTimes      int
	message        string
	err            error
	clearMsgCancel context.CancelFunc
}

func New(width, height int) Model {
	prompt := textinput.New()
	prompt.CharLimit = 256

	m := Model{
		doc:       core.New(),
		theme:     DefaultTheme,
		palette:   core.DefaultPalette,
		keyMap:    DefaultKeyMap(),
		clipboard: &atottoClipboard{},
		logger:    zap.NewNop(),
		prompt:    prompt,
		quitTimes: quitTimes,
	}
	m.prompt.PromptStyle = m.theme.PromptStyle
	m.message = m.helpMessage()

	m.SetSize(width, height)

	return m
}

func (m *Model) SetSize(width, height int) {
	m.width = max(0, width)
	m.height = max(0, height)
	m.prompt.Width = max(0, m.width-lipgloss.Width(m.prompt.Prompt)-1)
	m.scroll()
}

// textHeight is the number of screen lines available to document rows. The
// last two lines hold the status bar and the message bar.
func (m *Model) textHeight() int {
	return max(0, m.height-2)
}

// SetDocument replaces the edited document and moves the cursor to the top.
func (m *Model) SetDocument(doc *core.Document) {
	if doc == nil {
		doc = core.New(core.WithLogger(m.logger))
	}
	m.doc = doc
	m.cursor = core.Position{}
	m.offset = core.Position{}
	m.quitTimes = quitTimes
	if m.promptKind != promptNone {
		m.closePrompt()
	}
	m.search = nil
}

func (m *Model) Document() *core.Document {
	return m.doc
}

// WithTheme allows setting a custom theme for the editor.
func (m *Model) WithTheme(theme Theme) {
	m.theme = theme
	m.prompt.PromptStyle = theme.PromptStyle
}

// SetHighlighterTheme colors highlighted text with the chroma style named
// theme. An empty name restores the default palette.
//
// For a full list of available themes, see: https://github.com/alecthomas/chroma/blob/master/styles
func (m *Model) SetHighlighterTheme(theme string) {
	m.highlighterTheme = theme
	if theme == "" {
		m.palette = core.DefaultPalette
		return
	}
	m.palette = highlighter.Palette(theme)
}

// SetPalette sets the colors used for highlighted text directly.
func (m *Model) SetPalette(palette core.Palette) {
	m.palette = palette
}

func (m *Model) WithLogger(logger *zap.Logger) {
	if logger != nil {
		m.logger = logger
	}
}

func (m *Model) WithClipboard(c Clipboard) {
	if c != nil {
		m.clipboard = c
	}
}

func (m *Model) WithKeyMap(km KeyMap) {
	m.keyMap = km
	m.message = m.helpMessage()
}

// WithSearchOptions configures searches started after the call.
func (m *Model) WithSearchOptions(opts core.SearchOptions) {
	m.searchOptions = opts
}

func (m *Model) Cursor() core.Position {
	return m.cursor
}

func (m *Model) Offset() core.Position {
	return m.offset
}

// SetCursorPosition moves the cursor. The row may be one past the last row of
// the document, the column at most the length of that row.
func (m *Model) SetCursorPosition(pos core.Position) error {
	if pos.Y < 0 || pos.Y > m.doc.Len() || pos.X < 0 || pos.X > m.rowLen(pos.Y) {
		return fmt.Errorf("%w: row %d, column %d", core.ErrInvalidPosition, pos.Y, pos.X)
	}
	m.cursor = pos
	m.scroll()
	return nil
}

// IsSearching reports whether an incremental search is in progress.
func (m *Model) IsSearching() bool {
	return m.promptKind == promptSearch
}

func (m *Model) Message() string {
	return m.message
}

func (m *Model) Err() error {
	return m.err
}

func (m *Model) dispatchClearMsg(duration time.Duration) tea.Cmd {
	if m.clearMsgCancel != nil {
		m.clearMsgCancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	m.clearMsgCancel = cancel

	return func() tea.Msg {
		defer cancel()
		<-ctx.Done()
		if ctx.Err() == context.DeadlineExceeded {
			return clearMsg{}
		}
		return nil
	}
}

// DispatchMessage allows setting a message to be displayed in the message bar for a specified duration.
func (m *Model) DispatchMessage(message string, duration time.Duration) tea.Cmd {
	m.message = message
	m.err = nil

	return m.dispatchClearMsg(duration)
}

// DispatchError allows setting an error to be displayed in the message bar for a specified duration.
func (m *Model) DispatchError(err error, duration time.Duration) tea.Cmd {
	m.err = err
	m.message = ""

	return m.dispatchClearMsg(duration)
}

func (m *Model) helpMessage() string {
	km := m.keyMap
	return fmt.Sprintf("HELP: %s = find | %s = save | %s = quit",
		km.Find.Help().Key, km.Save.Help().Key, km.Quit.Help().Key)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		var cmd tea.Cmd
		if m.promptKind != promptNone {
			cmd = m.handlePromptKey(msg)
		} else {
			cmd = m.handleKey(msg)
		}
		m.scroll()
		return m, cmd

	case clearMsg:
		m.message = ""
		m.err = nil
	}

	return m, nil
}

func (m Model) View() string {
	m.doc.HighlightUntil(m.offset.Y + m.textHeight())

	statusLine := m.statusLine()
	messageLine := m.messageLine()

	if m.textHeight() == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, statusLine, messageLine)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderRows(),
		statusLine,
		messageLine,
	)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	km := m.keyMap

	if !key.Matches(msg, km.Quit) {
		m.quitTimes = quitTimes
	}

	switch {
	case key.Matches(msg, km.Quit):
		return m.quit()
	case key.Matches(msg, km.Save):
		return m.save()
	case key.Matches(msg, km.Find):
		return m.startSearch()
	case key.Matches(msg, km.Copy):
		return m.copyRow()
	case key.Matches(msg, km.Paste):
		return m.paste()
	case key.Matches(msg, km.Enter):
		m.insert('\n')
	case key.Matches(msg, km.Tab):
		m.insert('\t')
	case key.Matches(msg, km.Backspace):
		m.backspace()
	case key.Matches(msg, km.Delete):
		m.doc.Delete(m.cursor)
	case key.Matches(msg, km.Up, km.Down, km.Left, km.Right, km.WordLeft, km.WordRight, km.Home, km.End, km.PageUp, km.PageDown):
		m.moveCursor(msg)
	case msg.Type == tea.KeySpace:
		m.insert(' ')
	case msg.Type == tea.KeyRunes && !msg.Alt:
		for _, r := range msg.Runes {
			if r != '\r' {
				m.insert(r)
			}
		}
	}

	return nil
}

func (m *Model) quit() tea.Cmd {
	if m.doc.IsDirty() && m.quitTimes > 1 {
		m.quitTimes--
		err := fmt.Errorf("%w: press %s %d more time(s) to quit",
			ErrUnsavedChanges, m.keyMap.Quit.Help().Key, m.quitTimes)
		return m.DispatchError(err, messageDuration)
	}
	return func() tea.Msg { return QuitMsg{} }
}

// insert puts r at the cursor and moves the cursor past it.
func (m *Model) insert(r rune) {
	m.doc.Insert(m.cursor, r)
	if r == '\n' {
		m.cursor = core.Position{X: 0, Y: m.cursor.Y + 1}
		return
	}
	// A combining mark joins the previous cluster and leaves the length alone.
	m.cursor.X = min(m.cursor.X+1, m.rowLen(m.cursor.Y))
}

func (m *Model) backspace() {
	if m.cursor.X == 0 && m.cursor.Y == 0 {
		return
	}
	m.moveLeft()
	m.doc.Delete(m.cursor)
}

func (m *Model) save() tea.Cmd {
	if m.doc.Filename() == "" {
		return m.openPrompt(promptSaveAs, "Save as: ")
	}
	return m.saveDocument()
}

func (m *Model) saveDocument() tea.Cmd {
	if err := m.doc.Save(); err != nil {
		m.logger.Warn("save failed", zap.String("path", m.doc.Filename()), zap.Error(err))
		return tea.Batch(
			m.DispatchError(err, messageDuration),
			func() tea.Msg { return ErrorMsg{Error: err} },
		)
	}

	path := m.doc.Filename()
	return tea.Batch(
		m.DispatchMessage(fmt.Sprintf("file saved to %s", path), messageDuration),
		func() tea.Msg { return SaveMsg{Path: path} },
	)
}

func (m *Model) copyRow() tea.Cmd {
	row, ok := m.doc.Row(m.cursor.Y)
	if !ok {
		return nil
	}

	content := row.String()
	if err := m.clipboard.Write(content); err != nil {
		m.logger.Warn("clipboard write failed", zap.Error(err))
		return m.DispatchError(err, messageDuration)
	}

	return tea.Batch(
		m.DispatchMessage(fmt.Sprintf("%d bytes copied", len(content)), messageDuration),
		func() tea.Msg { return YankMsg{Content: content} },
	)
}

func (m *Model) paste() tea.Cmd {
	content, err := m.clipboard.Read()
	if err != nil {
		m.logger.Warn("clipboard read failed", zap.Error(err))
		return m.DispatchError(err, messageDuration)
	}

	for _, r := range content {
		if r != '\r' {
			m.insert(r)
		}
	}

	return func() tea.Msg { return PasteMsg{Content: content} }
}

func (m *Model) rowLen(y int) int {
	row, ok := m.doc.Row(y)
	if !ok {
		return 0
	}
	return row.Len()
}
