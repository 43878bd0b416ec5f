package main

import (
	"errors"
	"io/fs"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	editor "github.com/ionut-t/hecto/adapter-bubbletea"
	"github.com/ionut-t/hecto/adapter-bubbletea/highlighter"
	"github.com/ionut-t/hecto/core"
	"go.uber.org/zap"
)

const defaultTheme = "monokai"

type Model struct {
	editor editor.Model
	logger *zap.Logger
}

func (m Model) Init() tea.Cmd {
	return m.editor.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		}

	case editor.ErrorMsg:
		m.logger.Warn("editor error", zap.Error(msg.Error))
		return m, nil

	case editor.SaveMsg:
		m.logger.Info("saved", zap.String("path", msg.Path))
		return m, nil

	case editor.QuitMsg:
		return m, tea.Quit
	}

	editorModel, cmd := m.editor.Update(msg)
	m.editor = editorModel.(editor.Model)

	return m, cmd
}

func (m Model) View() string {
	return m.editor.View()
}

// newLogger writes development logs to the file named by HECTO_LOG. The
// terminal belongs to the editor, so without it nothing is logged.
func newLogger() (*zap.Logger, error) {
	path := os.Getenv("HECTO_LOG")
	if path == "" {
		return zap.NewNop(), nil
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}

// openDocument opens filename, or starts an empty document under that name
// when the file does not exist yet.
func openDocument(filename string, logger *zap.Logger) (*core.Document, error) {
	if filename == "" {
		return core.New(core.WithLogger(logger)), nil
	}

	doc, err := core.Open(filename, core.WithLogger(logger))
	if errors.Is(err, fs.ErrNotExist) {
		doc = core.New(core.WithLogger(logger))
		doc.SetFilename(filename)
		return doc, nil
	}
	return doc, err
}

func main() {
	logger, err := newLogger()
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	var filename string
	if len(os.Args) > 1 {
		filename = os.Args[1]
	}

	doc, err := openDocument(filename, logger)
	if err != nil {
		log.Fatalf("Error opening %s: %v", filename, err)
	}

	theme := os.Getenv("HECTO_THEME")
	if theme == "" || !highlighter.HasTheme(theme) {
		theme = defaultTheme
	}

	textEditor := editor.New(80, 24)
	textEditor.WithLogger(logger)
	textEditor.SetHighlighterTheme(theme)
	textEditor.WithSearchOptions(core.SearchOptions{Wrap: true})
	textEditor.SetDocument(doc)

	m := Model{
		editor: textEditor,
		logger: logger,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running Bubble Tea program: %v", err)
	}
}
