// Package tui implements the interactive theme picker.
package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"

	"github.com/alexisbeaulieu97/rainbow/internal/render"
	"github.com/alexisbeaulieu97/rainbow/internal/scanner"
	"github.com/alexisbeaulieu97/rainbow/internal/theme"
)

const (
	defaultWidth  = 80
	defaultHeight = 20
	// chromeHeight is the number of lines drawn around the preview.
	chromeHeight = 5
)

// Options configures the picker.
type Options struct {
	Registry *theme.Registry
	// Current is the theme selected when the picker opens.
	Current  string
	Path     string
	Text     string
	Language string
	Scanner  *scanner.Scanner
	Painter  *render.Painter
}

// preview is the rendered file for one theme.
type preview struct {
	content string
	keys    int
	ranges  int
}

// Model is the Bubbletea state for the theme picker.
type Model struct {
	registry *theme.Registry
	names    []string
	cursor   int
	original int

	path     string
	text     string
	language string
	scanner  *scanner.Scanner
	painter  *render.Painter

	viewport viewport.Model
	previews map[string]preview

	accepted  bool
	cancelled bool
}

// NewModel builds a picker over every theme in opts.Registry.
func NewModel(opts Options) Model {
	registry := opts.Registry
	if registry == nil {
		registry = theme.NewRegistry()
	}
	sc := opts.Scanner
	if sc == nil {
		sc = scanner.New(scanner.DefaultOptions())
	}
	painter := opts.Painter
	if painter == nil {
		painter = render.NewPainterWithProfile(termenv.Ascii)
	}

	m := Model{
		registry: registry,
		names:    registry.Names(),
		path:     opts.Path,
		text:     opts.Text,
		language: opts.Language,
		scanner:  sc,
		painter:  painter,
		viewport: viewport.New(defaultWidth, defaultHeight),
		previews: make(map[string]preview),
	}
	for i, name := range m.names {
		if name == opts.Current {
			m.cursor = i
			m.original = i
		}
	}
	m.refresh()
	return m
}

// Init starts the Bubbletea program.
func (m Model) Init() tea.Cmd {
	return nil
}

// Selected returns the theme under the cursor. After a cancel it is the
// theme the picker opened with.
func (m Model) Selected() string {
	if len(m.names) == 0 {
		return ""
	}
	return m.names[m.cursor]
}

// Accepted reports whether the user confirmed a selection.
func (m Model) Accepted() bool {
	return m.accepted
}

// Cancelled reports whether the user backed out.
func (m Model) Cancelled() bool {
	return m.cancelled
}

func (m *Model) move(delta int) {
	if len(m.names) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.names)) % len(m.names)
	m.refresh()
}

// refresh re-renders the preview for the selected theme, keeping the
// scroll position.
func (m *Model) refresh() {
	p := m.previewFor(m.Selected())
	offset := m.viewport.YOffset
	m.viewport.SetContent(p.content)
	m.viewport.SetYOffset(offset)
}

func (m *Model) previewFor(name string) preview {
	if p, ok := m.previews[name]; ok {
		return p
	}
	th, _ := m.registry.Get(name)
	ranges := m.scanner.FindClassRanges(m.text, m.language, th)
	p := preview{
		content: m.painter.Paint(m.text, ranges),
		keys:    ranges.Len(),
		ranges:  ranges.RangeCount(),
	}
	m.previews[name] = p
	return p
}
