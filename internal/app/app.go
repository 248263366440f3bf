// Package app runs the interactive preview TUI.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/eduexcel/icfesgen/internal/catalog"
	"github.com/eduexcel/icfesgen/internal/normalize"
	"github.com/eduexcel/icfesgen/internal/router"
	"github.com/eduexcel/icfesgen/internal/screen"
	"github.com/eduexcel/icfesgen/internal/screens/picker"
	"github.com/eduexcel/icfesgen/internal/screens/preview"
	"github.com/eduexcel/icfesgen/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Generator preview.ItemGenerator

	// Request supplies word range, token and temperature settings. When
	// Area and Subtema are set the session starts on the preview screen.
	Request normalize.Request
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	start  tea.Cmd
	score  layout.Score
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	m := AppModel{router: router.New(areaPicker(opts))}
	if opts.Request.Area != "" && opts.Request.Subtema != "" {
		first := preview.New(opts.Generator, opts.Request)
		m.start = func() tea.Msg { return router.PushScreenMsg{Screen: first} }
	}
	return m
}

// areaPicker builds the area → subtema → style chain ending in a preview.
func areaPicker(opts Options) screen.Screen {
	return picker.New("Área", "Elige un área", picker.Strings(catalog.Areas()), false, func(area string) tea.Cmd {
		subtemas, _ := catalog.Subtemas(area)
		next := picker.New(area, "Elige un subtema", picker.Strings(subtemas), true, func(subtema string) tea.Cmd {
			descs := catalog.StyleDescriptions()
			styles := make([]picker.Option, 0, len(descs))
			for _, st := range catalog.Styles() {
				styles = append(styles, picker.Option{Value: st, Note: descs[st]})
			}
			next := picker.New("Estilo Kolb", "Elige un estilo de aprendizaje", styles, false, func(style string) tea.Cmd {
				req := opts.Request
				req.Area, req.Subtema, req.Estilo = area, subtema, style
				return push(preview.New(opts.Generator, req))
			})
			return push(next)
		})
		return push(next)
	})
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), m.start)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.ScoreMsg:
		m.score.Answered++
		if msg.Correct {
			m.score.Correct++
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	return m, m.router.Update(msg)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Mover"},
		{Key: "Enter", Description: "Elegir"},
		{Key: "Ctrl+C", Description: "Salir"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		hints = hp.KeyHints()
	}

	header := layout.RenderHeader(active.Title(), m.score, m.width)
	footer := layout.RenderFooter(hints, m.width)
	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	v.SetContent(layout.RenderFrame(header, m.router.View(m.width, contentHeight), footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
