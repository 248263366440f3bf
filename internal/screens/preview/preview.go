// Package preview generates one item at a time and lets the user answer it.
package preview

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/eduexcel/icfesgen/internal/item"
	"github.com/eduexcel/icfesgen/internal/llm"
	"github.com/eduexcel/icfesgen/internal/normalize"
	"github.com/eduexcel/icfesgen/internal/postprocess"
	"github.com/eduexcel/icfesgen/internal/screen"
	"github.com/eduexcel/icfesgen/internal/ui/components"
	"github.com/eduexcel/icfesgen/internal/ui/layout"
	"github.com/eduexcel/icfesgen/internal/ui/theme"
)

// ItemGenerator produces a single item.
type ItemGenerator interface {
	GenerateOne(ctx context.Context, req normalize.Request) (*item.Item, llm.Usage, error)
}

type itemReadyMsg struct {
	Item  *item.Item
	Usage llm.Usage
	Err   error
}

type loadingTickMsg time.Time

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Screen shows the current item of a preview session.
type Screen struct {
	gen ItemGenerator
	req normalize.Request

	loading bool
	frame   int
	err     string

	item  *item.Item
	usage llm.Usage
	mc    components.MultiChoice

	answered int
	correct  int
}

var _ screen.Screen = (*Screen)(nil)

// New creates a preview screen for an already normalized request.
func New(gen ItemGenerator, req normalize.Request) *Screen {
	return &Screen{gen: gen, req: req}
}

func (s *Screen) Init() tea.Cmd {
	s.loading = true
	s.err = ""
	s.item = nil
	return tea.Batch(s.generate(), tick())
}

func (s *Screen) Title() string { return s.req.Area }

func (s *Screen) KeyHints() []layout.KeyHint {
	switch {
	case s.loading:
		return []layout.KeyHint{{Key: "Esc", Description: "Atrás"}, {Key: "Ctrl+C", Description: "Salir"}}
	case s.err != "":
		return []layout.KeyHint{{Key: "r", Description: "Reintentar"}, {Key: "Esc", Description: "Atrás"}}
	case s.mc.Submitted:
		return []layout.KeyHint{{Key: "n", Description: "Siguiente"}, {Key: "Esc", Description: "Atrás"}, {Key: "Ctrl+C", Description: "Salir"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Mover"},
		{Key: "Enter/A-D", Description: "Responder"},
		{Key: "Esc", Description: "Atrás"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case itemReadyMsg:
		s.loading = false
		if msg.Err != nil {
			s.err = msg.Err.Error()
			return s, nil
		}
		s.item = msg.Item
		s.usage = msg.Usage
		s.mc = components.NewMultiChoice(msg.Item)
		return s, nil

	case loadingTickMsg:
		if !s.loading {
			return s, nil
		}
		s.frame = (s.frame + 1) % len(frames)
		return s, tick()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch {
	case s.loading:
		return s, nil
	case s.err != "":
		if msg.String() == "r" {
			return s, s.Init()
		}
		return s, nil
	case s.mc.Submitted:
		if msg.String() == "n" {
			return s, s.Init()
		}
		return s, nil
	}

	s.mc, _ = s.mc.Update(msg)
	if !s.mc.Submitted {
		return s, nil
	}
	s.answered++
	ok := s.mc.IsCorrect()
	if ok {
		s.correct++
	}
	return s, func() tea.Msg { return screen.ScoreMsg{Correct: ok} }
}

func (s *Screen) generate() tea.Cmd {
	gen, req := s.gen, s.req
	return func() tea.Msg {
		it, usage, err := gen.GenerateOne(context.Background(), req)
		return itemReadyMsg{Item: it, Usage: usage, Err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return loadingTickMsg(t)
	})
}

func (s *Screen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Dim.Render(fmt.Sprintf("  %s · %s", s.req.Subtema, s.req.Estilo)))
	b.WriteString("\n\n")

	switch {
	case s.loading:
		b.WriteString(theme.Selected.Render("  " + frames[s.frame]))
		b.WriteString(theme.Body.Render(" Generando pregunta..."))
		return b.String()
	case s.err != "":
		b.WriteString(theme.Incorrect.Width(max(width-4, 20)).Render("  Error: " + s.err))
		return b.String()
	}

	b.WriteString(theme.Card.Width(max(width-2, 20)).Render(s.mc.View(width - 8)))
	b.WriteString("\n")

	if s.mc.Submitted {
		if s.mc.IsCorrect() {
			b.WriteString(theme.Correct.Render("  ¡Correcto!"))
		} else {
			b.WriteString(theme.Incorrect.Render(fmt.Sprintf("  Incorrecto. La respuesta es %s.", s.mc.Correct)))
		}
		b.WriteString("\n\n")
		b.WriteString(theme.Body.Width(max(width-4, 20)).Render("  " + s.item.Explicacion))
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  %d palabras · %d tokens",
			postprocess.WordCount(s.item.Pregunta), s.usage.TotalTokens)))
		b.WriteString("\n")
		bar := components.ProgressBar{
			Label:   "  Aciertos",
			Percent: float64(s.correct) / float64(max(s.answered, 1)),
			Width:   min(width-4, 60),
		}
		b.WriteString(bar.View())
	}
	return b.String()
}
