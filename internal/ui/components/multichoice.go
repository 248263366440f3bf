package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/eduexcel/icfesgen/internal/item"
	"github.com/eduexcel/icfesgen/internal/ui/theme"
)

// MultiChoice presents an item's four options and records one answer.
type MultiChoice struct {
	Question string
	Options  item.Options
	Correct  item.Label

	Selected  item.Label
	Submitted bool
	Chosen    item.Label
}

// NewMultiChoice builds a selector for it.
func NewMultiChoice(it *item.Item) MultiChoice {
	return MultiChoice{
		Question: it.Pregunta,
		Options:  it.Opciones,
		Correct:  it.RespuestaCorrecta,
		Selected: item.A,
	}
}

// Update moves the cursor with up/down and accepts enter or a letter key.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > item.A {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < item.D {
			m.Selected++
		}
	case "enter":
		m.submit(m.Selected)
	default:
		if l, err := item.ParseLabel(key); err == nil {
			m.Selected = l
			m.submit(l)
		}
	}
	return m, nil
}

func (m *MultiChoice) submit(l item.Label) {
	m.Submitted = true
	m.Chosen = l
}

// View renders the question wrapped to width and the options.
func (m MultiChoice) View(width int) string {
	var b strings.Builder
	b.WriteString(theme.Body.Width(max(width-4, 20)).Render(m.Question))
	b.WriteString("\n\n")

	for _, l := range item.Labels {
		prefix := "  "
		if l == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, l, m.Options.Get(l))

		style := theme.Unselected
		switch {
		case m.Submitted && l == m.Correct:
			style = theme.Correct
		case m.Submitted && l == m.Chosen:
			style = theme.Incorrect
		case m.Submitted:
			style = theme.Dim
		case l == m.Selected:
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// IsCorrect reports whether the submitted answer is the correct one.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.Chosen == m.Correct
}

