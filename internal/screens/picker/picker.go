// Package picker is a list screen used to choose area, subtema and style.
package picker

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/eduexcel/icfesgen/internal/normalize"
	"github.com/eduexcel/icfesgen/internal/screen"
	"github.com/eduexcel/icfesgen/internal/ui/components"
	"github.com/eduexcel/icfesgen/internal/ui/layout"
	"github.com/eduexcel/icfesgen/internal/ui/theme"
)

// Option is one choice. Note is shown dimmed under the list for the
// highlighted option.
type Option struct {
	Value string
	Note  string
}

// Screen lists options and calls onPick with the chosen value.
type Screen struct {
	title   string
	prompt  string
	options []Option
	onPick  func(string) tea.Cmd

	filter  *components.TextInput
	visible []Option
	menu    components.Menu
}

var _ screen.Screen = (*Screen)(nil)

// New creates a picker. With filterable set, typing narrows the list by
// accent- and case-insensitive substring.
func New(title, prompt string, options []Option, filterable bool, onPick func(string) tea.Cmd) *Screen {
	s := &Screen{
		title:   title,
		prompt:  prompt,
		options: options,
		onPick:  onPick,
	}
	if filterable {
		ti := components.NewTextInput("escribe para filtrar", 60)
		s.filter = &ti
	}
	s.refilter()
	return s
}

// Strings turns plain values into options.
func Strings(values []string) []Option {
	out := make([]Option, len(values))
	for i, v := range values {
		out[i] = Option{Value: v}
	}
	return out
}

func (s *Screen) Init() tea.Cmd {
	if s.filter != nil {
		return s.filter.Init()
	}
	return nil
}

func (s *Screen) Title() string { return s.title }

func (s *Screen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Mover"},
		{Key: "Enter", Description: "Elegir"},
	}
	if s.filter != nil {
		hints = append(hints, layout.KeyHint{Key: "Texto", Description: "Filtrar"})
	}
	return append(hints,
		layout.KeyHint{Key: "Esc", Description: "Atrás"},
		layout.KeyHint{Key: "Ctrl+C", Description: "Salir"},
	)
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "up", "down", "ctrl+p", "ctrl+n", "enter":
			var cmd tea.Cmd
			s.menu, cmd = s.menu.Update(msg)
			return s, cmd
		}
	}

	if s.filter == nil {
		return s, nil
	}
	before := s.filter.Value()
	var cmd tea.Cmd
	*s.filter, cmd = s.filter.Update(msg)
	if s.filter.Value() != before {
		s.refilter()
	}
	return s, cmd
}

// refilter rebuilds the menu from the options matching the filter text.
func (s *Screen) refilter() {
	query := ""
	if s.filter != nil {
		query = normalize.Fold(s.filter.Value())
	}

	s.visible = s.visible[:0]
	items := make([]components.MenuItem, 0, len(s.options))
	for _, o := range s.options {
		if query != "" && !strings.Contains(normalize.Fold(o.Value), query) {
			continue
		}
		value := o.Value
		s.visible = append(s.visible, o)
		items = append(items, components.MenuItem{
			Label:  value,
			Action: func() tea.Cmd { return s.onPick(value) },
		})
	}
	s.menu = components.NewMenu(items)
}

// Selected returns the highlighted value, or "" when nothing matches.
func (s *Screen) Selected() string {
	if len(s.visible) == 0 {
		return ""
	}
	return s.visible[s.menu.Selected].Value
}

func (s *Screen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Render("  " + s.prompt))
	b.WriteString("\n\n")
	if s.filter != nil {
		b.WriteString(s.filter.View())
		b.WriteString("\n\n")
	}

	s.menu.Height = max(height-lipgloss.Height(b.String())-4, 3)
	b.WriteString(s.menu.View())

	if len(s.visible) > 0 {
		if note := s.visible[s.menu.Selected].Note; note != "" {
			b.WriteString("\n")
			b.WriteString(theme.Hint.Width(max(width-4, 20)).Render("  " + note))
		}
	}
	return b.String()
}
