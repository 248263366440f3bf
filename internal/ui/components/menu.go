package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/eduexcel/icfesgen/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Action runs on enter.
type MenuItem struct {
	Label  string
	Action func() tea.Cmd
}

// Menu is a vertical list with a cursor. Only a window of Height items is
// shown when Height is positive.
type Menu struct {
	Items    []MenuItem
	Selected int
	Height   int
}

// NewMenu creates a menu over items.
func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

// Update handles cursor movement and enter.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "ctrl+p":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "ctrl+n":
		if m.Selected < len(m.Items)-1 {
			m.Selected++
		}
	case "enter":
		if it := m.Items[m.Selected]; it.Action != nil {
			return m, it.Action()
		}
	}
	return m, nil
}

// View renders the visible window of items.
func (m Menu) View() string {
	if len(m.Items) == 0 {
		return theme.Hint.Render("    (sin resultados)") + "\n"
	}

	start, end := 0, len(m.Items)
	if m.Height > 0 && len(m.Items) > m.Height {
		start = min(max(m.Selected-m.Height/2, 0), len(m.Items)-m.Height)
		end = start + m.Height
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		if i == m.Selected {
			b.WriteString(theme.Selected.Render("  ▸ " + m.Items[i].Label))
		} else {
			b.WriteString(theme.Unselected.Render("    " + m.Items[i].Label))
		}
		b.WriteString("\n")
	}
	return b.String()
}
