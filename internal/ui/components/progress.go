package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/eduexcel/icfesgen/internal/ui/theme"
)

// ProgressBar displays a horizontal bar for a ratio in [0, 1].
type ProgressBar struct {
	Label   string
	Percent float64
	Width   int
}

// View renders the label, the bar and the percentage.
func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(theme.Body.Render(p.Label))
		b.WriteString("  ")
	}

	barWidth := max(p.Width-lipgloss.Width(b.String())-6, 4)
	filled := min(max(int(float64(barWidth)*p.Percent), 0), barWidth)

	b.WriteString(lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled)))
	b.WriteString(lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled)))
	b.WriteString(theme.Dim.Render(fmt.Sprintf("  %d%%", int(p.Percent*100))))
	return b.String()
}
