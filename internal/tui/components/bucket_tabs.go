package components

import (
	"strings"

	"github.com/Veraticus/product-monitor/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

// RenderBucketTabs draws one tab per bucket, wrapping to new lines when the
// row would exceed width.
func RenderBucketTabs(theme themes.Theme, names []string, active string, width int) string {
	if len(names) == 0 {
		return lipgloss.NewStyle().Foreground(theme.Muted).Render("Nenhuma classificação carregada.")
	}

	var (
		lines   []string
		current []string
		used    int
	)
	for _, name := range names {
		style := theme.Tab
		if name == active {
			style = theme.ActiveTab
		}
		tab := style.Render(name)
		w := lipgloss.Width(tab) + 1

		if width > 0 && used > 0 && used+w > width {
			lines = append(lines, strings.Join(current, " "))
			current, used = nil, 0
		}
		current = append(current, tab)
		used += w
	}
	lines = append(lines, strings.Join(current, " "))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
