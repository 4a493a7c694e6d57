package components

import (
	"github.com/Veraticus/product-monitor/internal/dashboard"
	"github.com/Veraticus/product-monitor/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// LeaderboardHeaders are the summary table's column titles.
var LeaderboardHeaders = []string{"Classificação", "Comparativo", "1º", "2º", "3º"}

// LeaderboardView renders the three cheapest offers of every bucket.
type LeaderboardView struct {
	theme  themes.Theme
	active string
	rows   []dashboard.LeaderboardRow
	width  int
}

// NewLeaderboardView creates an empty summary view.
func NewLeaderboardView(theme themes.Theme) LeaderboardView {
	return LeaderboardView{theme: theme}
}

// SetRows replaces the summary rows and highlights the active bucket.
func (v *LeaderboardView) SetRows(rows []dashboard.LeaderboardRow, active string) {
	v.rows = rows
	v.active = active
}

// Resize sets the render width.
func (v *LeaderboardView) Resize(width int) {
	v.width = width
}

// Height returns the rendered line count for layout.
func (v LeaderboardView) Height() int {
	if len(v.rows) == 0 {
		return 1
	}
	return lipgloss.Height(v.View())
}

// View renders the summary table.
func (v LeaderboardView) View() string {
	if len(v.rows) == 0 {
		return lipgloss.NewStyle().Foreground(v.theme.Muted).Render("Sem classificações.")
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(v.theme.Border)).
		Headers(LeaderboardHeaders...).
		StyleFunc(v.cellStyle)

	for _, row := range v.rows {
		t.Row(row.Bucket, row.Comparative, row.SlotText(0), row.SlotText(1), row.SlotText(2))
	}
	if v.width > 0 {
		t.Width(v.width)
	}

	return t.String()
}

func (v LeaderboardView) cellStyle(row, col int) lipgloss.Style {
	base := lipgloss.NewStyle().Padding(0, 1)
	if row == table.HeaderRow {
		return base.Bold(true).Foreground(v.theme.Secondary)
	}
	if row < 0 || row >= len(v.rows) {
		return base
	}

	r := v.rows[row]
	if col == 0 && r.Bucket == v.active {
		return base.Inherit(v.theme.Bold).Foreground(v.theme.Primary)
	}
	if col >= 2 {
		if entry, ok := r.Slot(col - 2); ok && entry.HasCoupon {
			return base.Inherit(v.theme.CouponPrice)
		}
	}
	return base.Foreground(v.theme.Foreground)
}
