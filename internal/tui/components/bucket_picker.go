package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/product-monitor/internal/model"
	"github.com/Veraticus/product-monitor/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// BucketPickerModel lets the operator choose a bucket for one product.
type BucketPickerModel struct {
	theme   themes.Theme
	product model.Product
	names   []string
	cursor  int
	width   int
	height  int
}

// NewBucketPicker opens the picker on the product's current bucket, or on
// fallback when the product has none.
func NewBucketPicker(product model.Product, names []string, fallback string, theme themes.Theme) BucketPickerModel {
	m := BucketPickerModel{
		theme:   theme,
		product: product,
		names:   names,
	}

	for _, want := range []string{product.Classification, fallback} {
		for i, name := range names {
			if name == want {
				m.cursor = i
				return m
			}
		}
	}
	return m
}

// Cursor returns the highlighted bucket name.
func (m BucketPickerModel) Cursor() string {
	if m.cursor < 0 || m.cursor >= len(m.names) {
		return ""
	}
	return m.names[m.cursor]
}

// Update handles messages.
func (m BucketPickerModel) Update(msg tea.Msg) (BucketPickerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down", "tab":
			if len(m.names) > 0 {
				m.cursor = (m.cursor + 1) % len(m.names)
			}

		case "k", "up", "shift+tab":
			if len(m.names) > 0 {
				m.cursor = (m.cursor + len(m.names) - 1) % len(m.names)
			}

		case "enter":
			bucket := m.Cursor()
			if bucket == "" {
				return m, nil
			}
			code := m.product.Code
			return m, func() tea.Msg {
				return BucketPickedMsg{Code: code, Bucket: bucket}
			}

		case "esc", "q":
			return m, func() tea.Msg { return PickCanceledMsg{} }

		default:
			// 1-9 jump straight to a bucket.
			if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
				if i := int(s[0] - '1'); i < len(m.names) {
					m.cursor = i
				}
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// Resize updates the component size.
func (m *BucketPickerModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

// View renders the picker.
func (m BucketPickerModel) View() string {
	title := m.theme.Title.Render("Classificar produto")
	subtitle := m.theme.Subtitle.Render(fmt.Sprintf("%s  %s", m.product.Code, m.product.DisplayTitle()))

	var items []string
	for i, name := range m.names {
		line := fmt.Sprintf("%d. %s", i+1, name)
		if i >= 9 {
			line = "   " + name
		}
		if name == m.product.Classification {
			line += "  (atual)"
		}
		if i == m.cursor {
			items = append(items, m.theme.Selected.Render("> "+line))
		} else {
			items = append(items, m.theme.Normal.Render("  "+line))
		}
	}
	if len(items) == 0 {
		items = append(items, lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Nenhuma classificação disponível."))
	}

	help := lipgloss.NewStyle().
		Foreground(m.theme.Muted).
		Render(strings.Join([]string{"[↑↓] Navegar", "[Enter] Confirmar", "[Esc] Cancelar"}, "  "))

	box := m.theme.BorderedBox.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		subtitle,
		"",
		strings.Join(items, "\n"),
		"",
		help,
	))

	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
