// Package components holds the bubbletea sub-models the dashboard is built from.
package components

import (
	"github.com/Veraticus/product-monitor/internal/dashboard"
	"github.com/Veraticus/product-monitor/internal/model"
	"github.com/Veraticus/product-monitor/internal/tui/themes"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Sort direction markers shown in the active column header.
const (
	AscendingMarker  = " ▲"
	DescendingMarker = " ▼"
)

// columnLayout sizes a dashboard column as a share of the width.
type columnLayout struct {
	weight float64
	min    int
}

// columnLayouts follows dashboard.ProductColumns order.
var columnLayouts = []columnLayout{
	{weight: 0.26, min: 20},
	{weight: 0.09, min: 8},
	{weight: 0.08, min: 10},
	{weight: 0.10, min: 10},
	{weight: 0.06, min: 8},
	{weight: 0.10, min: 10},
	{weight: 0.05, min: 7},
	{weight: 0.08, min: 8},
	{weight: 0.10, min: 10},
	{weight: 0.05, min: 7},
}

// ProductTableModel renders one bucket's products.
type ProductTableModel struct {
	theme    themes.Theme
	sort     model.SortConfig
	products []model.Product
	table    table.Model
	width    int
	height   int
}

// NewProductTable creates an empty product table.
func NewProductTable(theme themes.Theme) ProductTableModel {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = theme.Selected
	t.SetStyles(s)

	m := ProductTableModel{
		table:  t,
		theme:  theme,
		sort:   model.DefaultSort(),
		width:  120,
		height: 12,
	}
	m.updateColumns()
	return m
}

// SetProducts replaces the rows. The previous cursor is kept when still in
// range.
func (m *ProductTableModel) SetProducts(products []model.Product, sort model.SortConfig) {
	m.products = products
	m.sort = sort
	m.updateColumns()
	m.table.SetRows(buildProductRows(products))

	if cursor := m.table.Cursor(); cursor >= len(products) {
		m.table.SetCursor(max(0, len(products)-1))
	}
}

// ResetCursor moves the selection to the first row.
func (m *ProductTableModel) ResetCursor() {
	m.table.GotoTop()
}

// Selected returns the product under the cursor.
func (m ProductTableModel) Selected() (model.Product, bool) {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.products) {
		return model.Product{}, false
	}
	return m.products[cursor], true
}

// Len returns the number of rows.
func (m ProductTableModel) Len() int {
	return len(m.products)
}

// Update forwards navigation keys to the table.
func (m ProductTableModel) Update(msg tea.Msg) (ProductTableModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table, or a placeholder when it is empty.
func (m ProductTableModel) View() string {
	if len(m.products) == 0 {
		return lipgloss.NewStyle().
			Foreground(m.theme.Muted).
			Padding(1, 0).
			Render("Nenhum produto nesta classificação.")
	}
	return m.table.View()
}

// Resize updates the component size.
func (m *ProductTableModel) Resize(width, height int) {
	m.width = width
	m.height = height
	// Header row plus its border take two lines.
	m.table.SetHeight(max(1, height-2))
	m.table.SetWidth(width)
	m.updateColumns()
}

// updateColumns sizes columns proportionally and marks the sorted one.
func (m *ProductTableModel) updateColumns() {
	// Each cell carries one column of padding on both sides.
	available := max(m.width-2*len(dashboard.ProductColumns), 60)

	columns := make([]table.Column, 0, len(dashboard.ProductColumns))
	for i, col := range dashboard.ProductColumns {
		title := col.Title
		if col.Key != "" && col.Key == m.sort.Key {
			if m.sort.Direction == model.Descending {
				title += DescendingMarker
			} else {
				title += AscendingMarker
			}
		}
		columns = append(columns, table.Column{
			Title: title,
			Width: max(columnLayouts[i].min, int(float64(available)*columnLayouts[i].weight)),
		})
	}

	m.table.SetColumns(columns)
}

func buildProductRows(products []model.Product) []table.Row {
	rows := make([]table.Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, ProductRow(p))
	}
	return rows
}

// ProductRow renders the display cells of a product, in column order.
func ProductRow(p model.Product) table.Row {
	return table.Row(dashboard.ProductCells(p))
}
