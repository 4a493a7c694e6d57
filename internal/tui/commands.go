package tui

import (
	"context"

	"github.com/Veraticus/product-monitor/internal/dashboard"
	tea "github.com/charmbracelet/bubbletea"
)

// loadBuckets fetches and expands the classification config.
func (m Model) loadBuckets() tea.Cmd {
	loader, timeout := m.loader, m.config.LoadTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		buckets, err := loader.FetchBuckets(ctx)
		return bucketsLoadedMsg{buckets: buckets, err: err}
	}
}

// loadProducts fetches the product collection.
func (m Model) loadProducts() tea.Cmd {
	loader, timeout := m.loader, m.config.LoadTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		products, err := loader.FetchProducts(ctx)
		return productsLoadedMsg{products: products, err: err}
	}
}

// persistIgnore writes the ignore flag. State is applied in Update once the
// result arrives.
func (m Model) persistIgnore(state *dashboard.State, code string) tea.Cmd {
	timeout := m.config.WriteTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return ignoredMsg{code: code, err: state.PersistIgnore(ctx, code)}
	}
}

// persistReclassify writes the manual classification.
func (m Model) persistReclassify(state *dashboard.State, code, bucket string) tea.Cmd {
	timeout := m.config.WriteTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return reclassifiedMsg{code: code, bucket: bucket, err: state.PersistReclassify(ctx, code, bucket)}
	}
}
