package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/product-monitor/internal/dashboard"
	"github.com/Veraticus/product-monitor/internal/model"
	"github.com/Veraticus/product-monitor/internal/tui/components"
	"github.com/charmbracelet/lipgloss"
)

// AppTitle heads every screen.
const AppTitle = "Monitor de Produtos"

// browseChrome counts the fixed lines around the table: title, tabs, bucket
// heading, detail, notice, help and the separating blank lines.
const browseChrome = 9

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.mode {
	case ModeLoading:
		return m.renderLoading()
	case ModeHelp:
		return m.renderHelp()
	case ModePicking:
		return m.picker.View()
	default:
		return m.renderBrowse()
	}
}

// renderLoading renders the loading screen until both fetches settle.
func (m Model) renderLoading() string {
	status := func(done bool, label string) string {
		if done {
			return m.theme.StatusSuccess.Render("✓ " + label)
		}
		return lipgloss.NewStyle().Foreground(m.theme.Muted).Render("… " + label)
	}

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.theme.Title.Render(AppTitle),
		"",
		m.spinner.View()+" Carregando...",
		"",
		status(m.configDone, "classificações"),
		status(m.productDone, "produtos"),
	)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

// renderBrowse renders the summary, the bucket tabs and the active table.
func (m Model) renderBrowse() string {
	width := max(m.width-2, 20)

	header := m.theme.Title.Render(AppTitle)
	if last := m.state.LastCollectedText(); last != "" {
		collected := m.theme.Subtitle.Render("Última coleta: " + last)
		gap := max(1, width-lipgloss.Width(header)-lipgloss.Width(collected))
		header += strings.Repeat(" ", gap) + collected
	}

	active := m.state.ActiveBucket()
	tabs := components.RenderBucketTabs(m.theme, m.state.Buckets().Names(), active, width)

	products := m.table
	products.Resize(width, m.tableHeight())

	sections := []string{
		header,
		m.leaderboard.View(),
		tabs,
		"",
		m.renderBucketHeading(),
		products.View(),
		m.renderDetail(),
		m.renderNotice(),
		m.help.View(m.keymap),
	}

	return m.theme.Box.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// tableHeight is what remains for the table after the summary and chrome.
func (m Model) tableHeight() int {
	used := browseChrome
	if m.state != nil {
		used += m.leaderboard.Height()
		used += lipgloss.Height(components.RenderBucketTabs(m.theme, m.state.Buckets().Names(), m.state.ActiveBucket(), max(m.width-2, 20)))
	}
	return max(3, m.height-used)
}

// renderBucketHeading names the active bucket with its size and ordering.
func (m Model) renderBucketHeading() string {
	active := m.state.ActiveBucket()
	if active == "" {
		return m.theme.Subtitle.Render("Nenhuma classificação ativa.")
	}

	cfg := m.state.Sort()
	direction := "crescente"
	if cfg.Direction == model.Descending {
		direction = "decrescente"
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.theme.Bold.Render(active),
		m.theme.Subtitle.Render(fmt.Sprintf("  %s produtos · ordenado por %s (%s)",
			dashboard.FormatCount(m.table.Len()), sortLabel(cfg.Key), direction)),
	)
}

// renderDetail shows the fields that do not fit in a table cell.
func (m Model) renderDetail() string {
	p, ok := m.table.Selected()
	if !ok {
		return ""
	}

	parts := []string{"🔗 " + model.Cell(p.Link)}
	if realValue := dashboard.FormatRealInstallment(p.RealInstallment); realValue != model.EmptyCell {
		parts = append(parts, "Parcela real: "+realValue)
	}
	if p.Description != "" {
		parts = append(parts, p.Description)
	}

	return lipgloss.NewStyle().
		Foreground(m.theme.Muted).
		MaxWidth(max(m.width-2, 20)).
		Render(strings.Join(parts, "  ·  "))
}

// renderNotice renders the last operator notice.
func (m Model) renderNotice() string {
	if m.notice.Text == "" {
		return ""
	}

	switch m.notice.Kind {
	case NoticeSuccess:
		return m.theme.StatusSuccess.Render(m.notice.Text)
	case NoticeError:
		return m.theme.StatusError.Render(m.notice.Text)
	default:
		return m.theme.StatusInfo.Render(m.notice.Text)
	}
}

// renderHelp renders the help screen.
func (m Model) renderHelp() string {
	h := m.help
	h.ShowAll = true

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Title.Render(AppTitle+" - Ajuda"),
		"",
		h.View(m.keymap),
		"",
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Pressione ? ou Esc para fechar"),
	)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.theme.BorderedBox.Render(content),
	)
}

func sortLabel(key model.SortKey) string {
	switch key {
	case model.SortByTitle:
		return "produto"
	case model.SortByCode:
		return "ID"
	case model.SortByInstallment:
		return "parcela"
	default:
		return string(key)
	}
}
