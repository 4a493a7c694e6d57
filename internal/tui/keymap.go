package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Up         key.Binding
	Down       key.Binding
	NextBucket key.Binding
	PrevBucket key.Binding

	// Sorting
	SortTitle       key.Binding
	SortCode        key.Binding
	SortInstallment key.Binding

	// Actions
	Ignore     key.Binding
	Reclassify key.Binding
	Refresh    key.Binding

	// Application
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		NextBucket: key.NewBinding(
			key.WithKeys("tab", "l", "right"),
			key.WithHelp("Tab/→", "next bucket"),
		),
		PrevBucket: key.NewBinding(
			key.WithKeys("shift+tab", "h", "left"),
			key.WithHelp("S-Tab/←", "previous bucket"),
		),

		// Sorting
		SortTitle: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "sort by title"),
		),
		SortCode: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "sort by code"),
		),
		SortInstallment: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "sort by installment"),
		),

		// Actions
		Ignore: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "ignore product"),
		),
		Reclassify: key.NewBinding(
			key.WithKeys("r", "enter"),
			key.WithHelp("r/Enter", "reclassify"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("R", "ctrl+r"),
			key.WithHelp("R", "reload"),
		),

		// Application
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q/Esc", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextBucket, k.SortInstallment, k.Ignore, k.Reclassify, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextBucket, k.PrevBucket},
		{k.SortTitle, k.SortCode, k.SortInstallment},
		{k.Ignore, k.Reclassify, k.Refresh},
		{k.Help, k.Quit, k.ForceQuit},
	}
}
