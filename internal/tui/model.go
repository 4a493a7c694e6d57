// Package tui implements the interactive terminal dashboard.
package tui

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/product-monitor/internal/common"
	"github.com/Veraticus/product-monitor/internal/dashboard"
	"github.com/Veraticus/product-monitor/internal/model"
	"github.com/Veraticus/product-monitor/internal/service"
	"github.com/Veraticus/product-monitor/internal/tui/components"
	"github.com/Veraticus/product-monitor/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Mode represents what the TUI is currently showing.
type Mode int

const (
	ModeLoading Mode = iota
	ModeBrowse
	ModePicking
	ModeHelp
)

// Model holds the main TUI state.
type Model struct {
	theme       themes.Theme
	store       service.RemoteStore
	loader      *dashboard.Loader
	state       *dashboard.State
	snap        dashboard.Snapshot
	notice      Notice
	config      Config
	keymap      KeyMap
	help        help.Model
	spinner     spinner.Model
	leaderboard components.LeaderboardView
	picker      components.BucketPickerModel
	table       components.ProductTableModel
	mode        Mode
	width       int
	height      int
	configDone  bool
	productDone bool
	busy        bool
	quitting    bool
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = cfg.Theme.StatusInfo

	return Model{
		mode:        ModeLoading,
		config:      cfg,
		keymap:      DefaultKeyMap(),
		theme:       cfg.Theme,
		store:       cfg.Store,
		loader:      dashboard.NewLoader(cfg.Store),
		help:        help.New(),
		spinner:     sp,
		table:       components.NewProductTable(cfg.Theme),
		leaderboard: components.NewLeaderboardView(cfg.Theme),
		width:       cfg.Width,
		height:      cfg.Height,
	}
}

// Init starts both fetches.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadBuckets(), m.loadProducts())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case spinner.TickMsg:
		if m.mode != ModeLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case bucketsLoadedMsg:
		m.snap.Buckets, m.snap.ConfigErr = msg.buckets, msg.err
		m.configDone = true
		m.finishLoad()
		return m, nil

	case productsLoadedMsg:
		m.snap.Products, m.snap.ProductsErr = msg.products, msg.err
		m.productDone = true
		m.finishLoad()
		return m, nil

	case ignoredMsg:
		m.handleIgnored(msg)
		return m, nil

	case reclassifiedMsg:
		m.handleReclassified(msg)
		return m, nil

	case components.BucketPickedMsg:
		m.mode = ModeBrowse
		if m.state == nil {
			return m, nil
		}
		m.busy = true
		m.notice = Notice{Kind: NoticeInfo, Text: fmt.Sprintf("Classificando %s como %s...", msg.Code, msg.Bucket)}
		return m, m.persistReclassify(m.state, msg.Code, msg.Bucket)

	case components.PickCanceledMsg:
		m.mode = ModeBrowse
		return m, nil
	}

	return m, nil
}

// handleKey dispatches a key press according to the current mode.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeLoading:
		if key.Matches(msg, m.keymap.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case ModeHelp:
		if key.Matches(msg, m.keymap.Help, m.keymap.Quit) {
			m.mode = ModeBrowse
		}
		return m, nil

	case ModePicking:
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}

	return m.handleBrowseKey(msg)
}

// handleBrowseKey handles keys on the main table.
func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.mode = ModeHelp
		return m, nil

	case key.Matches(msg, m.keymap.NextBucket):
		m.cycleBucket(1)
		return m, nil

	case key.Matches(msg, m.keymap.PrevBucket):
		m.cycleBucket(-1)
		return m, nil

	case key.Matches(msg, m.keymap.SortTitle):
		m.toggleSort(model.SortByTitle)
		return m, nil

	case key.Matches(msg, m.keymap.SortCode):
		m.toggleSort(model.SortByCode)
		return m, nil

	case key.Matches(msg, m.keymap.SortInstallment):
		m.toggleSort(model.SortByInstallment)
		return m, nil

	case key.Matches(msg, m.keymap.Ignore):
		product, ok := m.table.Selected()
		if !ok || m.busy {
			return m, nil
		}
		m.busy = true
		m.notice = Notice{Kind: NoticeInfo, Text: fmt.Sprintf("Ignorando %s...", product.Code)}
		return m, m.persistIgnore(m.state, product.Code)

	case key.Matches(msg, m.keymap.Reclassify):
		product, ok := m.table.Selected()
		if !ok || m.busy {
			return m, nil
		}
		m.picker = components.NewBucketPicker(product, m.state.Buckets().Names(), m.state.ActiveBucket(), m.theme)
		m.picker.Resize(m.width, m.height)
		m.mode = ModePicking
		return m, nil

	case key.Matches(msg, m.keymap.Refresh):
		if m.busy {
			return m, nil
		}
		return m, m.reload()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// reload discards the current state and fetches everything again.
func (m *Model) reload() tea.Cmd {
	m.mode = ModeLoading
	m.snap = dashboard.Snapshot{}
	m.configDone, m.productDone = false, false
	m.notice = Notice{}
	return tea.Batch(m.spinner.Tick, m.loadBuckets(), m.loadProducts())
}

// finishLoad builds state once both fetches have settled.
func (m *Model) finishLoad() {
	if !m.configDone || !m.productDone {
		return
	}

	m.state = dashboard.NewState(m.store, m.snap)
	m.mode = ModeBrowse

	if err := m.snap.Err(); err != nil {
		slog.Error("Dashboard loaded with errors", "error", err)
		m.notice = Notice{Kind: NoticeError, Text: loadErrorText(m.snap)}
	} else {
		m.notice = Notice{
			Kind: NoticeInfo,
			Text: fmt.Sprintf("%s produtos carregados.", dashboard.FormatCount(len(m.state.AllProducts()))),
		}
	}

	m.refresh()
	m.table.ResetCursor()
}

func loadErrorText(snap dashboard.Snapshot) string {
	switch {
	case snap.ConfigErr != nil && snap.ProductsErr != nil:
		return "Falha ao carregar classificações e produtos."
	case snap.ConfigErr != nil:
		return "Falha ao carregar classificações."
	default:
		return "Falha ao carregar produtos."
	}
}

func (m *Model) handleIgnored(msg ignoredMsg) {
	m.busy = false
	if msg.err != nil {
		m.notice = Notice{Kind: NoticeError, Text: common.UserMessage(msg.err)}
		return
	}
	if m.state != nil {
		m.state.ApplyIgnore(msg.code)
	}
	m.notice = Notice{Kind: NoticeSuccess, Text: dashboard.IgnoredNotice(msg.code)}
	m.refresh()
}

func (m *Model) handleReclassified(msg reclassifiedMsg) {
	m.busy = false
	if msg.err != nil {
		m.notice = Notice{Kind: NoticeError, Text: common.UserMessage(msg.err)}
		return
	}
	if m.state != nil {
		m.state.ApplyReclassify(msg.code, msg.bucket)
	}
	m.notice = Notice{Kind: NoticeSuccess, Text: dashboard.ReclassifiedNotice(msg.code, msg.bucket)}
	m.refresh()
}

// cycleBucket moves the active bucket by delta, wrapping around.
func (m *Model) cycleBucket(delta int) {
	if m.state == nil {
		return
	}
	names := m.state.Buckets().Names()
	if len(names) == 0 {
		return
	}

	next := 0
	if i := m.state.Buckets().Index(m.state.ActiveBucket()); i >= 0 {
		next = ((i+delta)%len(names) + len(names)) % len(names)
	}
	if err := m.state.SetActiveBucket(names[next]); err != nil {
		slog.Warn("Failed to switch bucket", "bucket", names[next], "error", err)
		return
	}

	m.refresh()
	m.table.ResetCursor()
}

// toggleSort selects a sort key for the active bucket.
func (m *Model) toggleSort(sortKey model.SortKey) {
	if m.state == nil {
		return
	}
	m.state.ToggleSort(sortKey)
	m.refresh()
}

// refresh pushes the current state into the table and summary.
func (m *Model) refresh() {
	if m.state == nil {
		return
	}
	m.table.SetProducts(m.state.ActiveProducts(), m.state.Sort())
	m.leaderboard.SetRows(m.state.Leaderboard(), m.state.ActiveBucket())
}

// handleResize adjusts component sizes when terminal resizes.
func (m *Model) handleResize() {
	m.help.Width = m.width
	m.leaderboard.Resize(m.width - 2)
	m.table.Resize(m.width-2, m.tableHeight())
	m.picker.Resize(m.width, m.height)
}
