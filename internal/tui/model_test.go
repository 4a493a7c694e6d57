package tui

import (
	"errors"
	"testing"

	"github.com/Veraticus/product-monitor/internal/dashboard"
	"github.com/Veraticus/product-monitor/internal/service"
	"github.com/Veraticus/product-monitor/internal/testutil"
	"github.com/Veraticus/product-monitor/internal/tui/components"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *testutil.MockStore {
	t.Helper()
	return &testutil.MockStore{
		ConfigRecords: []service.Record{
			testutil.BaseConfig(t, "A", []string{"x"}, nil),
			testutil.BaseConfig(t, "B", nil, []string{"y"}),
		},
		ProductRecords: testutil.OfferRecords(t,
			testutil.Offer{Code: "c1", Title: "Console um", Installment: "R$ 49,90", Classification: "A Combo"},
			testutil.Offer{Code: "c2", Title: "Console dois", Installment: "R$ 19,90", Classification: "A Combo", Coupon: "10% OFF"},
			testutil.Offer{Code: "c3", Title: "Avulso", Installment: "R$ 5,00", Classification: "B Sem Combo"},
		),
	}
}

func newTestModel(store service.RemoteStore) Model {
	cfg := defaultConfig()
	WithStore(store)(&cfg)
	WithSize(140, 50)(&cfg)
	return newModel(cfg)
}

func loadedModel(t *testing.T, store service.RemoteStore) Model {
	t.Helper()
	m := newTestModel(store)
	m = update(t, m, m.loadBuckets()())
	m = update(t, m, m.loadProducts()())
	require.Equal(t, ModeBrowse, m.mode)
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func selectedCode(t *testing.T, m Model) string {
	t.Helper()
	p, ok := m.table.Selected()
	require.True(t, ok)
	return p.Code
}

func TestModel_StaysLoadingUntilBothFetchesSettle(t *testing.T) {
	store := newTestStore(t)
	m := newTestModel(store)
	assert.Equal(t, ModeLoading, m.mode)
	assert.NotNil(t, m.Init())

	m = update(t, m, m.loadProducts()())
	assert.Equal(t, ModeLoading, m.mode)
	assert.Nil(t, m.state)
	assert.Contains(t, m.View(), "Carregando")

	m = update(t, m, m.loadBuckets()())
	assert.Equal(t, ModeBrowse, m.mode)
	require.NotNil(t, m.state)
	assert.Equal(t, "A Combo", m.state.ActiveBucket())
	assert.Equal(t, NoticeInfo, m.notice.Kind)
	assert.Equal(t, "3 produtos carregados.", m.notice.Text)
}

func TestModel_BrowseView(t *testing.T) {
	m := loadedModel(t, newTestStore(t))

	view := m.View()
	assert.Contains(t, view, AppTitle)
	assert.Contains(t, view, "A Combo")
	assert.Contains(t, view, "B Sem Combo")
	assert.Contains(t, view, "P1P")
	assert.Equal(t, "c2", selectedCode(t, m), "cheapest first by default")
}

func TestModel_LoadFailure(t *testing.T) {
	store := newTestStore(t)
	store.ConfigErr = errors.New("offline")

	m := loadedModel(t, store)
	assert.Equal(t, NoticeError, m.notice.Kind)
	assert.Equal(t, "Falha ao carregar classificações.", m.notice.Text)
	assert.Empty(t, m.state.Buckets())
	assert.Contains(t, m.View(), "Nenhuma classificação")
}

func TestModel_CycleBuckets(t *testing.T) {
	m := loadedModel(t, newTestStore(t))

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "B Sem Combo", m.state.ActiveBucket())
	assert.Equal(t, "c3", selectedCode(t, m))

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "P1P", m.state.ActiveBucket())
	_, ok := m.table.Selected()
	assert.False(t, ok)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "A Combo", m.state.ActiveBucket(), "wraps around")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, "P1P", m.state.ActiveBucket())
}

func TestModel_SortKeys(t *testing.T) {
	m := loadedModel(t, newTestStore(t))

	m, _ = press(t, m, runes("p"))
	assert.Equal(t, "c1", selectedCode(t, m), "installment toggles to descending")

	m, _ = press(t, m, runes("c"))
	assert.Equal(t, "c1", selectedCode(t, m))
	assert.Equal(t, "codigo", string(m.state.Sort().Key))

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "valor_parcela", string(m.state.Sort().Key), "switching bucket resets sort")
}

func TestModel_Ignore(t *testing.T) {
	store := newTestStore(t)
	m := loadedModel(t, store)

	m, cmd := press(t, m, runes("i"))
	require.NotNil(t, cmd)
	assert.True(t, m.busy)
	assert.Len(t, m.state.AllProducts(), 3, "nothing changes before the write lands")

	m = update(t, m, cmd())
	assert.False(t, m.busy)
	assert.Equal(t, Notice{Kind: NoticeSuccess, Text: dashboard.IgnoredNotice("c2")}, m.notice)
	_, ok := m.state.Product("c2")
	assert.False(t, ok)
	assert.Equal(t, "c1", selectedCode(t, m))
	assert.Equal(t, []testutil.Write{{Resource: service.ResourceIgnore, Code: "c2", Value: true}}, store.Writes())
}

func TestModel_IgnoreFailure(t *testing.T) {
	store := newTestStore(t)
	store.IgnoreErr = errors.New("permission denied")
	m := loadedModel(t, store)

	m, cmd := press(t, m, runes("i"))
	require.NotNil(t, cmd)
	m = update(t, m, cmd())

	assert.Equal(t, NoticeError, m.notice.Kind)
	assert.Contains(t, m.notice.Text, "Falha ao ignorar produto c2")
	_, ok := m.state.Product("c2")
	assert.True(t, ok)
}

func TestModel_IgnoreWhileBusy(t *testing.T) {
	m := loadedModel(t, newTestStore(t))

	m, cmd := press(t, m, runes("i"))
	require.NotNil(t, cmd)
	_, second := press(t, m, runes("i"))
	assert.Nil(t, second)
}

func TestModel_Reclassify(t *testing.T) {
	store := newTestStore(t)
	m := loadedModel(t, store)

	m, _ = press(t, m, runes("r"))
	require.Equal(t, ModePicking, m.mode)
	assert.Equal(t, "A Combo", m.picker.Cursor())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "B Sem Combo", m.picker.Cursor())

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	picked := cmd()
	assert.Equal(t, components.BucketPickedMsg{Code: "c2", Bucket: "B Sem Combo"}, picked)

	next, persist := m.Update(picked)
	m = next.(Model)
	require.NotNil(t, persist)
	assert.True(t, m.busy)
	assert.Equal(t, ModeBrowse, m.mode)

	m = update(t, m, persist())
	assert.Equal(t, Notice{Kind: NoticeSuccess, Text: dashboard.ReclassifiedNotice("c2", "B Sem Combo")}, m.notice)
	p, ok := m.state.Product("c2")
	require.True(t, ok)
	assert.Equal(t, "B Sem Combo", p.Classification)
	assert.Equal(t, "c1", selectedCode(t, m))
	assert.Equal(t, []testutil.Write{{Resource: service.ResourceClassification, Code: "c2", Value: "B Sem Combo"}}, store.Writes())
}

func TestModel_ReclassifyCanceled(t *testing.T) {
	m := loadedModel(t, newTestStore(t))

	m, _ = press(t, m, runes("r"))
	require.Equal(t, ModePicking, m.mode)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	m = update(t, m, cmd())
	assert.Equal(t, ModeBrowse, m.mode)
}

func TestModel_Help(t *testing.T) {
	m := loadedModel(t, newTestStore(t))

	m, _ = press(t, m, runes("?"))
	assert.Equal(t, ModeHelp, m.mode)
	assert.Contains(t, m.View(), "Ajuda")

	m, _ = press(t, m, runes("?"))
	assert.Equal(t, ModeBrowse, m.mode)
}

func TestModel_Reload(t *testing.T) {
	store := newTestStore(t)
	m := loadedModel(t, store)

	m, cmd := press(t, m, runes("R"))
	require.NotNil(t, cmd)
	assert.Equal(t, ModeLoading, m.mode)

	store.ProductRecords = store.ProductRecords[:1]
	m = update(t, m, m.loadBuckets()())
	m = update(t, m, m.loadProducts()())
	assert.Equal(t, ModeBrowse, m.mode)
	assert.Len(t, m.state.AllProducts(), 1)
}

func TestModel_Quit(t *testing.T) {
	m := loadedModel(t, newTestStore(t))

	m, cmd := press(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.True(t, m.quitting)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestModel_WindowResize(t *testing.T) {
	m := loadedModel(t, newTestStore(t))

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, 100, m.width)
	assert.Equal(t, 30, m.height)
	assert.GreaterOrEqual(t, m.tableHeight(), 3)
}
