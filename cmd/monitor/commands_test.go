package main

import (
	"testing"

	"github.com/Veraticus/product-monitor/internal/config"
	"github.com/Veraticus/product-monitor/internal/dashboard"
	"github.com/Veraticus/product-monitor/internal/model"
	"github.com/Veraticus/product-monitor/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryRows(t *testing.T) {
	rows := summaryRows([]dashboard.LeaderboardRow{
		{
			Bucket:      "A Combo",
			Comparative: dashboard.ComparativePlaceholder,
			Entries: []dashboard.LeaderboardEntry{
				{Code: "c1", Price: "R$ 10,00", HasCoupon: true, Discount: "10%"},
				{Code: "c2", Price: "R$ 12,00"},
			},
		},
	})

	require.Len(t, rows, 1)
	assert.Equal(t, []string{"A Combo", dashboard.ComparativePlaceholder, "R$ 10,00 (10%)" + couponMark, "R$ 12,00", model.EmptyCell}, rows[0])
	assert.Len(t, summaryHeaders, len(rows[0]))
}

func TestProductRows(t *testing.T) {
	headers := productHeaders()
	rows := productRows([]model.Product{{Code: "c1", Title: "Console", Link: "https://example.com/c1"}})

	require.Len(t, rows, 1)
	assert.Len(t, rows[0], len(headers))
	assert.Equal(t, "Link", headers[len(headers)-1])
	assert.Equal(t, "https://example.com/c1", rows[0][len(rows[0])-1])
}

func TestOpenStore_SQLite(t *testing.T) {
	cfg := config.DefaultStore()
	cfg.Driver = config.DriverSQLite
	cfg.SQLitePath = ":memory:"

	store, closeStore, err := openStore(testContext(t), cfg)
	require.NoError(t, err)
	defer func() { _ = closeStore() }()

	assert.IsType(t, &storage.SQLiteStore{}, store)
	records, err := store.Products(testContext(t))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestOpenStore_Firebase(t *testing.T) {
	store, closeStore, err := openStore(testContext(t), config.DefaultStore())
	require.NoError(t, err)
	assert.NotNil(t, store)
	assert.NoError(t, closeStore())
}
