package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/product-monitor/internal/service"
	"github.com/Veraticus/product-monitor/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeProducts(t *testing.T) {
	records, err := service.DecodeRecords([]byte(`{
		"MLB1": {"codigo": "MLB1", "produto": "PS5", "valor_parcela": "R$ 199,90", "link": "https://example.com/p/1"},
		"MLB2": {"produto": "Sem codigo", "preco": 3599.9, "valor_parcela_real": 199.99},
		"MLB3": "not a product",
		"MLB4": null,
		"MLB5": {"codigo": "MLB5", "link": "not a url", "ativo": false},
		"MLB6": {"codigo": "MLB6", "valor_parcela": {"nested": true}}
	}`))
	require.NoError(t, err)

	products := NewLoader(&testutil.MockStore{}).DecodeProducts(records)
	require.Len(t, products, 3)

	assert.Equal(t, "MLB1", products[0].Code)
	assert.Equal(t, "https://example.com/p/1", products[0].Link)
	assert.Empty(t, products[0].Classification)
	assert.True(t, products[0].IsActive())

	assert.Equal(t, "MLB2", products[1].Code, "code falls back to the record key")
	assert.Equal(t, "3599.9", products[1].Price.String())
	assert.Equal(t, "199.99", products[1].RealInstallment.String())

	assert.Equal(t, "MLB5", products[2].Code)
	assert.Empty(t, products[2].Link, "invalid link is cleared")
	assert.False(t, products[2].IsActive())
}

func TestLoader_Load(t *testing.T) {
	store := &testutil.MockStore{
		ConfigRecords:  []service.Record{testutil.BaseConfig(t, "PS5", []string{"jogo"}, []string{})},
		ProductRecords: testutil.OfferRecords(t, testutil.NumberedOffers("PS5 Combo", 4)...),
	}

	var (
		mu      sync.Mutex
		settled []service.Resource
	)
	loader := NewLoader(store)
	loader.OnSettled = func(resource service.Resource, err error) {
		mu.Lock()
		defer mu.Unlock()
		assert.NoError(t, err)
		settled = append(settled, resource)
	}

	snap := loader.Load(testContext(t))
	require.NoError(t, snap.Err())
	assert.Equal(t, []string{"PS5 Combo", "PS5 Sem Combo", "P1P"}, snap.Buckets.Names())
	assert.Len(t, snap.Products, 4)
	assert.ElementsMatch(t, []service.Resource{service.ResourceClassConfig, service.ResourceProducts}, settled)
}

func TestLoader_LoadErrors(t *testing.T) {
	store := &testutil.MockStore{
		ConfigErr:   errors.New("config down"),
		ProductsErr: errors.New("products down"),
	}

	snap := NewLoader(store).Load(testContext(t))
	require.Error(t, snap.ConfigErr)
	require.Error(t, snap.ProductsErr)
	assert.ErrorIs(t, snap.Err(), store.ConfigErr)
	assert.ErrorIs(t, snap.Err(), store.ProductsErr)
	assert.NotNil(t, snap.Buckets)
	assert.NotNil(t, snap.Products)
}

func TestLoader_LoadWaitsForBoth(t *testing.T) {
	store := &testutil.MockStore{Block: make(chan struct{})}

	done := make(chan Snapshot, 1)
	go func() {
		done <- NewLoader(store).Load(context.Background())
	}()

	select {
	case <-done:
		t.Fatal("load returned before fetches settled")
	case <-time.After(20 * time.Millisecond):
	}

	close(store.Block)
	select {
	case snap := <-done:
		assert.NoError(t, snap.Err())
	case <-time.After(time.Second):
		t.Fatal("load did not finish")
	}
}

func TestLoader_LoadCanceled(t *testing.T) {
	store := &testutil.MockStore{Block: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	snap := NewLoader(store).Load(ctx)
	assert.ErrorIs(t, snap.Err(), context.Canceled)
}
