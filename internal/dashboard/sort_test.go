package dashboard

import (
	"testing"

	"github.com/Veraticus/product-monitor/internal/common"
	"github.com/Veraticus/product-monitor/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInstallment(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{name: "brazilian format", raw: "R$ 19,90", want: 19.90},
		{name: "thousands separator", raw: "R$ 1.234,56", want: 1234.56},
		{name: "no currency", raw: "49,90", want: 49.90},
		{name: "dot decimal", raw: "12.5", want: 12.5},
		{name: "inner whitespace", raw: " R$  7, 50 ", want: 7.50},
		{name: "integer", raw: "R$ 100", want: 100},
		{name: "empty", raw: "", want: MissingPrice},
		{name: "only currency", raw: "R$", want: MissingPrice},
		{name: "garbage", raw: "consulte", want: MissingPrice},
		{name: "nan", raw: "NaN", want: MissingPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseInstallment(tt.raw), 0.0001)
		})
	}
}

func TestParseSortKey(t *testing.T) {
	key, err := ParseSortKey("produto")
	require.NoError(t, err)
	assert.Equal(t, model.SortByTitle, key)

	_, err = ParseSortKey("ativo")
	require.ErrorIs(t, err, common.ErrInvalidSortKey)
}

func TestParseDirection(t *testing.T) {
	assert.Equal(t, model.Descending, ParseDirection("desc"))
	assert.Equal(t, model.Descending, ParseDirection(" DESC "))
	assert.Equal(t, model.Ascending, ParseDirection("asc"))
	assert.Equal(t, model.Ascending, ParseDirection(""))
	assert.Equal(t, model.Ascending, ParseDirection("sideways"))
}

func TestFilterBucket(t *testing.T) {
	products := []model.Product{
		{Code: "a", Classification: "PS5 Combo"},
		{Code: "b", Classification: "ps5 combo"},
		{Code: "c", Classification: "PS5 Combo "},
		{Code: "d", Classification: "PS5 Combo"},
	}

	got := FilterBucket(products, "PS5 Combo")
	assert.Equal(t, []string{"a", "d"}, codes(got))

	assert.Empty(t, FilterBucket(products, "Nothing"))
	assert.NotNil(t, FilterBucket(nil, "Nothing"))
}

func TestSortProducts_Installment(t *testing.T) {
	products := []model.Product{
		{Code: "c1", Installment: "R$ 49,90"},
		{Code: "none"},
		{Code: "c2", Installment: "R$ 19,90"},
		{Code: "c3", Installment: "R$ 1.049,90"},
	}

	asc := SortProducts(products, model.SortConfig{Key: model.SortByInstallment, Direction: model.Ascending})
	assert.Equal(t, []string{"c2", "c1", "c3", "none"}, codes(asc))

	desc := SortProducts(products, model.SortConfig{Key: model.SortByInstallment, Direction: model.Descending})
	assert.Equal(t, []string{"none", "c3", "c1", "c2"}, codes(desc))

	// Input is not reordered.
	assert.Equal(t, []string{"c1", "none", "c2", "c3"}, codes(products))
}

func TestSortProducts_TextIsCaseInsensitive(t *testing.T) {
	products := []model.Product{
		{Code: "1", Title: "banana"},
		{Code: "2", Title: "Abacaxi"},
		{Code: "3", Title: "caju"},
		{Code: "4", Title: "BANANA"},
	}

	got := SortProducts(products, model.SortConfig{Key: model.SortByTitle, Direction: model.Ascending})
	assert.Equal(t, []string{"2", "1", "4", "3"}, codes(got))
}

func TestSortProducts_StableTies(t *testing.T) {
	products := []model.Product{
		{Code: "first", Coupon: "x"},
		{Code: "second", Coupon: "x"},
		{Code: "third", Coupon: "x"},
	}

	for _, dir := range []model.SortDirection{model.Ascending, model.Descending} {
		got := SortProducts(products, model.SortConfig{Key: model.SortByCoupon, Direction: dir})
		assert.Equal(t, []string{"first", "second", "third"}, codes(got), "direction %s", dir)
	}
}

func TestSortProducts_PriceIsComparedAsText(t *testing.T) {
	products := []model.Product{
		{Code: "a", Price: "9"},
		{Code: "b", Price: "10"},
	}

	got := SortProducts(products, model.SortConfig{Key: model.SortByPrice, Direction: model.Ascending})
	assert.Equal(t, []string{"b", "a"}, codes(got))
}

func TestSortConfigToggle(t *testing.T) {
	cfg := model.DefaultSort()
	assert.Equal(t, model.SortConfig{Key: model.SortByInstallment, Direction: model.Ascending}, cfg)

	cfg = cfg.Toggle(model.SortByInstallment)
	assert.Equal(t, model.Descending, cfg.Direction)

	cfg = cfg.Toggle(model.SortByInstallment)
	assert.Equal(t, model.Ascending, cfg.Direction)

	cfg = cfg.Toggle(model.SortByInstallment).Toggle(model.SortByTitle)
	assert.Equal(t, model.SortConfig{Key: model.SortByTitle, Direction: model.Ascending}, cfg)
}

func TestFieldValue(t *testing.T) {
	p := model.Product{
		Code:            "MLB1",
		Title:           "Console",
		Installment:     "R$ 10,00",
		InstallmentPlan: "18x",
		Coupon:          "5% OFF",
		Price:           "180",
		CollectedAt:     "2024-01-01",
		Classification:  "P1P",
	}

	assert.Equal(t, "Console", FieldValue(p, model.SortByTitle))
	assert.Equal(t, "MLB1", FieldValue(p, model.SortByCode))
	assert.Equal(t, "R$ 10,00", FieldValue(p, model.SortByInstallment))
	assert.Equal(t, "18x", FieldValue(p, model.SortByInstallmentPlan))
	assert.Equal(t, "5% OFF", FieldValue(p, model.SortByCoupon))
	assert.Equal(t, "180", FieldValue(p, model.SortByPrice))
	assert.Equal(t, "2024-01-01", FieldValue(p, model.SortByCollectedAt))
	assert.Equal(t, "P1P", FieldValue(p, model.SortByClassification))
	assert.Empty(t, FieldValue(p, model.SortKey("ativo")))
}

func codes(products []model.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Code)
	}
	return out
}
