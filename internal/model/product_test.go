package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    FlexString
		wantErr bool
	}{
		{name: "string", input: `"R$ 19,90"`, want: "R$ 19,90"},
		{name: "number", input: `19.9`, want: "19.9"},
		{name: "integer", input: `1200`, want: "1200"},
		{name: "null", input: `null`, want: ""},
		{name: "bool", input: `true`, want: "true"},
		{name: "object", input: `{"a": 1}`, wantErr: true},
		{name: "array", input: `[1]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got FlexString
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProduct_Decode(t *testing.T) {
	var p Product
	err := json.Unmarshal([]byte(`{
		"codigo": "MLB1",
		"produto": "Console",
		"valor_parcela": 49.9,
		"preco": "R$ 499,00",
		"ativo": false,
		"cupom": "10% OFF",
		"parcela_raw": "18x R$ 27,72"
	}`), &p)
	require.NoError(t, err)

	assert.Equal(t, "MLB1", p.Code)
	assert.Equal(t, FlexString("49.9"), p.Installment)
	assert.False(t, p.IsActive())
	assert.True(t, p.HasCoupon())
	assert.True(t, p.HasEighteenInstallments())
}

func TestProduct_Flags(t *testing.T) {
	yes := true
	assert.True(t, Product{}.IsActive(), "absent flag defaults to active")
	assert.True(t, Product{Active: &yes}.IsActive())
	assert.False(t, Product{Coupon: "   "}.HasCoupon())
	assert.False(t, Product{InstallmentPlan: "12x"}.HasEighteenInstallments())
}

func TestDisplayTitle(t *testing.T) {
	assert.Equal(t, UntitledProduct, Product{Title: "  "}.DisplayTitle())
	assert.Equal(t, "Console", Product{Title: " Console "}.DisplayTitle())

	long := strings.Repeat("é", MaxTitleLength+5)
	assert.Equal(t, MaxTitleLength, len([]rune(Product{Title: long}.DisplayTitle())))
}

func TestCells(t *testing.T) {
	assert.Equal(t, EmptyCell, Cell(" "))
	assert.Equal(t, "x", Cell("x"))
	assert.Equal(t, Yes, YesNo(true))
	assert.Equal(t, No, YesNo(false))
}

func TestBuckets(t *testing.T) {
	b := Buckets{{Name: "A Combo"}, {Name: "P1P"}}

	assert.Equal(t, []string{"A Combo", "P1P"}, b.Names())
	assert.True(t, b.Has("P1P"))
	assert.False(t, b.Has("B"))
	assert.Equal(t, 1, b.Index("P1P"))
	assert.Equal(t, -1, b.Index("B"))
	assert.Equal(t, "A Combo", b.First())
	assert.Empty(t, Buckets{}.First())
}

func TestSortConfig_Toggle(t *testing.T) {
	cfg := DefaultSort()
	assert.Equal(t, SortConfig{Key: SortByInstallment, Direction: Ascending}, cfg)

	cfg = cfg.Toggle(SortByInstallment)
	assert.Equal(t, Descending, cfg.Direction)

	cfg = cfg.Toggle(SortByInstallment)
	assert.Equal(t, Ascending, cfg.Direction)

	cfg = cfg.Toggle(SortByInstallment).Toggle(SortByTitle)
	assert.Equal(t, SortConfig{Key: SortByTitle, Direction: Ascending}, cfg)
}
