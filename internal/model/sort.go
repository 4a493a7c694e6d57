package model

// SortKey names a sortable product field by its remote field name.
type SortKey string

// Sortable fields.
const (
	SortByTitle           SortKey = "produto"
	SortByCode            SortKey = "codigo"
	SortByInstallment     SortKey = "valor_parcela"
	SortByInstallmentPlan SortKey = "parcela_raw"
	SortByCoupon          SortKey = "cupom"
	SortByPrice           SortKey = "preco"
	SortByCollectedAt     SortKey = "data"
	SortByClassification  SortKey = "classificacao"
)

// SortKeys lists every sortable field.
var SortKeys = []SortKey{
	SortByTitle,
	SortByCode,
	SortByInstallment,
	SortByInstallmentPlan,
	SortByCoupon,
	SortByPrice,
	SortByCollectedAt,
	SortByClassification,
}

// SortDirection is asc or desc.
type SortDirection string

// Sort directions.
const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// SortConfig is the transient table ordering.
type SortConfig struct {
	Key       SortKey       `json:"key"`
	Direction SortDirection `json:"direction"`
}

// DefaultSort orders by installment price, cheapest first.
func DefaultSort() SortConfig {
	return SortConfig{Key: SortByInstallment, Direction: Ascending}
}

// Toggle returns the config after selecting key: the active key flips
// direction, any other key starts ascending.
func (c SortConfig) Toggle(key SortKey) SortConfig {
	if c.Key == key && c.Direction == Ascending {
		return SortConfig{Key: key, Direction: Descending}
	}
	return SortConfig{Key: key, Direction: Ascending}
}
