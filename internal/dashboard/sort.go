package dashboard

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/Veraticus/product-monitor/internal/common"
	"github.com/Veraticus/product-monitor/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MissingPrice is the sort value of an absent or unparsable installment, so
// such products land last when ascending.
const MissingPrice = 99999.0

// ParseInstallment turns "R$ 1.234,56" style text into a number.
func ParseInstallment(raw string) float64 {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "R$")
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return MissingPrice
	}

	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return MissingPrice
	}
	return v
}

// ParseSortKey validates a sort key name.
func ParseSortKey(s string) (model.SortKey, error) {
	key := model.SortKey(strings.TrimSpace(s))
	if slices.Contains(model.SortKeys, key) {
		return key, nil
	}
	return "", fmt.Errorf("%w: %q", common.ErrInvalidSortKey, s)
}

// ParseDirection accepts asc or desc; anything else is ascending.
func ParseDirection(s string) model.SortDirection {
	if strings.EqualFold(strings.TrimSpace(s), string(model.Descending)) {
		return model.Descending
	}
	return model.Ascending
}

// FilterBucket returns the products whose classification equals bucket
// exactly, in collection order.
func FilterBucket(products []model.Product, bucket string) []model.Product {
	out := make([]model.Product, 0)
	for _, p := range products {
		if p.Classification == bucket {
			out = append(out, p)
		}
	}
	return out
}

// SortProducts returns a stably sorted copy. The direction inverts the
// comparison, so ties keep their collection order either way.
func SortProducts(products []model.Product, cfg model.SortConfig) []model.Product {
	sign := 1
	if cfg.Direction == model.Descending {
		sign = -1
	}

	type keyed struct {
		text    string
		product model.Product
		number  float64
	}

	lower := cases.Lower(language.BrazilianPortuguese)
	items := make([]keyed, len(products))
	for i, p := range products {
		item := keyed{product: p}
		if cfg.Key == model.SortByInstallment {
			item.number = ParseInstallment(p.Installment.String())
		} else {
			item.text = lower.String(FieldValue(p, cfg.Key))
		}
		items[i] = item
	}

	slices.SortStableFunc(items, func(a, b keyed) int {
		if cfg.Key == model.SortByInstallment {
			return sign * cmp.Compare(a.number, b.number)
		}
		return sign * strings.Compare(a.text, b.text)
	})

	out := make([]model.Product, len(items))
	for i, item := range items {
		out[i] = item.product
	}
	return out
}

// ProductsFor filters to bucket and sorts with cfg.
func ProductsFor(products []model.Product, bucket string, cfg model.SortConfig) []model.Product {
	return SortProducts(FilterBucket(products, bucket), cfg)
}

// FieldValue returns the raw text of a sortable field.
func FieldValue(p model.Product, key model.SortKey) string {
	switch key {
	case model.SortByTitle:
		return p.Title
	case model.SortByCode:
		return p.Code
	case model.SortByInstallment:
		return p.Installment.String()
	case model.SortByInstallmentPlan:
		return p.InstallmentPlan
	case model.SortByCoupon:
		return p.Coupon
	case model.SortByPrice:
		return p.Price.String()
	case model.SortByCollectedAt:
		return p.CollectedAt
	case model.SortByClassification:
		return p.Classification
	default:
		return ""
	}
}
