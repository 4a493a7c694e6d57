package testutil

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/Veraticus/product-monitor/internal/service"
)

// Rec builds a record whose value is v marshaled to JSON.
func Rec(t *testing.T, key string, v any) service.Record {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal fixture %q: %v", key, err)
	}
	return service.Record{Key: key, Value: data}
}

// RawRec builds a record from literal JSON.
func RawRec(key, raw string) service.Record {
	return service.Record{Key: key, Value: json.RawMessage(raw)}
}

// Offer is a product fixture with the fields tests usually need.
type Offer struct {
	Code           string
	Title          string
	Installment    string
	Coupon         string
	Plan           string
	CollectedAt    string
	Classification string
	Link           string
}

// Record renders the offer in the remote product shape.
func (o Offer) Record(t *testing.T) service.Record {
	t.Helper()
	doc := map[string]any{
		"codigo":        o.Code,
		"produto":       o.Title,
		"classificacao": o.Classification,
	}
	setIf(doc, "valor_parcela", o.Installment)
	setIf(doc, "cupom", o.Coupon)
	setIf(doc, "parcela_raw", o.Plan)
	setIf(doc, "data", o.CollectedAt)
	setIf(doc, "link", o.Link)
	return Rec(t, o.Code, doc)
}

// OfferRecords renders several offers.
func OfferRecords(t *testing.T, offers ...Offer) []service.Record {
	t.Helper()
	out := make([]service.Record, 0, len(offers))
	for _, o := range offers {
		out = append(out, o.Record(t))
	}
	return out
}

// BaseConfig builds one class_config record. A nil list is omitted.
func BaseConfig(t *testing.T, base string, combo, noCombo []string) service.Record {
	t.Helper()
	doc := map[string]any{}
	if combo != nil {
		doc["combo_keywords"] = combo
	}
	if noCombo != nil {
		doc["sem_combo_keywords"] = noCombo
	}
	return Rec(t, base, doc)
}

// NumberedOffers returns n offers in bucket priced 10.00, 11.00, ...
func NumberedOffers(bucket string, n int) []Offer {
	offers := make([]Offer, 0, n)
	for i := 0; i < n; i++ {
		offers = append(offers, Offer{
			Code:           fmt.Sprintf("MLB%03d", i),
			Title:          fmt.Sprintf("Produto %d", i),
			Installment:    fmt.Sprintf("R$ %d,00", 10+i),
			Classification: bucket,
		})
	}
	return offers
}

func setIf(doc map[string]any, key, value string) {
	if value != "" {
		doc[key] = value
	}
}
