// Package model defines the core domain models used throughout the application.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Display placeholders shared by every surface.
const (
	UntitledProduct = "[Sem Título]"
	EmptyCell       = "-"
	Yes             = "✅ Sim"
	No              = "❌ Não"
	MaxTitleLength  = 80
)

// Product is a scraped offer as stored under the products resource.
type Product struct {
	Active          *bool      `json:"ativo,omitempty"`
	Code            string     `json:"codigo"`
	Title           string     `json:"produto"`
	Description     string     `json:"descricao,omitempty"`
	Installment     FlexString `json:"valor_parcela"`
	InstallmentPlan string     `json:"parcela_raw"`
	RealInstallment FlexString `json:"valor_parcela_real"`
	Price           FlexString `json:"preco"`
	Coupon          string     `json:"cupom"`
	Link            string     `json:"link" validate:"omitempty,url"`
	CollectedAt     string     `json:"data"`
	Classification  string     `json:"classificacao"`
}

// IsActive reports the active flag. Only an explicit false deactivates.
func (p Product) IsActive() bool {
	return p.Active == nil || *p.Active
}

// HasCoupon reports whether the offer carries coupon text.
func (p Product) HasCoupon() bool {
	return strings.TrimSpace(p.Coupon) != ""
}

// HasEighteenInstallments reports whether the plan descriptor mentions 18x.
func (p Product) HasEighteenInstallments() bool {
	return strings.Contains(p.InstallmentPlan, "18x")
}

// DisplayTitle returns the trimmed title truncated to MaxTitleLength runes.
func (p Product) DisplayTitle() string {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return UntitledProduct
	}
	runes := []rune(title)
	if len(runes) > MaxTitleLength {
		return string(runes[:MaxTitleLength])
	}
	return title
}

// Cell returns s, or EmptyCell when s is blank.
func Cell(s string) string {
	if strings.TrimSpace(s) == "" {
		return EmptyCell
	}
	return s
}

// YesNo renders a boolean cell.
func YesNo(b bool) string {
	if b {
		return Yes
	}
	return No
}

// FlexString accepts a JSON string, number, or null and keeps its text form.
// The scraper writes prices both ways.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*f = FlexString(strconv.FormatBool(b))
		return nil
	case '{', '[':
		return fmt.Errorf("cannot use %s as a scalar value", data)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*f = FlexString(n.String())
		return nil
	}
}

// String returns the underlying text.
func (f FlexString) String() string {
	return string(f)
}
