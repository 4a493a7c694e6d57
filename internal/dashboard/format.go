package dashboard

import (
	"strconv"
	"strings"

	"github.com/Veraticus/product-monitor/internal/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatRealInstallment renders the numeric installment value in pt-BR
// ("R$ 1.234,56"). Non-numeric text is shown as is, empty as "-".
func FormatRealInstallment(v model.FlexString) string {
	s := strings.TrimSpace(v.String())
	if s == "" {
		return model.EmptyCell
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}

	p := message.NewPrinter(language.BrazilianPortuguese)
	return p.Sprintf("R$ %.2f", n)
}

// FormatCount renders a count with pt-BR digit grouping.
func FormatCount(n int) string {
	return message.NewPrinter(language.BrazilianPortuguese).Sprintf("%d", n)
}

// Column is one product table column. Key is empty for columns that cannot be
// sorted.
type Column struct {
	Title string
	Key   model.SortKey
}

// ProductColumns lists the product table columns in display order.
var ProductColumns = []Column{
	{Title: "Produto", Key: model.SortByTitle},
	{Title: "ID", Key: model.SortByCode},
	{Title: "Parcela", Key: model.SortByInstallment},
	{Title: "Parcela Raw"},
	{Title: "Desconto"},
	{Title: "Texto Cupom"},
	{Title: "18x"},
	{Title: "Preço"},
	{Title: "Data"},
	{Title: "Ativo"},
}

// ProductCells renders a product's cells in ProductColumns order.
func ProductCells(p model.Product) []string {
	return []string{
		p.DisplayTitle(),
		p.Code,
		model.Cell(p.Installment.String()),
		model.Cell(p.InstallmentPlan),
		model.YesNo(p.HasCoupon()),
		model.Cell(p.Coupon),
		model.YesNo(p.HasEighteenInstallments()),
		model.Cell(p.Price.String()),
		model.Cell(p.CollectedAt),
		model.YesNo(p.IsActive()),
	}
}
