package dashboard

import (
	"regexp"

	"github.com/Veraticus/product-monitor/internal/model"
)

// LeaderboardSize is how many offers each bucket row shows.
const LeaderboardSize = 3

// ComparativePlaceholder fills the informational comparative column.
const ComparativePlaceholder = "—"

var discountPattern = regexp.MustCompile(`\d{1,3}%`)

// LeaderboardEntry is one cheap offer in a bucket row.
type LeaderboardEntry struct {
	Code      string  `json:"code"`
	Title     string  `json:"title"`
	Price     string  `json:"price"`
	Link      string  `json:"link"`
	Discount  string  `json:"discount,omitempty"`
	Value     float64 `json:"value"`
	HasCoupon bool    `json:"has_coupon"`
}

// LeaderboardRow holds up to LeaderboardSize offers for one bucket.
type LeaderboardRow struct {
	Bucket      string             `json:"bucket"`
	Comparative string             `json:"comparative"`
	Entries     []LeaderboardEntry `json:"entries"`
}

// Slot returns the i-th entry, or false for an empty slot.
func (r LeaderboardRow) Slot(i int) (LeaderboardEntry, bool) {
	if i < 0 || i >= len(r.Entries) {
		return LeaderboardEntry{}, false
	}
	return r.Entries[i], true
}

// SlotText renders the i-th price with its discount, or "-".
func (r LeaderboardRow) SlotText(i int) string {
	entry, ok := r.Slot(i)
	if !ok {
		return model.EmptyCell
	}
	if entry.Discount != "" {
		return entry.Price + " (" + entry.Discount + ")"
	}
	return entry.Price
}

// Leaderboard builds one row per bucket, in bucket order.
func Leaderboard(buckets model.Buckets, products []model.Product) []LeaderboardRow {
	rows := make([]LeaderboardRow, 0, len(buckets))
	for _, bucket := range buckets {
		rows = append(rows, LeaderboardRow{
			Bucket:      bucket.Name,
			Comparative: ComparativePlaceholder,
			Entries:     Cheapest(products, bucket.Name, LeaderboardSize),
		})
	}
	return rows
}

// Cheapest returns the n lowest-installment products in bucket.
func Cheapest(products []model.Product, bucket string, n int) []LeaderboardEntry {
	sorted := ProductsFor(products, bucket, model.DefaultSort())
	sorted = Window(sorted, 0, n)

	entries := make([]LeaderboardEntry, 0, len(sorted))
	for _, p := range sorted {
		entries = append(entries, LeaderboardEntry{
			Code:      p.Code,
			Title:     p.DisplayTitle(),
			Price:     model.Cell(p.Installment.String()),
			Link:      p.Link,
			Discount:  DiscountOf(p.Coupon),
			Value:     ParseInstallment(p.Installment.String()),
			HasCoupon: p.HasCoupon(),
		})
	}
	return entries
}

// DiscountOf returns the first "NN%" in coupon text.
func DiscountOf(coupon string) string {
	return discountPattern.FindString(coupon)
}
