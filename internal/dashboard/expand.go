// Package dashboard holds the data shaping behind every dashboard surface:
// loading and normalizing remote documents, bucket expansion, filtering and
// sorting, the per-bucket leaderboard, and the operator actions.
package dashboard

import (
	"bytes"
	"encoding/json"
	"log/slog"

	"github.com/Veraticus/product-monitor/internal/model"
	"github.com/Veraticus/product-monitor/internal/service"
)

// Keyword list field names inside a base category entry.
const (
	comboField   = "combo_keywords"
	noComboField = "sem_combo_keywords"
)

// DecodeClassConfig turns config records into base categories. Entries that
// are not objects contribute a base with no lists.
func DecodeClassConfig(records []service.Record) []model.BaseCategory {
	bases := make([]model.BaseCategory, 0, len(records))

	for _, rec := range records {
		base := model.BaseCategory{Name: rec.Key}

		fields, err := service.DecodeRecords(rec.Value)
		if err != nil {
			slog.Warn("Ignoring malformed base category", "base", rec.Key, "error", err)
			bases = append(bases, base)
			continue
		}

		for _, field := range fields {
			switch field.Key {
			case comboField:
				base.ComboKeywords, base.HasCombo = decodeKeywords(field.Value)
			case noComboField:
				base.NoComboKeywords, base.HasNoCombo = decodeKeywords(field.Value)
			}
		}

		bases = append(bases, base)
	}

	return bases
}

// decodeKeywords reads a keyword list. Arrays and sparse-array objects keep
// their string members in order; a lone string is a one-keyword list. The
// bool is false when the list is absent or has an unusable shape.
func decodeKeywords(raw json.RawMessage) ([]string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, false
	}

	switch trimmed[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, false
		}
		return collectStrings(items), true

	case '{':
		records, err := service.DecodeRecords(trimmed)
		if err != nil {
			return nil, false
		}
		items := make([]json.RawMessage, 0, len(records))
		for _, r := range records {
			items = append(items, r.Value)
		}
		return collectStrings(items), true

	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, false
		}
		return []string{s}, true
	}

	return nil, false
}

func collectStrings(items []json.RawMessage) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, s)
		}
	}
	return out
}

// ExpandBuckets synthesizes "<base> Combo" and "<base> Sem Combo" buckets in
// config order. A base with neither list contributes nothing.
func ExpandBuckets(bases []model.BaseCategory) model.Buckets {
	buckets := make(model.Buckets, 0, len(bases)*2)

	for _, base := range bases {
		if base.HasCombo {
			buckets = appendBucket(buckets, base.Name+model.ComboSuffix, base.ComboKeywords)
		}
		if base.HasNoCombo {
			buckets = appendBucket(buckets, base.Name+model.NoComboSuffix, base.NoComboKeywords)
		}
	}

	return buckets
}

// appendBucket adds a bucket, replacing the keywords of an existing one with
// the same name while keeping its position.
func appendBucket(buckets model.Buckets, name string, keywords []string) model.Buckets {
	if keywords == nil {
		keywords = []string{}
	}
	if i := buckets.Index(name); i >= 0 {
		buckets[i].Keywords = keywords
		return buckets
	}
	return append(buckets, model.Bucket{Name: name, Keywords: keywords})
}

// EnsureFallback appends the P1P bucket when it is missing.
func EnsureFallback(buckets model.Buckets) model.Buckets {
	if buckets.Has(model.FallbackBucket) {
		return buckets
	}
	return append(buckets, model.Bucket{Name: model.FallbackBucket, Keywords: []string{}})
}
