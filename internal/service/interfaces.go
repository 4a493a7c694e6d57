// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"encoding/json"
)

// Resource names the four documents the dashboard reads or writes.
type Resource string

// Store resources.
const (
	ResourceClassConfig    Resource = "class_config"
	ResourceProducts       Resource = "produtos"
	ResourceIgnore         Resource = "ignore"
	ResourceClassification Resource = "class_prod"
)

// Record is one key of a JSON object document, in document order.
type Record struct {
	Key   string
	Value json.RawMessage
}

// StoreReader fetches whole documents.
type StoreReader interface {
	// ClassConfig returns base category name -> keyword lists.
	ClassConfig(ctx context.Context) ([]Record, error)
	// Products returns product code -> product record.
	Products(ctx context.Context) ([]Record, error)
}

// StoreWriter merges single keys into the write documents.
type StoreWriter interface {
	// MarkIgnored merges {code: true} into the ignore list.
	MarkIgnored(ctx context.Context, code string) error
	// SetClassification merges {code: classification} into the manual
	// classification document.
	SetClassification(ctx context.Context, code, classification string) error
}

// RemoteStore is the flat key-value store backing the dashboard.
type RemoteStore interface {
	StoreReader
	StoreWriter
}
