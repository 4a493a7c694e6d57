package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Veraticus/product-monitor/internal/service"
)

// SeedResult reports what Seed loaded.
type SeedResult struct {
	Bases    int
	Products int
}

// Seed replaces the config and product documents with those in snapshot, a
// database export shaped like {"class_config": {...}, "produtos": {...}}.
// The ignore list and manual classifications are left untouched.
func (s *SQLiteStore) Seed(ctx context.Context, snapshot []byte) (SeedResult, error) {
	if err := validateContext(ctx); err != nil {
		return SeedResult{}, err
	}

	top, err := service.DecodeRecords(snapshot)
	if err != nil {
		return SeedResult{}, fmt.Errorf("%w: %w", ErrInvalidSeed, err)
	}

	var bases, products []service.Record
	for _, rec := range top {
		switch service.Resource(rec.Key) {
		case service.ResourceClassConfig:
			bases, err = service.DecodeRecords(rec.Value)
		case service.ResourceProducts:
			products, err = service.DecodeRecords(rec.Value)
		default:
			slog.Debug("Skipping snapshot key", "key", rec.Key)
			continue
		}
		if err != nil {
			return SeedResult{}, fmt.Errorf("%w: %s: %w", ErrInvalidSeed, rec.Key, err)
		}
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return SeedResult{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM class_config`); err != nil {
		return SeedResult{}, fmt.Errorf("failed to clear class_config: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return SeedResult{}, fmt.Errorf("failed to clear products: %w", err)
	}

	for i, rec := range bases {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO class_config (base, position, document) VALUES (?, ?, ?)`,
			rec.Key, i, compact(rec.Value)); err != nil {
			return SeedResult{}, fmt.Errorf("failed to insert base %q: %w", rec.Key, err)
		}
	}
	for i, rec := range products {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO products (code, position, document) VALUES (?, ?, ?)`,
			rec.Key, i, compact(rec.Value)); err != nil {
			return SeedResult{}, fmt.Errorf("failed to insert product %q: %w", rec.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return SeedResult{}, fmt.Errorf("failed to commit seed: %w", err)
	}

	result := SeedResult{Bases: len(bases), Products: len(products)}
	slog.Info("Seeded store", "bases", result.Bases, "products", result.Products)
	return result, nil
}

func compact(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
