package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/product-monitor/internal/storage"
)

// SetupTestStore creates a migrated in-memory SQLite store, seeds it with the
// given snapshot when non-empty and closes it at cleanup.
//
// Example:
//
//	store := testutil.SetupTestStore(t, `{"class_config":{"PS5":{"combo_keywords":["jogo"]}},"produtos":{}}`)
func SetupTestStore(t *testing.T, snapshot string) *storage.SQLiteStore {
	t.Helper()

	store, err := storage.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	if snapshot != "" {
		if _, err := store.Seed(ctx, []byte(snapshot)); err != nil {
			t.Fatalf("failed to seed snapshot: %v", err)
		}
	}

	return store
}
