package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/product-monitor/internal/config"
	"github.com/Veraticus/product-monitor/internal/firebase"
	"github.com/Veraticus/product-monitor/internal/service"
	"github.com/Veraticus/product-monitor/internal/storage"
	"github.com/spf13/viper"
)

// loadStoreConfig reads and validates the store section.
func loadStoreConfig() (config.Store, error) {
	cfg, err := config.LoadStore(viper.GetViper())
	if err != nil {
		return config.Store{}, fmt.Errorf("invalid store configuration: %w", err)
	}
	return cfg, nil
}

// openStore connects to the configured store. The returned closer is always
// safe to call.
func openStore(ctx context.Context, cfg config.Store) (service.RemoteStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case config.DriverSQLite:
		store, err := openSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	default:
		client, err := firebase.NewClient(ctx, firebase.Config{
			BaseURL:         cfg.BaseURL,
			AuthToken:       cfg.AuthToken,
			CredentialsFile: cfg.CredentialsFile,
			Paths:           cfg.Paths,
			Timeout:         cfg.Timeout,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("failed to create firebase client: %w", err)
		}
		slog.Debug("Using firebase store", "base_url", cfg.BaseURL)
		return client, noop, nil
	}
}

func openSQLite(ctx context.Context, path string) (*storage.SQLiteStore, error) {
	store, err := storage.NewSQLiteStore(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	slog.Debug("Using sqlite store", "path", path)
	return store, nil
}
