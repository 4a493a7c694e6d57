package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Veraticus/product-monitor/internal/cli"
	"github.com/Veraticus/product-monitor/internal/common"
	"github.com/Veraticus/product-monitor/internal/config"
	"github.com/Veraticus/product-monitor/internal/dashboard"
	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <snapshot.json>",
		Short: "Load a database export into the local SQLite store",
		Long: `Replace the config and product documents of the local SQLite store
with those in a database export shaped like
{"class_config": {...}, "produtos": {...}}.

Ignored products and manual classifications are kept. Requires
store.driver: sqlite.`,
		Args: cobra.ExactArgs(1),
		RunE: runSeed,
	}
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadStoreConfig()
	if err != nil {
		return err
	}
	if cfg.Driver != config.DriverSQLite {
		return fmt.Errorf("%w: seed requires store.driver %q, got %q", common.ErrInvalidConfig, config.DriverSQLite, cfg.Driver)
	}

	snapshot, err := os.ReadFile(args[0]) // #nosec G304 -- path comes from the operator
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	ctx := cmd.Context()
	store, err := openSQLite(ctx, cfg.SQLitePath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	result, err := store.Seed(ctx, snapshot)
	if err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	slog.Info("Database seeded", "path", cfg.SQLitePath, "bases", result.Bases, "products", result.Products)
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
		"%s bases e %s produtos carregados em %s",
		dashboard.FormatCount(result.Bases), dashboard.FormatCount(result.Products), cfg.SQLitePath)))
	return nil
}
