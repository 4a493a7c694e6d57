package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/product-monitor/internal/cli"
	"github.com/Veraticus/product-monitor/internal/dashboard"
	"github.com/spf13/cobra"
)

func ignoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ignore <code>",
		Short: "Mark a product as ignored so the scraper skips it",
		Args:  cobra.ExactArgs(1),
		RunE:  runIgnore,
	}
}

func runIgnore(cmd *cobra.Command, args []string) error {
	code := strings.TrimSpace(args[0])
	if code == "" {
		return fmt.Errorf("product code is required")
	}

	cfg, err := loadStoreConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	state := dashboard.NewState(store, dashboard.Snapshot{})
	if err := state.PersistIgnore(ctx, code); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(dashboard.IgnoredNotice(code)))
	return nil
}
