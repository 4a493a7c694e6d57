package main

import (
	"github.com/Veraticus/product-monitor/internal/tui"
	"github.com/Veraticus/product-monitor/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive product dashboard",
		Long: `Browse products bucket by bucket, sort the table, and ignore or
reclassify offers. Logs go to a file while the dashboard is open.`,
		RunE: runDashboard,
	}

	cmd.Flags().String("theme", "", "color theme (default, catppuccin-mocha)")
	_ = viper.BindPFlag("ui.theme", cmd.Flags().Lookup("theme"))

	return cmd
}

func runDashboard(cmd *cobra.Command, _ []string) error {
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

	return tui.Run(ctx,
		tui.WithStore(store),
		tui.WithTheme(themes.GetTheme(viper.GetString("ui.theme"))),
		tui.WithTimeouts(cfg.Timeout, cfg.Timeout),
	)
}
