package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/product-monitor/internal/cli"
	"github.com/Veraticus/product-monitor/internal/dashboard"
	"github.com/spf13/cobra"
)

func classifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <code> <bucket>",
		Short: "Manually assign a product to a bucket",
		Long: `Record a manual classification for a product. The bucket name is
written as given; it does not need to exist in the current config.`,
		Args: cobra.ExactArgs(2),
		RunE: runClassify,
	}
}

func runClassify(cmd *cobra.Command, args []string) error {
	code := strings.TrimSpace(args[0])
	bucket := strings.TrimSpace(args[1])
	if code == "" || bucket == "" {
		return fmt.Errorf("product code and bucket are required")
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
	if err := state.PersistReclassify(ctx, code, bucket); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(dashboard.ReclassifiedNotice(code, bucket)))
	return nil
}
