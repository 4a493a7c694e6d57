package main

import (
	"fmt"

	"github.com/Veraticus/product-monitor/internal/cli"
	"github.com/Veraticus/product-monitor/internal/common"
	"github.com/Veraticus/product-monitor/internal/dashboard"
	"github.com/Veraticus/product-monitor/internal/model"
	"github.com/spf13/cobra"
)

func productsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products <bucket>",
		Short: "List the products of one bucket",
		Long: `List the products classified into a bucket, sorted cheapest
installment first unless --sort says otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: runProducts,
	}

	cmd.Flags().String("sort", string(model.SortByInstallment), "sort key (produto, codigo, valor_parcela, parcela_raw, cupom, preco, data, classificacao)")
	cmd.Flags().Bool("desc", false, "sort descending")
	cmd.Flags().Int("offset", 0, "skip this many products")
	cmd.Flags().Int("limit", 0, "show at most this many products (0 for all)")

	return cmd
}

func runProducts(cmd *cobra.Command, args []string) error {
	bucket := args[0]

	sortFlag, _ := cmd.Flags().GetString("sort")
	desc, _ := cmd.Flags().GetBool("desc")
	offset, _ := cmd.Flags().GetInt("offset")
	limit, _ := cmd.Flags().GetInt("limit")

	key, err := dashboard.ParseSortKey(sortFlag)
	if err != nil {
		return err
	}
	if offset < 0 || limit < 0 {
		return fmt.Errorf("%w: offset and limit must not be negative", common.ErrInvalidConfig)
	}
	sortCfg := model.SortConfig{Key: key, Direction: model.Ascending}
	if desc {
		sortCfg.Direction = model.Descending
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

	state, _ := loadState(ctx, cmd.ErrOrStderr(), store)
	if !state.Buckets().Has(bucket) {
		return fmt.Errorf("%w: %s", common.ErrUnknownBucket, bucket)
	}

	sorted := dashboard.ProductsFor(state.AllProducts(), bucket, sortCfg)
	page := dashboard.Window(sorted, offset, limit)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatTitle(bucket))
	fmt.Fprintln(out, cli.SubtitleStyle.Render(fmt.Sprintf("%s de %s produtos", dashboard.FormatCount(len(page)), dashboard.FormatCount(len(sorted)))))
	fmt.Fprintln(out)

	if len(page) == 0 {
		fmt.Fprintln(out, cli.FormatInfo("Nenhum produto nesta classificação."))
		return nil
	}

	return cli.WriteTable(out, productHeaders(), productRows(page))
}

func productHeaders() []string {
	headers := make([]string, 0, len(dashboard.ProductColumns)+1)
	for _, col := range dashboard.ProductColumns {
		headers = append(headers, col.Title)
	}
	return append(headers, "Link")
}

func productRows(products []model.Product) [][]string {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, append(dashboard.ProductCells(p), model.Cell(p.Link)))
	}
	return rows
}
