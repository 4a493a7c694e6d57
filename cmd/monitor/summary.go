package main

import (
	"fmt"

	"github.com/Veraticus/product-monitor/internal/cli"
	"github.com/Veraticus/product-monitor/internal/dashboard"
	"github.com/spf13/cobra"
)

// couponMark flags slots whose price depends on a coupon.
const couponMark = " *"

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show the three cheapest offers of every bucket",
		RunE:  runSummary,
	}
}

func runSummary(cmd *cobra.Command, _ []string) error {
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
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, cli.FormatTitle("Resumo por classificação"))
	fmt.Fprintln(out, cli.SubtitleStyle.Render("Última coleta: "+state.LastCollectedText()))
	fmt.Fprintln(out)

	rows := state.Leaderboard()
	if len(rows) == 0 {
		fmt.Fprintln(out, cli.FormatInfo("Sem classificações."))
		return nil
	}

	return cli.WriteTable(out, summaryHeaders, summaryRows(rows))
}

var summaryHeaders = []string{"Classificação", "Comparativo", "1º", "2º", "3º"}

func summaryRows(rows []dashboard.LeaderboardRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := []string{row.Bucket, row.Comparative}
		for i := 0; i < dashboard.LeaderboardSize; i++ {
			text := row.SlotText(i)
			if entry, ok := row.Slot(i); ok && entry.HasCoupon {
				text += couponMark
			}
			cells = append(cells, text)
		}
		out = append(out, cells)
	}
	return out
}
