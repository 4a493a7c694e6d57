package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/product-monitor/internal/cli"
	"github.com/Veraticus/product-monitor/internal/dashboard"
	"github.com/Veraticus/product-monitor/internal/service"
)

// loadState runs a full load with a progress bar on w. Fetch failures are
// reported but leave a usable, partially empty state.
func loadState(ctx context.Context, w io.Writer, store service.RemoteStore) (*dashboard.State, *dashboard.Loader) {
	progress := cli.NewLoadProgress(w, 2)
	loader := dashboard.NewLoader(store)
	loader.OnSettled = progress.Settled

	snap := loader.Load(ctx)
	if err := snap.Err(); err != nil {
		slog.Warn("Load finished with errors", "error", err)
		fmt.Fprintln(w, cli.FormatWarning("Falha ao carregar dados: "+err.Error()))
	}

	return dashboard.NewState(store, snap), loader
}
